package database

import "time"

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database (schema) name.
	Name string `mapstructure:"name" default:"cnet"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup and socket reads/writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// QueryTimeoutSeconds bounds a single stored procedure call.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" default:"30"`
	// MaxOpenConns caps the connection pool.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"100"`
	// MaxIdleConns caps idle pooled connections.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"10"`
}

// QueryTimeout returns the per-call timeout, defaulting to 30 seconds.
func (c Config) QueryTimeout() time.Duration {
	if c.QueryTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}
