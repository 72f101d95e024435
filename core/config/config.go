package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cnet-api/core/auth"
	"cnet-api/core/database"
	"cnet-api/core/logger"
	"cnet-api/core/middleware/cors"
	"cnet-api/core/server"
	"cnet-api/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// ErrStartup marks configuration problems that must stop the process before
// it accepts traffic.
var ErrStartup = errors.New("startup configuration error")

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Auth holds the bearer-token validation settings.
	Auth auth.Settings `mapstructure:"auth"`
	// Cors holds the cross-origin policy applied to API routes.
	Cors cors.Config `mapstructure:"cors"`
	// Log holds configuration for the loggers.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. AUTH_SECRET_KEY -> auth.secret_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStartup, err)
	}

	return &config, nil
}

// Validate reports every problem that must prevent startup.
func (c *Config) Validate() error {
	var err error
	if !c.Server.IsValidEnvironment() {
		err = multierr.Append(err, fmt.Errorf("unknown server environment %q", c.Server.Environment))
	}
	err = multierr.Append(err, c.Auth.Validate())
	err = multierr.Append(err, c.Cors.Validate())
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		err = multierr.Append(err, errors.New("storage bucket is required when storage is enabled"))
	}
	if err != nil {
		return &StartupError{Errs: multierr.Errors(err)}
	}
	return nil
}

// StartupError aggregates configuration problems found at startup.
type StartupError struct {
	Errs []error
}

func (e *StartupError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%v: %s", ErrStartup, strings.Join(msgs, "; "))
}

// Unwrap exposes ErrStartup and every individual problem.
func (e *StartupError) Unwrap() []error {
	return append([]error{ErrStartup}, e.Errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
