package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `mapstructure:"environment" default:"development"`
	// StaticDir is the local directory served as static assets.
	StaticDir string `mapstructure:"static_dir" default:"wwwroot"`
	// StaticPrefix is the URL prefix under which static assets are served.
	StaticPrefix string `mapstructure:"static_prefix" default:"/static"`
	// BodyLimitMB is the maximum accepted request body size in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch strings.ToLower(c.Environment) {
	case EnvDevelopment, EnvStaging, EnvProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in the production environment.
// API documentation and other development aids are disabled there.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// BodyLimit returns the request body limit in bytes, defaulting to 4 MB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
