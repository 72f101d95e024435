// Package config provides configuration management for the CNet API.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section, and every key maps to an upper-case environment variable
// (auth.secret_key -> AUTH_SECRET_KEY).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, environment, static assets, body limit
//   - Auth: bearer-token issuer, audience and signing key
//   - Cors: the cross-origin policy for API routes
//   - Log: base logging level/format and the per-channel config directory
//   - Database: MySQL connection, pool and query timeout
//   - Storage: optional S3/MinIO bucket for static assets
//
// # Validation
//
// Validate collects every problem at once into a *StartupError; the start
// command refuses to listen while any remain.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
