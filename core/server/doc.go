// Package server holds the HTTP server configuration and constants.
//
// While the start command handles the server startup, this package defines
// the configuration structure and valid values for server settings such as
// the deployment environment.
//
// # Configuration
//
// The Config struct defines the HTTP port, the environment (development,
// staging, production), the static asset directory and URL prefix, and the
// request body limit.
//
// # Usage
//
// This package is embedded by core/config and read by core/pipeline, which
// disables the Swagger endpoint when IsProduction reports true.
package server
