// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Channels
//
// The API writes to a fixed set of independent channels (app, request, error,
// data). NewRegistry binds each channel to its own zap logger configured from
// <channel_dir>/<channel>.yaml, resolved against the working directory:
//
//	level: warn
//	encoding: json
//	outputPaths: ["logs/data.log"]
//
// Channels without a file use the base configuration (Level and Format).
// A file that exists but does not parse stops startup.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches
// it to the log entry, so all logs related to a request can be correlated.
//
// # Usage
//
//	logs, err := logger.NewRegistry(&cfg.Log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := logger.WithRayID(logs.MustChannel(logger.ChannelData), c)
//	l.Error("Procedure failed", zap.Error(err))
package logger
