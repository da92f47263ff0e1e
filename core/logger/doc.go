// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework
// used by the serve command.
//
// # Context Awareness
//
// WithRayID extracts the request id set by the rayid middleware and attaches
// it to the log entry. WithPlugin scopes a logger to one managed file so that
// every line a reconciler writes carries its key and path.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Watching value directory")
package logger
