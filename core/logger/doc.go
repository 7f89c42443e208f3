// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). All output is routed to stderr so that stdout
// stays reserved for machine-readable command output.
//
// # Run Correlation
//
// Every reconciliation run is assigned a run ID. The WithRunID helper attaches
// it to the logger, ensuring that all events belonging to a specific run can
// be correlated across the engine, the history store, and the status server.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("run started")
package logger
