// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for a batch CLI tool.
//
// # Store Awareness
//
// Each configured store target is synced independently. The WithStore helper
// attaches the store name to the log entry, ensuring that all logs related to
// a specific target can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Fetch complete")
//
//	// Per store target:
//	l := logger.WithStore(log, "s3")
//	l.Error("Sync failed", zap.Error(err))
package logger
