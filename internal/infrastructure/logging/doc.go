// Package logging provides structured logging for localstore.
//
// This package wraps Go's standard log/slog package so every component logs
// with the same handler, level and default fields (service, version).
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stderr"   # stderr, stdout
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("database handle opened", "name", "ecc.db")
//	logger.Warn("insert failed", "table", table, "error", err)
//
// # Security
//
// Never log record values or condition strings verbatim; they may carry
// user data. Log the table, operation and error instead.
package logging
