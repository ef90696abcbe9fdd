// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Logs go to stderr by default. Stdout belongs to the prompt and the lines
// the user is editing, and interleaving log records there corrupts the
// terminal display.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Info("Session initialized", zap.String("session_id", id))
//	logger.Error("Read failed", zap.Error(err))
package logging
