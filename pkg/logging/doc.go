// Package logging provides structured logging configuration for stubservice.
//
// This package wraps log/slog so every component logs the same way. It
// supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("stubservice started", "port", 3000)
//
// # Integration
//
// Components accept a *slog.Logger through a functional option. If no logger
// is provided they use logging.Nop().
package logging
