// Package log provides the structured logging interface used across heartrisk.
//
// The interface is slog-shaped so call sites read the same whether the
// backend is zerolog (the default, see Setup) or the in-memory TestLogger.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("boosting").With(
//	    log.ModelIDKey, ens.ID,
//	)
//	logger.Info("Training finished",
//	    log.OperationKey, log.OperationTrain,
//	    log.SamplesKey, 303,
//	    log.RoundsKey, 10,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. Error additionally accepts an error
// as the first field, in which case its stack trace is attached.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Per-round training diagnostics are emitted at this level.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error it is logged under "error" together
	// with the cockroachdb/errors stack trace.
	//
	// Example:
	//   logger.Error("Narration failed",
	//       err,
	//       log.ProviderKey, "gemini",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip computing values that are only logged.
	//
	//   if logger.Enabled(ctx, LevelDebug) {
	//       logger.Debug("round finished", log.LossKey, logLoss(...))
	//   }
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
// SetProvider swaps the process-wide provider; tests install a
// TestLoggerProvider through it.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
