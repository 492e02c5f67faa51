package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	heartriskErrors "github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Options configures the process-wide logger installed by Setup.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
	// Format is "json", or "text"/"console" for the human-readable writer.
	Format string
	// File, when set, receives the log stream through a rotating writer
	// instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Setup builds a zerolog logger from opts, installs it as the default
// provider and routes pkg/errors warnings to it. The returned closer flushes
// the rotating file writer when one is used.
func Setup(opts Options) (io.Closer, error) {
	level, err := ToLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		out, closer = rotator, rotator
	}
	if strings.EqualFold(opts.Format, "console") || strings.EqualFold(opts.Format, "text") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.File != ""}
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	provider := NewZerologProvider(zl, level)
	SetProvider(provider)

	warnLogger := provider.GetLoggerWithName("warnings")
	heartriskErrors.SetZerologWarnFunc(func(w error) {
		warnLogger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
	})
	return closer, nil
}

// ToLogLevel parses a level name. The empty string means info.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, heartriskErrors.NewValidationError("log.level", "must be one of debug, info, warn, error", level)
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
