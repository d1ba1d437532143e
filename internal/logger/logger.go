package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const loggerKey contextKey = "logger"

var globalLogger = zerolog.Nop()

// Initialize sets up the global logger on stdout
func Initialize(level string, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	globalLogger = New(os.Stdout, level, format)
}

// New builds a logger writing to w. format is "json" or "console".
func New(w io.Writer, level string, format string) zerolog.Logger {
	output := w
	if format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps debug, info, warn and error to zerolog levels; anything
// else is info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &globalLogger
}

// FromContext retrieves logger from context
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok {
		return logger
	}
	return &globalLogger
}

// WithContext adds logger to context
func WithContext(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithComponent returns a child of l tagged with a component name
func WithComponent(l *zerolog.Logger, component string) *zerolog.Logger {
	child := l.With().Str("component", component).Logger()
	return &child
}
