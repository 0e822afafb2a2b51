package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Default is the package-wide logger used by the engine when no
// per-component logger is injected.
var Default *slog.Logger

func init() {
	Default = New("info", os.Stdout)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON-structured logger at the given level.
func New(level string, output io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// NewText creates a text-formatted logger (useful for development and the CLI).
func NewText(level string, output io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// SetDefault replaces the package default logger.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}

// Debug logs a debug message with the default logger.
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message with the default logger.
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning message with the default logger.
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error message with the default logger.
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a child of the default logger carrying extra attributes.
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
