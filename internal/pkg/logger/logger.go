// Package logger holds the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// ParseLevel maps a config string to a slog level; unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Initialize sets up the global logger with the specified level and format ("json" or "text").
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

// InitializeWithWriter is Initialize with an explicit destination. Tests use it to capture output.
func InitializeWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)

	mu.Lock()
	defaultLogger = l
	mu.Unlock()

	slog.SetDefault(l)
}

// Get returns the global logger, initialising it with info/text on first use.
func Get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	Initialize("info", "text")
	return Get()
}

// WithService returns a logger with the service name attached.
func WithService(serviceName string) *slog.Logger {
	return Get().With("service", serviceName)
}

// WithMethod returns a logger with the method name attached.
func WithMethod(methodName string) *slog.Logger {
	return Get().With("method", methodName)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs a warning.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs an error.
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// WarnContext logs a warning with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}
