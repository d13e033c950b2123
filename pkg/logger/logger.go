package logger

import (
	"log/slog"
	"os"
)

const serviceName = "event-registration"

var defaultLogger *slog.Logger

// Init configures the process logger. Production gets JSON at info level,
// everything else a human-readable handler at debug level. The configured
// logger becomes the slog default so library code lands in the same stream.
func Init(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "production":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler).With("service", serviceName)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// LoggerWrapper returns the process logger, initializing a development one
// when Init was never called.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
