// Package logger provides structured logging for the application using
// the standard library log/slog package.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds the settings needed to construct the application
// logger.
type LoggerConfig struct {
	// Level is the minimum level to emit: debug, info, warn or error.
	Level string
}

// Setup initializes the application's logging system based on the
// provided configuration. It creates a structured JSON logger with the
// appropriate log level, sets it as the process default and returns it.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		// Warn through a temporary text logger; the JSON logger does
		// not exist yet at this point.
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger, nil
}
