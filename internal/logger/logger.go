// Package logger wraps log/slog behind package-level helpers so call
// sites stay one line and the handler is configured in one place.
package logger

import (
	"log/slog"
	"os"
)

var base *slog.Logger

// Init builds the process logger. json selects the JSON handler; the text
// handler is for local runs.
func Init(level string, json bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	base = slog.New(h)
	slog.SetDefault(base)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// get falls back to a default text logger when Init was never called,
// which keeps tests and tools working without setup.
func get() *slog.Logger {
	if base == nil {
		Init("info", false)
	}
	return base
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }

func Info(msg string, args ...any) { get().Info(msg, args...) }

func Warn(msg string, args ...any) { get().Warn(msg, args...) }

func Error(msg string, args ...any) { get().Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, args...)
	os.Exit(1)
}
