package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the global slog logger with JSON output to stdout.
// The level is read from LOG_LEVEL (debug, info, warn, error; default info).
func Setup() {
	slog.SetDefault(slog.New(NewConsoleHandler()))
}

// NewConsoleHandler builds the stdout JSON handler every process sink
// shares, tagged with the service name.
func NewConsoleHandler() slog.Handler {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return handler.WithAttrs([]slog.Attr{
		slog.String("service", "firewatch-backend"),
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
