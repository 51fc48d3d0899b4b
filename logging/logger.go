package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Init configures the process-wide slog default with a tinted handler.
// The level is taken from LOG_LEVEL (debug, info, warn, error).
func Init() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      levelFromEnv(),
		TimeFormat: time.Kitchen,
	})

	slog.SetDefault(slog.New(handler))
}

// Component returns a logger tagged with the component name.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String("component", name))
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
