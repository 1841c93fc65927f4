package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// InitLogger installs a tint handler on stdout at the LOG_LEVEL level.
func InitLogger() {
	InitLoggerTo(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// InitLoggerTo is InitLogger for callers that keep stdout for their own
// output.
func InitLoggerTo(w io.Writer, level slog.Level) {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
	})

	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
