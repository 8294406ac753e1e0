package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON slog logger writing to stdout at the given level.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
// The level key is written as "severity" so Cloud Logging picks it up.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: severity,
	})
	return slog.New(handler)
}

func severity(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	a.Key = "severity"
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slog.LevelWarn {
		a.Value = slog.StringValue("WARNING")
	}
	return a
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
