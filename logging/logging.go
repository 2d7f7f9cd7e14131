// Package logging configures the process-wide slog logger. Logs never go to
// stdout, which carries the game protocol.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// parseLevel converts a config level name to slog.Level. Unknown names mean info.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text logger writing to console and, when non-nil, file.
// It returns the logger it installed as the default.
func Setup(console, file io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if console != nil {
		handlers = append(handlers, slog.NewTextHandler(console, opts))
	}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, opts))
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = slog.NewTextHandler(io.Discard, opts)
	case 1:
		h = handlers[0]
	default:
		h = newFanout(handlers...)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
