package logger

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New builds the application logger. JSON goes to log collectors; text is for people at a terminal.
func New(w io.Writer, level, format string) *slog.Logger {
	var slogLevel slog.Level

	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	if format == FormatText {
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(slogLevel),
			ReportTimestamp: true,
			Prefix:          "tictactoe",
		})

		return slog.New(handler)
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}
