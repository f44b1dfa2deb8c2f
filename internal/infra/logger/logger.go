package logger

import (
	"io"
	"log/slog"
	"os"
)

func New(env string) *slog.Logger {
	return newWithWriter(os.Stdout, env)
}

// dev — текстовый вывод и debug, иначе JSON с info.
func newWithWriter(w io.Writer, env string) *slog.Logger {
	if env == "dev" {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With("service", "telegisto-bot")
}
