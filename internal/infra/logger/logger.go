package logger

import (
	"log/slog"
	"os"
)

// New настраивает slog: в dev — читаемый текст и debug-уровень,
// иначе — JSON для сборщика логов.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if env == "dev" {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
