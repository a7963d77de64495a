package bootstrap

import (
	"io"
	"log/slog"

	"github.com/at-ishikawa/definer/internal/config"
)

// NewLogger builds a logger from the log section of the config.
// debugMode forces the debug level.
func NewLogger(cfg config.LogConfig, debugMode bool, w io.Writer) *slog.Logger {
	logLevel := parseLevel(cfg.Level)
	if debugMode {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
