package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/heartmarshall/vocabmeanings/internal/config"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (scripts, CI).
// Format "text" produces human-readable output with source info (development).
// Format "auto" picks text when stderr is a terminal and JSON otherwise.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, isTerminal bool, cfg config.LogConfig) *slog.Logger {
	format := resolveFormat(cfg.Format, isTerminal)

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: format == "text",
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func resolveFormat(format string, isTerminal bool) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return "json"
	case "text":
		return "text"
	default:
		if isTerminal {
			return "text"
		}
		return "json"
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
