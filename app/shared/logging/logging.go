// Package logging builds the process logger from the observability config.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/dugout/config"
)

// New returns a text logger in development and a JSON logger elsewhere, at
// the configured level. Unknown levels fall back to info.
func New(cfg config.ObservabilityConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.Environment == "development" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(
		slog.String("service", "dugout"),
		slog.String("environment", cfg.Environment),
	)
}

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
