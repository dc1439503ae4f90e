// Package logging configures the process logger. Records go to a tint
// handler wrapped by slog-context, so attributes added to a context with
// slogctx.With show up on every record logged through that context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
)

const timeFormat = "15:04:05.000"

// ParseLevel maps a --log-level value to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// NewLogger builds the logger Setup installs
func NewLogger(w io.Writer, level slog.Level, color bool) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    !color,
	})
	return slog.New(slogctx.NewHandler(handler, nil))
}

// Setup installs a logger writing to w as the default and returns ctx
// carrying it.
func Setup(ctx context.Context, w io.Writer, level slog.Level, color bool) context.Context {
	logger := NewLogger(w, level, color)
	slog.SetDefault(logger)
	return slogctx.NewCtx(ctx, logger)
}
