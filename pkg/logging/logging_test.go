package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	slogctx "github.com/veqryn/slog-context"
)

func TestLogging_ParseLevel(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"empty defaults to info", "", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"upper case", "DEBUG", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			req.NoError(err)
			req.Equal(tt.want, level, "ParseLevel(%q)", tt.input)
		})
	}

	_, err := ParseLevel("verbose")
	req.Error(err)
}

func TestLogging_Setup(t *testing.T) {
	req := require.New(t)
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	ctx := Setup(context.Background(), &buf, slog.LevelInfo, false)
	ctx = slogctx.With(ctx, "file", "App.java")

	slogctx.Debug(ctx, "hidden")
	slogctx.Info(ctx, "loaded project", "files", 3)

	out := buf.String()
	req.NotContains(out, "hidden")
	req.Contains(out, "loaded project")
	req.Contains(out, "files=3")
	req.Contains(out, "file=App.java", "context attributes are added")
	req.NotContains(out, "\x1b[", "no color codes")
}
