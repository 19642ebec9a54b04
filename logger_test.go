package canvasview

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { SetLogger(nil) })

	cfg := DefaultConfig()
	cfg.ZoomValue = 2
	NewController(cfg)
	if !strings.Contains(buf.String(), "invalid zoomValue") {
		t.Errorf("log = %q, want invalid zoomValue warning", buf.String())
	}

	buf.Reset()
	c := newTestController()
	c.OnClick(func(ClickContext) { panic("boom") })
	mouseDown(c, 10, 10)
	mouseUp(c, 10, 10)
	if out := buf.String(); !strings.Contains(out, "callback panicked") || !strings.Contains(out, "level=ERROR") {
		t.Errorf("log = %q, want recovered panic at error level", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
