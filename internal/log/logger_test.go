package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWithComponentStampsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:   slog.LevelInfo,
		Handler: slog.NewTextHandler(&buf, nil),
	}).WithComponent(ComponentHTTP)

	logger.Info("Request complete")

	line := buf.String()
	if got := strings.Count(line, FieldComponent+"="); got != 1 {
		t.Fatalf("component attribute appears %d times, want 1: %s", got, line)
	}
	if !strings.Contains(line, FieldComponent+"="+ComponentHTTP) {
		t.Errorf("missing %s=%s in %s", FieldComponent, ComponentHTTP, line)
	}
}

func TestWithComponentRescopes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)}).
		WithComponent(ComponentSession).
		WithComponent(ComponentEvents)

	logger.Warn("Channel closed")

	line := buf.String()
	if strings.Contains(line, FieldComponent+"="+ComponentSession) {
		t.Errorf("stale component survived rescoping: %s", line)
	}
	if !strings.Contains(line, FieldComponent+"="+ComponentEvents) {
		t.Errorf("missing rescoped component in %s", line)
	}
	if got := strings.Count(line, FieldComponent+"="); got != 1 {
		t.Errorf("component attribute appears %d times, want 1: %s", got, line)
	}
}
