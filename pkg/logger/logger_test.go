package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "json")

	ctx := WithContext(context.Background(), RequestIDKey, "req-123")
	Component(ctx, "orchestrator").Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if line["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", line["request_id"])
	}
	if line["component"] != "orchestrator" {
		t.Errorf("component = %v, want orchestrator", line["component"])
	}
}
