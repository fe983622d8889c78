package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNew_AddsServiceAndContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Service:       ServiceInfo{Name: "treatment-schedule", Version: "1.2.3"},
		Environment:   EnvDev,
		Level:         slog.LevelInfo,
		DefaultModule: Module("notify"),
		Writer:        &buf,
	})

	ctx := WithRunID(WithRequestID(context.Background(), "req-1"), "run-1")
	logger.InfoContext(ctx, "hello", slog.Int("count", 2))
	logger.DebugContext(ctx, "suppressed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"message":    "hello",
		"severity":   "INFO",
		"service":    "treatment-schedule",
		"version":    "1.2.3",
		"env":        "dev",
		"module":     "notify",
		"request_id": "req-1",
		"run_id":     "run-1",
		"count":      float64(2),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := "0190b6f0-3c5e-7a8b-9c0d-1e2f3a4b5c6d"
	if got := ValidateAndExtractRequestID(valid); got != valid {
		t.Errorf("valid id replaced: %q", got)
	}
	for _, in := range []string{"", "not-a-uuid"} {
		got := ValidateAndExtractRequestID(in)
		if got == in || got == "" {
			t.Errorf("ValidateAndExtractRequestID(%q) = %q, want a fresh id", in, got)
		}
	}
}
