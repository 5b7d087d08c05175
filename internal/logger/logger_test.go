package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func capture(t *testing.T, level, format string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	initWith(level, format, zapcore.AddSync(&buf))
	t.Cleanup(func() { initWith("error", "text", zapcore.AddSync(&bytes.Buffer{})) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"loud", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, "warn", "text")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below warn were written: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "warn 3") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "error 4") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	buf := capture(t, "debug", "json")

	Info("chat %d ready", 42)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "chat 42 ready" {
		t.Errorf("msg = %v, want %q", entry["msg"], "chat 42 ready")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	caller, _ := entry["caller"].(string)
	if !strings.HasPrefix(caller, "logger/logger_test.go") {
		t.Errorf("caller = %q, want the test file", caller)
	}
}
