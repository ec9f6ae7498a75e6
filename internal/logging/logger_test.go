package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"warn", log.WarnLevel},
		{" warning ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Setenv(EnvLevel, "warn")
	t.Setenv(EnvPrefix, "")
	t.Setenv(EnvFormat, "")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf)
	lg.Info("hidden")
	lg.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "adhoc") {
		t.Errorf("default prefix missing: %q", out)
	}
	if err := lg.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}

func TestIsDebug(t *testing.T) {
	t.Setenv(EnvLevel, "Debug")
	if !IsDebug() {
		t.Error("expected debug")
	}
	t.Setenv(EnvLevel, "info")
	if IsDebug() {
		t.Error("expected not debug")
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"JSON", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"", log.TextFormatter},
		{"pretty", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvFormat, "json")

	var buf bytes.Buffer
	NewLoggerWithWriter(&buf).Info("built", "rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v: %q", err, buf.String())
	}
	if entry["msg"] != "built" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestNewLoggerToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Setenv(EnvToFile, "1")
	t.Setenv(EnvDir, dir)
	t.Setenv(EnvLevel, "")

	lg := NewLogger()
	lg.Info("to file")
	if err := lg.Close(); err != nil {
		t.Fatal(err)
	}
	if err := lg.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "adhoc-*-debug.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("log files = %v, %v", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content %q", data)
	}
}
