package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Info("model loaded from %s", "model/best.onnx")
	l.Warning("database ping failed")
	l.Error("lookup %q failed", "Cola")
	l.Close()

	for file, want := range map[string]string{
		"info.log":    "model loaded from model/best.onnx",
		"warning.log": "database ping failed",
		"error.log":   `lookup "Cola" failed`,
	} {
		b, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		if !strings.Contains(string(b), want) {
			t.Fatalf("%s missing %q, got %s", file, want, string(b))
		}
	}
}

func TestNewWriter_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.Info("a")
	l.Warning("b")
	l.Error("c")

	out := buf.String()
	for _, prefix := range []string{"INFO", "WARNING", "ERROR"} {
		if !strings.Contains(out, prefix) {
			t.Fatalf("output missing %s prefix: %s", prefix, out)
		}
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Fatalf("expected caller file in output: %s", out)
	}
}
