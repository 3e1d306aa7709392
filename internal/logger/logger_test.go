package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebugRespectsVerbose(t *testing.T) {
	defer reset()

	buf := &bytes.Buffer{}
	SetOutput(buf)

	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when verbose is off, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestWarnAlwaysPrints(t *testing.T) {
	defer reset()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetVerbose(false)

	Warn("skipped record: %s", "no title")
	if !strings.Contains(buf.String(), "[WARN] skipped record: no title") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestErrorAlwaysPrints(t *testing.T) {
	defer reset()

	buf := &bytes.Buffer{}
	SetOutput(buf)

	Error("save failed: %s", "disk full")
	if !strings.Contains(buf.String(), "[ERROR] save failed: disk full") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetVerbose(true)

	Section("Ingest")
	if !strings.Contains(buf.String(), "=== Ingest ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}

func TestIsVerbose(t *testing.T) {
	defer reset()

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be enabled")
	}
}
