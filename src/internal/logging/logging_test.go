package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("info", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hidden")
	l.Info("shown", "provider", "crossref")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "provider=crossref") || !strings.Contains(out, Prefix) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn: %q", buf.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("loud", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
