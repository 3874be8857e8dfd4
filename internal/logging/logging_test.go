package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want hclog.Level
	}{
		{"", hclog.Warn},
		{"trace", hclog.Trace},
		{"DEBUG", hclog.Debug},
		{" info ", hclog.Info},
		{"warning", hclog.Warn},
		{"error", hclog.Error},
		{"off", hclog.Off},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNewHonoursEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	var buf bytes.Buffer
	log, err := New(Options{Level: "error", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("discovered", "files", 3)
	if !strings.Contains(buf.String(), "discovered") || !strings.Contains(buf.String(), "files=3") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

func TestNewJSON(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSONFormat: true, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	log.Debug("hidden")
	out := buf.String()
	if !strings.Contains(out, `"@message":"hello"`) {
		t.Errorf("json line missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug must be filtered at info: %q", out)
	}
}

func TestNewBadLevel(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected an error")
	}
}
