package ui

import (
	"strings"
	"testing"

	"lintel/internal/driver"
)

func TestProgressModelEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("lint", []string{"a.js", "b.js"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.js", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if m.items[0].status != "linting" {
		t.Fatalf("status = %q, want linting", m.items[0].status)
	}
	m.Update(eventMsg{File: "a.js", Stage: driver.StageAnalyze, Status: driver.StatusDone, Errors: 2, Warnings: 1})
	m.Update(eventMsg{File: "b.js", Stage: driver.StageRead, Status: driver.StatusError, Errors: 1})
	// повтор не должен считаться дважды
	m.Update(eventMsg{File: "b.js", Stage: driver.StageRead, Status: driver.StatusError, Errors: 1})
	m.Update(eventMsg{File: "unknown.js", Status: driver.StatusDone})

	if m.finished != 2 || m.errors != 3 || m.warnings != 1 {
		t.Fatalf("finished=%d errors=%d warnings=%d", m.finished, m.errors, m.warnings)
	}
	view := m.View()
	for _, want := range []string{"lint (2/2)", "a.js", "2E 1W", "3 errors, 1 warnings"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must finish the model")
	}
	if !strings.Contains(m.View(), "done: lint") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"very/long/path/to/file.js", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"名前名前名前.js", 7, "名前..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
