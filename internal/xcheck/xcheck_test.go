package xcheck

import (
	"context"
	"testing"

	"lintel/internal/lint"
	"lintel/internal/source"
)

func check(t *testing.T, src string) *Report {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte(src)))
	r, err := Check(context.Background(), fs, file, lint.DefaultConfig())
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	return r
}

func TestCheckAgree(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		verdict string
	}{
		{"valid module", "import x from 'y';\nexport const z = () => x ?? 1;\n", "ok"},
		{"class and template", "class A { get p() { return `${this.q}`; } }\n", "ok"},
		{"unclosed call", "foo(1, 2;\n", "both-reject"},
		{"stray operator", "let = ;\n", "both-reject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := check(t, tt.src)
			if got := r.Verdict(); got != tt.verdict {
				t.Errorf("Verdict() = %s, want %s (lintel=%v tree-sitter=%v)", got, tt.verdict, r.Lintel, r.TreeSitter)
			}
			if !r.Agree() {
				t.Errorf("parsers disagree: lintel=%v tree-sitter=%v", r.Lintel, r.TreeSitter)
			}
		})
	}
}

func TestRuleFindingsAreNotSyntax(t *testing.T) {
	// no-undef, semi и повторное объявление не считаются синтаксическими ошибками
	r := check(t, "foo()\nlet a; let a;\n")
	if len(r.Lintel) != 0 {
		t.Errorf("rule findings leaked: %v", r.Lintel)
	}
}

func TestIssuePositions(t *testing.T) {
	r := check(t, "let a = 1;\nlet b = (2;\n")
	if len(r.Lintel) == 0 || len(r.TreeSitter) == 0 {
		t.Fatalf("expected both to reject: %+v", r)
	}
	if r.Lintel[0].Line != 2 {
		t.Errorf("lintel issue line = %d, want 2", r.Lintel[0].Line)
	}
	if r.TreeSitter[0].Line != 2 {
		t.Errorf("tree-sitter issue line = %d, want 2", r.TreeSitter[0].Line)
	}
}
