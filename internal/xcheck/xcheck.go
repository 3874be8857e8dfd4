// Package xcheck cross-checks lintel's syntax verdict against the
// tree-sitter JavaScript grammar. It is a development aid: a file that one
// parser accepts and the other rejects points at a grammar gap in one of them.
package xcheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"lintel/internal/diag"
	"lintel/internal/lint"
	"lintel/internal/source"
)

// Issue is one syntax problem found by either side.
type Issue struct {
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
	Message string `json:"message"`
}

// Report compares both verdicts for one file.
type Report struct {
	Path       string  `json:"path"`
	Lintel     []Issue `json:"lintel"`
	TreeSitter []Issue `json:"treeSitter"`
}

// Agree reports whether both parsers accept the file or both reject it.
func (r *Report) Agree() bool {
	return (len(r.Lintel) == 0) == (len(r.TreeSitter) == 0)
}

// Verdict returns a one-word summary: ok, both-reject, lintel-only or tree-sitter-only.
func (r *Report) Verdict() string {
	switch {
	case len(r.Lintel) == 0 && len(r.TreeSitter) == 0:
		return "ok"
	case len(r.Lintel) > 0 && len(r.TreeSitter) > 0:
		return "both-reject"
	case len(r.Lintel) > 0:
		return "lintel-only"
	default:
		return "tree-sitter-only"
	}
}

// Check parses file with both front ends. Only lexer and parser diagnostics
// count on lintel's side; rule findings and redeclarations (an early error
// tree-sitter does not model) are skipped.
func Check(ctx context.Context, fs *source.FileSet, file *source.File, cfg lint.Config) (*Report, error) {
	report := &Report{Path: file.Path, Lintel: []Issue{}, TreeSitter: []Issue{}}

	_, diags := lint.Front(fs, file, cfg)
	for _, d := range diags {
		if !d.IsSyntax() || d.Code == diag.SynRedeclared {
			continue
		}
		pos := fs.Position(d.Primary)
		report.Lintel = append(report.Lintel, Issue{Line: pos.Line, Column: pos.Col, Message: d.Message})
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		collectErrors(root, func(n *sitter.Node, msg string) {
			off := n.StartByte()
			pos := fs.Position(source.Span{File: file.ID, Start: off, End: off})
			report.TreeSitter = append(report.TreeSitter, Issue{Line: pos.Line, Column: pos.Col, Message: msg})
		})
	}
	return report, nil
}

// collectErrors walks the subtrees that contain errors and reports ERROR
// and MISSING nodes in document order.
func collectErrors(n *sitter.Node, report func(*sitter.Node, string)) {
	switch {
	case n.IsMissing():
		report(n, fmt.Sprintf("missing %s", n.Type()))
		return
	case n.IsError():
		report(n, "syntax error")
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			collectErrors(child, report)
		}
	}
}
