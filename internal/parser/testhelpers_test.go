package parser

import (
	"fmt"
	"strings"
	"testing"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

type parsed struct {
	fs   *source.FileSet
	b    *ast.Builder
	res  Result
	bag  *diag.Bag
	file *source.File
}

func parseSource(t *testing.T, src string, sourceType SourceType) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, Strict: sourceType == SourceModule})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(file, toks, b, Options{SourceType: sourceType, Reporter: rep})
	return parsed{fs: fs, b: b, res: res, bag: bag, file: file}
}

func parseOK(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src, SourceModule)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(p.bag))
	}
	return p
}

// stmts returns the top-level statements of the program.
func (p parsed) stmts() []ast.NodeID {
	list, _ := p.b.Nodes.List(p.res.Program)
	return list.Items
}

func (p parsed) kind(id ast.NodeID) ast.NodeKind { return p.b.Nodes.Kind(id) }

// find returns the first node of the given kind in document order.
func (p parsed) find(kind ast.NodeKind) ast.NodeID {
	found := ast.NoNodeID
	p.b.Nodes.Inspect(p.res.Program, func(id ast.NodeID, n *ast.Node) bool {
		if found.IsValid() {
			return false
		}
		if n.Kind == kind {
			found = id
			return false
		}
		return true
	})
	return found
}

func (p parsed) text(id ast.NodeID) string {
	n := p.b.Nodes.Get(id)
	return string(p.file.Content[n.Span.Start:n.Span.End])
}

func (p parsed) pos(sp source.Span) string {
	lc := p.fs.Position(sp)
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
