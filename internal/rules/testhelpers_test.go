package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/symbols"
)

// newUnit runs the front end over src as a module.
func newUnit(t *testing.T, src string) *Unit {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("rule.js", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, Strict: true})
	pr := parser.ParseFile(file, toks, b, parser.Options{Reporter: rep})
	return &Unit{
		FileSet:  fs,
		File:     file,
		Builder:  b,
		Program:  pr.Program,
		Tokens:   pr.Tokens,
		Comments: pr.Comments,
		Scopes:   symbols.Resolve(b, pr.Program, symbols.Options{Reporter: rep}),
	}
}

// runRule returns the findings of one rule as "line:col message".
func runRule(t *testing.T, r *Rule, src string, opt any) []string {
	t.Helper()
	u := newUnit(t, src)
	p := NewPass(u, r, opt)
	r.Run(p)
	out := []string{}
	for _, d := range p.Findings() {
		require.Equal(t, r.ID, d.RuleID)
		pos := u.FileSet.Position(d.Primary)
		out = append(out, fmt.Sprintf("%d:%d %s", pos.Line, pos.Col, d.Message))
	}
	return out
}

type ruleCase struct {
	src  string
	opt  any
	want []string
}

func runCases(t *testing.T, r *Rule, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got := runRule(t, r, tc.src, tc.opt)
			want := tc.want
			if want == nil {
				want = []string{}
			}
			require.Equal(t, want, got)
		})
	}
}
