package rules

import (
	"fmt"
	"math"
	"sort"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/symbols"
	"lintel/internal/token"
)

// Unit is everything the front end produced for one file. Rules only read it.
type Unit struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program ast.NodeID
	// Tokens are the significant tokens, EOF-terminated; comments are split out.
	Tokens   []token.Token
	Comments []token.Token
	Scopes   *symbols.Result
}

// TokenAt returns the first significant token starting at or after offset.
func (u *Unit) TokenAt(offset uint32) (token.Token, bool) {
	i := sort.Search(len(u.Tokens), func(i int) bool { return u.Tokens[i].Span.Start >= offset })
	if i == len(u.Tokens) {
		return token.Token{}, false
	}
	return u.Tokens[i], true
}

// Line returns the 1-based line of an offset.
func (u *Unit) Line(offset uint32) uint32 {
	return u.FileSet.Position(source.Span{File: u.File.ID, Start: offset, End: offset}).Line
}

// Pass is the view of one rule over one unit. Findings go to a private
// buffer so rules can run concurrently.
type Pass struct {
	Unit   *Unit
	Rule   *Rule
	Option any

	findings []diag.Diagnostic
}

// NewPass binds a rule to a unit with the option chosen by configuration.
func NewPass(u *Unit, r *Rule, opt any) *Pass {
	if opt == nil {
		opt = r.DefaultOption
	}
	return &Pass{Unit: u, Rule: r, Option: opt}
}

func (p *Pass) Nodes() *ast.Nodes { return p.Unit.Builder.Nodes }

// Parent returns the parent of id, NoNodeID for the root or a missing node.
func (p *Pass) Parent(id ast.NodeID) ast.NodeID {
	if n := p.Nodes().Get(id); n != nil {
		return n.Parent
	}
	return ast.NoNodeID
}

// Name returns the identifier text of an Ident node.
func (p *Pass) Name(id ast.NodeID) string { return p.Unit.Builder.Name(id) }

// Report records a finding at span.
func (p *Pass) Report(span source.Span, msg string, notes ...diag.Note) {
	p.findings = append(p.findings, diag.Diagnostic{
		Code:    diag.RuleFinding,
		RuleID:  p.Rule.ID,
		Message: msg,
		Primary: span,
		Notes:   notes,
	})
}

func (p *Pass) Reportf(span source.Span, format string, args ...any) {
	p.Report(span, fmt.Sprintf(format, args...))
}

// Findings returns the reported diagnostics; severity is left unset.
func (p *Pass) Findings() []diag.Diagnostic { return p.findings }

// StringOption returns the option as a string or def.
func (p *Pass) StringOption(def string) string {
	if s, ok := p.Option.(string); ok {
		return s
	}
	return def
}

// IntOption returns a numeric option. Config files decode numbers as int,
// int64 or float64; ESLint's {max: n} object form is accepted too.
func (p *Pass) IntOption(def int) int {
	if n, ok := toInt(p.Option); ok {
		return n
	}
	return def
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case map[string]any:
		if m, ok := n["max"]; ok {
			return toInt(m)
		}
		if m, ok := n["maximum"]; ok {
			return toInt(m)
		}
	}
	return 0, false
}
