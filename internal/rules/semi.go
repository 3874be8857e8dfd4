package rules

import (
	"strings"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

// Semi enforces ("always") or forbids ("never") the statement terminator on
// the statements where ASI applies.
var Semi = &Rule{
	ID:              "semi",
	DefaultSeverity: diag.SevError,
	DefaultOption:   "always",
	Doc:             "Require or disallow semicolons instead of ASI",
	CheckOption:     oneOf("always", "never"),
	Run:             runSemi,
}

func runSemi(p *Pass) {
	never := p.StringOption("always") == "never"
	p.Nodes().Inspect(p.Unit.Program, func(id ast.NodeID, n *ast.Node) bool {
		if !n.Has(ast.FlagNeedsSemicolon) || n.Has(ast.FlagHasError) {
			return true
		}
		switch {
		case !never && !n.Has(ast.FlagHasSemicolon):
			p.Report(n.Span.AtEnd(), "Missing semicolon.")
		case never && n.Has(ast.FlagHasSemicolon) && canRemoveSemicolon(p, n):
			semi := source.Span{File: n.Span.File, Start: n.Span.End - 1, End: n.Span.End}
			p.Report(semi, "Extra semicolon.")
		}
		return true
	})
}

// canRemoveSemicolon: dropping the ';' must not glue the statement to the
// next line, which happens when that line starts with ( [ / + - or `.
func canRemoveSemicolon(p *Pass, n *ast.Node) bool {
	next, ok := p.Unit.TokenAt(n.Span.End)
	if !ok || next.Kind == token.EOF || next.Kind == token.RBrace || next.Kind == token.Semicolon {
		return true
	}
	if p.Unit.Line(next.Span.Start) == p.Unit.Line(n.Span.End-1) {
		return false
	}
	return !asiHazard(next)
}

func asiHazard(tok token.Token) bool {
	if tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus {
		return false
	}
	return tok.Text != "" && strings.ContainsRune("-[(/+`", rune(tok.Text[0]))
}
