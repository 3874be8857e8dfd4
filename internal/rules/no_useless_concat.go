package rules

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/token"
)

// NoUselessConcat flags `+` between two string or template literals on the
// same line. In chains only the operands adjacent to the operator count:
// `a + 'b' + 'c'` is reported at the second plus. Off unless configured.
var NoUselessConcat = &Rule{
	ID:              "no-useless-concat",
	DefaultSeverity: diag.SevError,
	DefaultOff:      true,
	Doc:             "Disallow unnecessary concatenation of literals or template literals",
	Run:             runNoUselessConcat,
}

func runNoUselessConcat(p *Pass) {
	nodes := p.Nodes()
	nodes.Inspect(p.Unit.Program, func(id ast.NodeID, _ *ast.Node) bool {
		if !isConcat(nodes, id) {
			return true
		}
		bin, _ := nodes.Binary(id)
		left, right := innermost(nodes, bin.Left, true), innermost(nodes, bin.Right, false)
		ln, rn := nodes.Get(left), nodes.Get(right)
		if ln == nil || rn == nil || !isStringLike(nodes, left) || !isStringLike(nodes, right) {
			return true
		}
		if p.Unit.Line(ln.Span.End) != p.Unit.Line(rn.Span.Start) {
			return true
		}
		if op, ok := operatorBetween(p, ln, rn); ok {
			p.Report(op.Span, "Unexpected string concatenation of literals.")
		}
		return true
	})
}

func isConcat(nodes *ast.Nodes, id ast.NodeID) bool {
	if nodes.Kind(id) != ast.KindBinary {
		return false
	}
	bin, ok := nodes.Binary(id)
	return ok && bin.Op == token.Plus
}

// innermost descends into nested concatenations to the operand next to the
// operator: the rightmost leaf of a left chain, the leftmost of a right one.
func innermost(nodes *ast.Nodes, id ast.NodeID, fromLeft bool) ast.NodeID {
	for isConcat(nodes, id) {
		bin, _ := nodes.Binary(id)
		if fromLeft {
			id = bin.Right
		} else {
			id = bin.Left
		}
	}
	return id
}

func isStringLike(nodes *ast.Nodes, id ast.NodeID) bool {
	switch nodes.Kind(id) {
	case ast.KindLiteral:
		lit, _ := nodes.Literal(id)
		return lit.Kind == ast.LitString
	case ast.KindTemplate:
		return true
	}
	return false
}

// operatorBetween finds the `+` token between two operands; closing parens of
// a parenthesized left operand are skipped.
func operatorBetween(p *Pass, left, right *ast.Node) (token.Token, bool) {
	off := left.Span.End
	for {
		tok, ok := p.Unit.TokenAt(off)
		if !ok || tok.Span.Start >= right.Span.Start {
			return token.Token{}, false
		}
		if tok.Kind == token.Plus {
			return tok, true
		}
		off = tok.Span.End
	}
}
