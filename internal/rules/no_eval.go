package rules

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
)

// NoEval flags every use of the global eval: direct calls, indirect
// references (`const e = eval`) and access through the global object
// (`window.eval`, `globalThis['eval']`). A local binding named eval shadows
// the global and is not reported.
var NoEval = &Rule{
	ID:              "no-eval",
	DefaultSeverity: diag.SevError,
	Doc:             "Disallow the use of eval()",
	Run:             runNoEval,
}

var globalObjects = map[string]bool{"window": true, "global": true, "globalThis": true}

func runNoEval(p *Pass) {
	nodes := p.Nodes()
	nodes.Inspect(p.Unit.Program, func(id ast.NodeID, n *ast.Node) bool {
		switch n.Kind {
		case ast.KindIdent:
			if p.Name(id) == "eval" && isGlobalRef(p, id) {
				p.Report(n.Span, "eval can be harmful.")
			}
		case ast.KindMember:
			m, _ := nodes.Member(id)
			if memberName(p, m.Property, n.Has(ast.FlagComputed)) == "eval" && isGlobalObject(p, m.Object) {
				p.Report(nodes.Get(m.Property).Span, "eval can be harmful.")
			}
		}
		return true
	})
}

// isGlobalRef reports whether ident is a reference that resolved to no
// declaration of the file.
func isGlobalRef(p *Pass, ident ast.NodeID) bool {
	ref, ok := p.Unit.Scopes.RefAt(ident)
	return ok && !ref.Resolved()
}

// isGlobalObject matches window, global and globalThis (unshadowed) and
// chains of them such as window.window.
func isGlobalObject(p *Pass, id ast.NodeID) bool {
	nodes := p.Nodes()
	switch nodes.Kind(id) {
	case ast.KindIdent:
		return globalObjects[p.Name(id)] && isGlobalRef(p, id)
	case ast.KindMember:
		m, _ := nodes.Member(id)
		return globalObjects[memberName(p, m.Property, nodes.Get(id).Has(ast.FlagComputed))] && isGlobalObject(p, m.Object)
	}
	return false
}

// memberName returns the statically known property name of a member access.
func memberName(p *Pass, prop ast.NodeID, computed bool) string {
	nodes := p.Nodes()
	switch nodes.Kind(prop) {
	case ast.KindIdent:
		if !computed {
			return p.Name(prop)
		}
	case ast.KindLiteral:
		if lit, _ := nodes.Literal(prop); lit.Kind == ast.LitString {
			return lit.Value
		}
	case ast.KindTemplate:
		if tpl, _ := nodes.Template(prop); len(tpl.Exprs) == 0 && len(tpl.Quasis) == 1 {
			return tpl.Quasis[0].Cooked
		}
	}
	return ""
}
