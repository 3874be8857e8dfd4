package rules

import (
	"slices"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/symbols"
)

// NoUnusedVars flags bindings that are never read. Defaults follow ESLint:
// vars "all", args "after-used", caught errors ignored.
var NoUnusedVars = &Rule{
	ID:              "no-unused-vars",
	DefaultSeverity: diag.SevWarning,
	Doc:             "Disallow unused variables",
	Run:             runNoUnusedVars,
}

func runNoUnusedVars(p *Pass) {
	res := p.Unit.Scopes
	for i := 1; i <= res.Bindings.Len(); i++ {
		id := symbols.BindingID(i)
		b := res.Binding(id)
		if skipUnusedCheck(p, id, b) || isUsed(p, b) {
			continue
		}
		reportUnused(p, b)
	}
}

func skipUnusedCheck(p *Pass, id symbols.BindingID, b *symbols.Binding) bool {
	switch {
	case b.Has(symbols.BindingSelfName), b.Has(symbols.BindingExported):
		return true
	case b.Kind == symbols.BindingCatchParam:
		return true
	case b.Kind == symbols.BindingParam:
		return skipParam(p, id, b)
	}
	return false
}

// skipParam: setter parameters are always required; a plain identifier
// parameter is only reported when no later parameter is referenced.
func skipParam(p *Pass, id symbols.BindingID, b *symbols.Binding) bool {
	nodes := p.Nodes()
	if owner, ok := nodes.Property(p.Parent(b.Decl)); ok && owner.Kind == ast.PropSet {
		return true
	}
	fn, ok := nodes.Function(b.Decl)
	if !ok || !slices.Contains(fn.Params, b.Ident) {
		return false
	}
	res := p.Unit.Scopes
	for later := id + 1; int(later) <= res.Bindings.Len(); later++ {
		other := res.Binding(later)
		if other.Kind == symbols.BindingParam && other.Decl == b.Decl && len(other.Refs) > 0 {
			return true
		}
	}
	return false
}

func isUsed(p *Pass, b *symbols.Binding) bool {
	res := p.Unit.Scopes
	fnNode := selfFunction(p, b)
	for _, refID := range b.Refs {
		ref := res.Ref(refID)
		if isForInReturn(p, ref) {
			return true
		}
		if !ref.IsRead() || ref.Has(symbols.RefSelfUpdate) {
			continue
		}
		if fnNode.IsValid() && insideScopeOf(res, ref.Scope, fnNode) {
			continue // рекурсивный вызов самой функции
		}
		return true
	}
	return false
}

// selfFunction returns the function a binding names: a function declaration
// or a function/arrow expression used as a declarator initializer.
func selfFunction(p *Pass, b *symbols.Binding) ast.NodeID {
	nodes := p.Nodes()
	switch b.Kind {
	case symbols.BindingFunction:
		return b.Decl
	case symbols.BindingVar, symbols.BindingLet, symbols.BindingConst:
		d, ok := nodes.Declarator(b.Decl)
		if !ok || d.Target != b.Ident {
			return ast.NoNodeID
		}
		if k := nodes.Kind(d.Init); k == ast.KindFuncExpr || k == ast.KindArrow {
			return d.Init
		}
	}
	return ast.NoNodeID
}

func insideScopeOf(res *symbols.Result, scope symbols.ScopeID, node ast.NodeID) bool {
	for s := res.Scope(scope); s != nil; s = res.Scope(s.Parent) {
		if s.Node == node && s.Kind != symbols.ScopeModule && s.Kind != symbols.ScopeGlobal {
			return true
		}
	}
	return false
}

// isForInReturn: `for (var k in o) return;` uses k only to test for an own
// enumerable property.
func isForInReturn(p *Pass, ref *symbols.Reference) bool {
	nodes := p.Nodes()
	target := p.Parent(ref.Ident)
	if nodes.Kind(target) == ast.KindDeclarator {
		target = p.Parent(p.Parent(target))
	}
	if nodes.Kind(target) != ast.KindForIn {
		return false
	}
	loop, _ := nodes.ForIn(target)
	body := loop.Body
	if list, ok := nodes.List(body); ok && nodes.Kind(body) == ast.KindBlock {
		if len(list.Items) == 0 {
			return false
		}
		body = list.Items[0]
	}
	return nodes.Kind(body) == ast.KindReturn
}

func reportUnused(p *Pass, b *symbols.Binding) {
	res := p.Unit.Scopes
	varScope := res.VarScopeOf(b.Scope)
	at := p.Nodes().Get(b.Ident).Span
	assigned := false
	for _, refID := range b.Refs {
		ref := res.Ref(refID)
		if !ref.IsWrite() {
			continue
		}
		assigned = true
		if res.VarScopeOf(ref.Scope) == varScope {
			at = ref.Span
		}
	}
	name := res.Name(b.Name)
	if assigned {
		p.Reportf(at, "'%s' is assigned a value but never used.", name)
		return
	}
	p.Reportf(at, "'%s' is defined but never used.", name)
}
