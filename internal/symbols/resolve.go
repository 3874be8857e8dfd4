package symbols

import (
	"fmt"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
)

// Options configures Resolve.
type Options struct {
	// Script resolves the file as a classic script: no module scope, and
	// top-level function declarations behave like var.
	Script bool
	// Envs selects predefined globals; zero means DefaultEnvs.
	Envs     Env
	Reporter diag.Reporter
}

// Result is the scope tree of one file with every binding and reference.
type Result struct {
	Scopes   *Scopes
	Bindings *Bindings
	Refs     *Refs
	Strings  *source.Interner
	Global   ScopeID
	// Root is the module scope, or Global for scripts.
	Root ScopeID
	// Unresolved lists references that found neither a declaration nor a
	// predefined global, in source order.
	Unresolved []RefID

	scopeOf   map[ast.NodeID]ScopeID
	refOf     map[ast.NodeID]RefID
	bindingOf map[ast.NodeID]BindingID
}

// Resolve builds scopes for program and binds every reference. Redeclared
// lexical names are reported as syntax errors through opts.Reporter.
func Resolve(b *ast.Builder, program ast.NodeID, opts Options) *Result {
	envs := opts.Envs
	if envs == 0 {
		envs = DefaultEnvs
	}
	res := &Result{
		Scopes:    NewScopes(0),
		Bindings:  NewBindings(0),
		Refs:      NewRefs(0),
		Strings:   b.Strings,
		scopeOf:   make(map[ast.NodeID]ScopeID),
		refOf:     make(map[ast.NodeID]RefID),
		bindingOf: make(map[ast.NodeID]BindingID),
	}
	r := &resolver{
		nodes:     b.Nodes,
		strings:   b.Strings,
		res:       res,
		reporter:  opts.Reporter,
		globals:   Globals(envs),
		module:    !opts.Script,
		arguments: b.Strings.Intern("arguments"),
	}

	var span source.Span
	if node := b.Nodes.Get(program); node != nil {
		span = node.Span
	}
	res.Global = res.Scopes.New(ScopeGlobal, NoScopeID, program, span)
	res.Root = res.Global
	r.scope = res.Global
	if r.module {
		res.Root = res.Scopes.New(ScopeModule, res.Global, program, span)
		r.scope = res.Root
	}
	res.scopeOf[program] = res.Root

	if list, ok := b.Nodes.List(program); ok {
		r.statements(list.Items)
	}
	r.bind()
	return res
}

// Scope returns the scope or nil.
func (res *Result) Scope(id ScopeID) *Scope { return res.Scopes.Get(id) }

func (res *Result) Binding(id BindingID) *Binding { return res.Bindings.Get(id) }

func (res *Result) Ref(id RefID) *Reference { return res.Refs.Get(id) }

// Name returns the text of an interned name.
func (res *Result) Name(id source.StringID) string {
	s, _ := res.Strings.Lookup(id)
	return s
}

// BindingName returns the declared name of a binding.
func (res *Result) BindingName(id BindingID) string {
	if b := res.Bindings.Get(id); b != nil {
		return res.Name(b.Name)
	}
	return ""
}

// ScopeOf returns the scope opened by node (functions map to their
// parameter/body scope).
func (res *Result) ScopeOf(node ast.NodeID) (ScopeID, bool) {
	id, ok := res.scopeOf[node]
	return id, ok
}

// RefAt returns the reference recorded for an identifier node.
func (res *Result) RefAt(ident ast.NodeID) (*Reference, bool) {
	id, ok := res.refOf[ident]
	if !ok {
		return nil, false
	}
	return res.Refs.Get(id), true
}

// DeclaredAt returns the binding declared by an identifier node.
func (res *Result) DeclaredAt(ident ast.NodeID) (BindingID, bool) {
	id, ok := res.bindingOf[ident]
	return id, ok
}

// Lookup resolves name starting at scope and walking outwards.
func (res *Result) Lookup(scope ScopeID, name string) (BindingID, bool) {
	nameID, ok := res.Strings.Find(name)
	if !ok {
		return NoBindingID, false
	}
	for s := res.Scopes.Get(scope); s != nil; s = res.Scopes.Get(s.Parent) {
		if b, found := s.Lookup(nameID); found {
			return b, true
		}
	}
	return NoBindingID, false
}

// VarScopeOf returns the function/module/global scope that owns scope.
func (res *Result) VarScopeOf(scope ScopeID) ScopeID {
	if s := res.Scopes.Get(scope); s != nil {
		return s.VarScope
	}
	return NoScopeID
}

// Dump renders the scope tree for debugging, one scope per line.
func (res *Result) Dump() string {
	var out []byte
	var walk func(id ScopeID, depth int)
	walk = func(id ScopeID, depth int) {
		s := res.Scopes.Get(id)
		if s == nil {
			return
		}
		for range depth {
			out = append(out, "  "...)
		}
		out = fmt.Appendf(out, "%s", s.Kind)
		for _, bid := range s.Bindings {
			b := res.Bindings.Get(bid)
			out = fmt.Appendf(out, " %s:%s/%d", res.Name(b.Name), b.Kind, len(b.Refs))
		}
		out = append(out, '\n')
		for _, child := range s.Children {
			walk(child, depth+1)
		}
	}
	walk(res.Global, 0)
	return string(out)
}
