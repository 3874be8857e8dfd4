package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"lintel/internal/ast"
	"lintel/internal/source"
)

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, node ast.NodeID, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	varScope := id
	if !kind.IsVarScope() {
		if p := s.Get(parent); p != nil {
			varScope = p.VarScope
		}
	}
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		VarScope:  varScope,
		Node:      node,
		Span:      span,
		NameIndex: make(map[source.StringID]BindingID),
	})
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Bindings stores declared names in a compact arena.
type Bindings struct {
	data []Binding
}

func NewBindings(capacity uint32) *Bindings {
	if capacity == 0 {
		capacity = 64
	}
	return &Bindings{data: make([]Binding, 1, capacity+1)}
}

func (b *Bindings) New(binding Binding) BindingID {
	value, err := safecast.Conv[uint32](len(b.data))
	if err != nil {
		panic(fmt.Errorf("bindings arena overflow: %w", err))
	}
	b.data = append(b.data, binding)
	return BindingID(value)
}

// Get returns a binding pointer or nil for invalid ID.
func (b *Bindings) Get(id BindingID) *Binding {
	if !id.IsValid() || int(id) >= len(b.data) {
		return nil
	}
	return &b.data[id]
}

// Len reports number of stored bindings excluding sentinel.
func (b *Bindings) Len() int { return len(b.data) - 1 }

// Refs stores references in creation (source) order.
type Refs struct {
	data []Reference
}

func NewRefs(capacity uint32) *Refs {
	if capacity == 0 {
		capacity = 128
	}
	return &Refs{data: make([]Reference, 1, capacity+1)}
}

func (r *Refs) New(ref Reference) RefID {
	value, err := safecast.Conv[uint32](len(r.data))
	if err != nil {
		panic(fmt.Errorf("refs arena overflow: %w", err))
	}
	r.data = append(r.data, ref)
	return RefID(value)
}

func (r *Refs) Get(id RefID) *Reference {
	if !id.IsValid() || int(id) >= len(r.data) {
		return nil
	}
	return &r.data[id]
}

func (r *Refs) Len() int { return len(r.data) - 1 }
