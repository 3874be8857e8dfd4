package symbols

import (
	"lintel/internal/ast"
	"lintel/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // корень: окружение + script-level объявления
	ScopeModule             // top level when sourceType is module
	ScopeFunction           // параметры и тело функции
	// ScopeFunctionName holds the name of a named function expression.
	ScopeFunctionName
	ScopeBlock
	ScopeFor    // let/const in a for head
	ScopeSwitch // all cases share one block
	ScopeCatch  // catch parameter and the catch body
	ScopeClass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeFunctionName:
		return "function-expression-name"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	case ScopeSwitch:
		return "switch"
	case ScopeCatch:
		return "catch"
	case ScopeClass:
		return "class"
	default:
		return "invalid"
	}
}

// IsVarScope reports whether var declarations stop at this scope.
func (k ScopeKind) IsVarScope() bool {
	return k == ScopeGlobal || k == ScopeModule || k == ScopeFunction
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	// VarScope is the nearest enclosing function, module or global scope
	// (the scope itself for those kinds).
	VarScope ScopeID
	// Node is the AST node that opened the scope (Program for the root).
	Node      ast.NodeID
	Span      source.Span
	NameIndex map[source.StringID]BindingID
	Bindings  []BindingID
	Children  []ScopeID
	// Arguments: a non-arrow function scope with an implicit `arguments`.
	Arguments bool

	// mark* биты по имени: какие объявления уже заняли имя в этом scope
	marks map[source.StringID]uint8
}

// Lookup returns the binding declared for name directly in this scope.
func (s *Scope) Lookup(name source.StringID) (BindingID, bool) {
	id, ok := s.NameIndex[name]
	return id, ok
}
