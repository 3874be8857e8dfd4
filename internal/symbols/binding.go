package symbols

import (
	"lintel/internal/ast"
	"lintel/internal/source"
)

// BindingKind classifies how a name was declared.
type BindingKind uint8

const (
	BindingInvalid BindingKind = iota
	BindingVar
	BindingLet
	BindingConst
	BindingFunction
	BindingClass
	BindingParam
	BindingCatchParam
	BindingImport
)

func (k BindingKind) String() string {
	switch k {
	case BindingVar:
		return "var"
	case BindingLet:
		return "let"
	case BindingConst:
		return "const"
	case BindingFunction:
		return "function"
	case BindingClass:
		return "class"
	case BindingParam:
		return "param"
	case BindingCatchParam:
		return "catch"
	case BindingImport:
		return "import"
	default:
		return "invalid"
	}
}

// IsLexical reports whether the kind obeys block scoping and may not be
// redeclared.
func (k BindingKind) IsLexical() bool {
	return k == BindingLet || k == BindingConst || k == BindingClass || k == BindingImport
}

// BindingFlags encode misc attributes for quick checks.
type BindingFlags uint8

const (
	// BindingExported: declared by `export <decl>` or `export default <decl>`.
	BindingExported BindingFlags = 1 << iota
	// BindingSelfName: the inner name of a named function or class expression.
	BindingSelfName
)

// Strings returns a slice of textual flag labels.
func (f BindingFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&BindingExported != 0 {
		labels = append(labels, "exported")
	}
	if f&BindingSelfName != 0 {
		labels = append(labels, "self-name")
	}
	return labels
}

// Binding is one declared name.
type Binding struct {
	Name  source.StringID
	Kind  BindingKind
	Flags BindingFlags
	Scope ScopeID
	// Ident is the first declaring identifier.
	Ident ast.NodeID
	// Decl is the declaring construct: Declarator, FuncDecl, ClassDecl, the
	// function owning a parameter, CatchClause or an import specifier.
	Decl ast.NodeID
	// Refs lists resolved references in source order.
	Refs []RefID
}

func (b *Binding) Has(f BindingFlags) bool { return b.Flags&f != 0 }

// RefFlags describe how a reference uses its name.
type RefFlags uint8

const (
	RefRead RefFlags = 1 << iota
	RefWrite
	// RefInit: write performed by a declaration initializer.
	RefInit
	// RefTypeof: operand of typeof.
	RefTypeof
	// RefSelfUpdate: a read whose only purpose is to update the same name
	// (`x++;`, `x += 1;`, `x = x + 1;`).
	RefSelfUpdate
)

// Reference is one identifier occurrence in expression position.
type Reference struct {
	Name  source.StringID
	Ident ast.NodeID
	Span  source.Span
	// Scope is the innermost scope containing the occurrence.
	Scope   ScopeID
	Binding BindingID
	Flags   RefFlags
	// Implicit: resolved to an environment global or to `arguments`.
	Implicit bool

	// read inside `x = <rhs>;`, holds only if x lives in the same function
	rhsSelf bool
}

func (r *Reference) Has(f RefFlags) bool { return r.Flags&f != 0 }
func (r *Reference) IsRead() bool        { return r.Has(RefRead) }
func (r *Reference) IsWrite() bool       { return r.Has(RefWrite) }

// Resolved reports whether the reference found a declaration in the file.
func (r *Reference) Resolved() bool { return r.Binding.IsValid() }
