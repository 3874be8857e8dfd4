package symbols

// ScopeID identifies a scope in the resolver arena.
type ScopeID uint32

// BindingID identifies a declared name.
type BindingID uint32

// RefID identifies one identifier occurrence that reads or writes a name.
type RefID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID   ScopeID   = 0
	NoBindingID BindingID = 0
	NoRefID     RefID     = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

func (id BindingID) IsValid() bool { return id != NoBindingID }

func (id RefID) IsValid() bool { return id != NoRefID }
