package ast

import (
	"lintel/internal/source"
)

type Hints struct{ Nodes uint }

// Builder owns everything the parser produces for one file: the node arenas
// and the identifier/string interner shared with later passes.
type Builder struct {
	Nodes   *Nodes
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Nodes:   NewNodes(hints.Nodes),
		Strings: strings,
	}
}

// Name returns the identifier text of an Ident or MetaProperty node, "" otherwise.
func (b *Builder) Name(id NodeID) string {
	data, ok := b.Nodes.Ident(id)
	if !ok || data == nil {
		return ""
	}
	s, _ := b.Strings.Lookup(data.Name)
	return s
}

// Intern is a shortcut for b.Strings.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}
