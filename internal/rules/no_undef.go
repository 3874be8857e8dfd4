package rules

import (
	"fmt"

	"lintel/internal/diag"
	"lintel/internal/symbols"
)

// NoUndef flags references that resolve neither to a declaration nor to a
// global of the configured environments. typeof operands are allowed.
var NoUndef = &Rule{
	ID:              "no-undef",
	DefaultSeverity: diag.SevError,
	Doc:             "Disallow the use of undeclared variables",
	Run:             runNoUndef,
}

func runNoUndef(p *Pass) {
	res := p.Unit.Scopes
	for _, id := range res.Unresolved {
		ref := res.Ref(id)
		if ref == nil || ref.Has(symbols.RefTypeof) {
			continue
		}
		name := res.Name(ref.Name)
		msg := fmt.Sprintf("'%s' is not defined.", name)
		if b, ok := res.LookupNormalized(ref.Scope, name); ok {
			if n := p.Nodes().Get(res.Binding(b).Ident); n != nil {
				p.Report(ref.Span, msg, diag.Note{
					Span: n.Span,
					Msg:  fmt.Sprintf("'%s' is declared here with a different Unicode normalization", res.BindingName(b)),
				})
				continue
			}
		}
		p.Report(ref.Span, msg)
	}
}
