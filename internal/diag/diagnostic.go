package diag

import (
	"lintel/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// RuleID is empty for lexer and parser diagnostics.
	RuleID  string
	Message string
	Primary source.Span
	Notes   []Note
}

// IsSyntax reports whether the diagnostic came from the lexer or the parser.
func (d Diagnostic) IsSyntax() bool {
	return d.RuleID == "" && d.Code.IsSyntax()
}
