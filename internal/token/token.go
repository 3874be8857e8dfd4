package token

import (
	"lintel/internal/source"
)

// Flags carries lexer facts the parser and token rules need.
type Flags uint8

const (
	// FlagUnterminated marks a string, template, regexp or comment that hit EOL/EOF.
	FlagUnterminated Flags = 1 << iota
	// FlagEscaped marks an identifier spelled with \u escapes.
	FlagEscaped
	// FlagMultiline marks a string or template whose raw text spans several lines.
	FlagMultiline
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value is the cooked value of string and template tokens (escapes decoded,
	// NFC-normalized); empty for other kinds.
	Value string
	// NewlineBefore reports a line terminator between the previous token and this one.
	NewlineBefore bool
	Flags         Flags
}

// Has reports whether f is set on the token.
func (t Token) Has(f Flags) bool { return t.Flags&f != 0 }

// IsLiteral reports whether the token is a number, string, template, regexp,
// boolean or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, BigInt, String, Template, TemplateHead, Regexp, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.Class() == ClassPunctuator }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.Class() == ClassKeyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsContextual reports whether the token is the identifier spelled word.
// Escaped identifiers never act as contextual keywords.
func (t Token) IsContextual(word string) bool {
	return t.Kind == Ident && t.Text == word && t.Flags&FlagEscaped == 0
}

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == LineComment || t.Kind == BlockComment }
