package token_test

import (
	"testing"

	"lintel/internal/source"
	"lintel/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.Number, token.BigInt, token.String, token.Template,
		token.TemplateHead, token.Regexp, token.KwTrue, token.KwNull,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LParen, token.TemplateTail}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestClass(t *testing.T) {
	cases := map[token.Kind]token.Class{
		token.EOF:          token.ClassEOF,
		token.LineComment:  token.ClassComment,
		token.BlockComment: token.ClassComment,
		token.Ident:        token.ClassIdentifier,
		token.Number:       token.ClassNumber,
		token.String:       token.ClassString,
		token.TemplateTail: token.ClassTemplate,
		token.Regexp:       token.ClassRegExp,
		token.KwBreak:      token.ClassKeyword,
		token.KwWith:       token.ClassKeyword,
		token.LBrace:       token.ClassPunctuator,
		token.QQAssign:     token.ClassPunctuator,
		token.Invalid:      token.ClassInvalid,
	}
	for k, want := range cases {
		if got := k.Class(); got != want {
			t.Errorf("%v.Class() = %v, want %v", k, got, want)
		}
	}
}

func TestAssignKinds(t *testing.T) {
	for _, k := range []token.Kind{token.Assign, token.UShrAssign, token.QQAssign, token.StarStarAssign} {
		if !k.IsAssign() {
			t.Fatalf("%v should be assignment", k)
		}
	}
	if token.EqEq.IsAssign() || token.FatArrow.IsAssign() {
		t.Fatal("comparison and arrow are not assignments")
	}
	if !token.OrOrAssign.IsLogicalAssign() || token.PipeAssign.IsLogicalAssign() {
		t.Fatal("logical assignment classification is wrong")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EqEqEq:     "===",
		token.KwFunction: "function",
		token.Ident:      "Ident",
		token.UShrAssign: ">>>=",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestContextual(t *testing.T) {
	let := token.Token{Kind: token.Ident, Text: "let"}
	if !let.IsContextual("let") {
		t.Fatal("plain let should be contextual")
	}
	let.Flags |= token.FlagEscaped
	if let.IsContextual("let") {
		t.Fatal("escaped let must not be contextual")
	}
}
