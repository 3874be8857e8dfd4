package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"function":   KwFunction,
		"var":        KwVar,
		"return":     KwReturn,
		"instanceof": KwInstanceof,
		"typeof":     KwTypeof,
		"null":       KwNull,
		"true":       KwTrue,
		"false":      KwFalse,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// контекстные слова лексер отдаёт как Ident
	notKw := []string{
		"let", "async", "await", "yield", "of", "get", "set", "static",
		"Function", "VAR", // регистр важен
		"undefined", "eval",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = ok, want !ok", s)
		}
	}
}

func TestStrictReserved(t *testing.T) {
	if !IsStrictReserved("yield") || !IsStrictReserved("let") {
		t.Fatal("yield and let are reserved in strict code")
	}
	if IsStrictReserved("async") {
		t.Fatal("async is never reserved")
	}
}
