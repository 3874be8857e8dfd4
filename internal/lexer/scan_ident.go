package lexer

import (
	"strings"

	"lintel/internal/diag"
	"lintel/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Поддерживает \uXXXX и \u{...} escape; такой идентификатор никогда не становится
// ключевым словом, а его декодированное имя лежит в Token.Value.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r != '\\' && !isIdentStartRune(r) {
		return lx.scanUnknown()
	}

	var (
		cooked  strings.Builder
		escaped bool
		first   = true
	)
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			escStart := lx.cursor.Mark()
			er, ok := lx.scanIdentEscape()
			if !ok || (first && !isIdentStartRune(er)) || (!first && !isIdentContinueRune(er)) {
				lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "Invalid Unicode escape")
			}
			escaped = true
			cooked.WriteRune(er)
			first = false
			continue
		}
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || (first && !isIdentStartByte(b)) {
				break
			}
			cooked.WriteByte(b)
			lx.cursor.Bump()
			first = false
			continue
		}
		r2, _ := lx.peekRune()
		if first && !isIdentStartRune(r2) || !first && !isIdentContinueRune(r2) {
			break
		}
		cooked.WriteRune(r2)
		lx.bumpRune()
		first = false
	}

	tok := lx.emit(token.Ident, start)
	if escaped {
		tok.Flags |= token.FlagEscaped
		tok.Value = cooked.String()
		return tok
	}

	// Проверка на ключевое слово (регистрозависимо)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanIdentEscape читает \uXXXX или \u{X...} и возвращает руну.
func (lx *Lexer) scanIdentEscape() (rune, bool) {
	lx.cursor.Bump() // '\'
	if !lx.cursor.Eat('u') {
		return 0, false
	}
	return lx.scanUnicodeEscapeBody()
}

// scanUnicodeEscapeBody читает часть escape после "\u".
func (lx *Lexer) scanUnicodeEscapeBody() (rune, bool) {
	if lx.cursor.Eat('{') {
		var v rune
		digits := 0
		for isHex(lx.cursor.Peek()) {
			v = v*16 + hexVal(lx.cursor.Bump())
			digits++
			if v > 0x10FFFF {
				return 0, false
			}
		}
		if digits == 0 || !lx.cursor.Eat('}') {
			return 0, false
		}
		return v, true
	}
	var v rune
	for i := 0; i < 4; i++ {
		if !isHex(lx.cursor.Peek()) {
			return 0, false
		}
		v = v*16 + hexVal(lx.cursor.Bump())
	}
	return v, true
}

func hexVal(b byte) rune {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0')
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10
	default:
		return rune(b-'A') + 10
	}
}

// scanPrivateName сканирует #name (член класса).
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "Unexpected character '#'")
		return lx.emit(token.Invalid, start)
	}
	for {
		r, sz = lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.PrivateName, start)
}

// scanUnknown превращает неизвестный символ в Invalid токен с диагностикой.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, "Unexpected character '"+string(r)+"'")
	return lx.emit(token.Invalid, start)
}
