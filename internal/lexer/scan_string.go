package lexer

import (
	"strings"

	"lintel/internal/diag"
	"lintel/internal/token"
)

// scanString сканирует '...' или "...". Перевод строки до закрывающей кавычки
// означает незавершённую строку: ошибка на открывающей кавычке, остаток строки
// уходит в Invalid токен. Value хранит декодированное значение в NFC.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var b strings.Builder
	var flags token.Flags
	for {
		if lx.cursor.EOF() {
			return lx.recoverLine(start, 1, diag.LexUnterminatedString, "Unterminated string constant")
		}
		c := lx.cursor.Peek()
		if c == quote {
			lx.cursor.Bump()
			break
		}
		if c == '\n' || c == '\r' {
			return lx.recoverLine(start, 1, diag.LexUnterminatedString, "Unterminated string constant")
		}
		if c == '\\' {
			if lx.scanEscape(&b, false) {
				flags |= token.FlagMultiline
			}
			continue
		}
		r, _ := lx.peekRune()
		b.WriteRune(r)
		lx.bumpRune()
	}
	tok := lx.emit(token.String, start)
	tok.Value = b.String()
	tok.Flags |= flags
	return tok
}

// scanEscape декодирует escape-последовательность под курсором в b.
// Возвращает true для продолжения строки (backslash + перевод строки).
func (lx *Lexer) scanEscape(b *strings.Builder, inTemplate bool) (continuation bool) {
	escStart := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return false
	}
	if n := lx.cursor.LineTerminator(); n > 0 {
		lx.cursor.Off += n
		return true
	}

	c := lx.cursor.Peek()
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case 'x':
		lx.cursor.Bump()
		h0, h1, ok := lx.cursor.Peek2()
		if !ok || !isHex(h0) || !isHex(h1) {
			lx.badEscape(escStart, inTemplate, "Bad character escape sequence")
			return false
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
		b.WriteRune(hexVal(h0)*16 + hexVal(h1))
		return false
	case 'u':
		lx.cursor.Bump()
		r, ok := lx.scanUnicodeEscapeBody()
		if !ok {
			lx.badEscape(escStart, inTemplate, "Bad character escape sequence")
			return false
		}
		b.WriteRune(r)
		return false
	case '0', '1', '2', '3', '4', '5', '6', '7':
		if c == '0' && !isDec(lx.peekByteAt(1)) {
			b.WriteByte(0)
			break
		}
		var v rune
		for i := 0; i < 3 && lx.cursor.Peek() >= '0' && lx.cursor.Peek() <= '7'; i++ {
			v = v*8 + rune(lx.cursor.Bump()-'0')
		}
		switch {
		case inTemplate:
			lx.badEscape(escStart, inTemplate, "Octal literal in template string")
		case lx.opts.Strict:
			lx.badEscape(escStart, inTemplate, "Octal literal in strict mode")
		}
		b.WriteRune(v)
		return false
	default:
		r, _ := lx.peekRune()
		b.WriteRune(r)
		lx.bumpRune()
		return false
	}
	lx.cursor.Bump()
	return false
}

// badEscape репортит ошибку в escape. В шаблонах молчим: тегированный шаблон
// может законно содержать любой escape, а тег лексеру не виден.
func (lx *Lexer) badEscape(start Mark, inTemplate bool, msg string) {
	if inTemplate {
		return
	}
	lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(start), msg)
}
