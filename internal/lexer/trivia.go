package lexer

import (
	"unicode"

	"lintel/internal/diag"
	"lintel/internal/token"
)

// skipWhitespace пропускает пробелы и переводы строк, запоминая факт перевода
// строки для ASI. Комментарии здесь не трогаем: это отдельные токены.
func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\v', '\f':
			lx.cursor.Bump()
			continue
		}
		if n := lx.cursor.LineTerminator(); n > 0 {
			lx.cursor.Off += n
			lx.newline = true
			continue
		}
		if lx.cursor.Peek() >= utf8RuneSelf {
			r, _ := lx.peekRune()
			if r == 0xA0 || r == 0xFEFF || unicode.Is(unicode.Zs, r) {
				lx.bumpRune()
				continue
			}
		}
		return
	}
}

func (lx *Lexer) atCommentStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

// //... , /*...*/
func (lx *Lexer) scanComment() token.Token {
	if _, b1, _ := lx.cursor.Peek2(); b1 == '/' {
		return lx.scanLineComment()
	}

	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	var flags token.Flags
	for {
		if lx.cursor.EOF() {
			return lx.recoverLine(start, 2, diag.LexUnterminatedBlockComment, "Unterminated comment")
		}
		if lx.try2('*', '/') {
			break
		}
		if n := lx.cursor.LineTerminator(); n > 0 {
			// многострочный комментарий работает как перевод строки для ASI
			lx.newline = true
			flags |= token.FlagMultiline
			lx.cursor.Off += n
			continue
		}
		lx.bumpRune()
	}
	tok := lx.emit(token.BlockComment, start)
	tok.Flags |= flags
	return tok
}

func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.LineTerminator() == 0 {
		lx.bumpRune()
	}
	return lx.emit(token.LineComment, start)
}
