package lexer

import (
	"strings"

	"lintel/internal/diag"
	"lintel/internal/token"
)

// validRegexpFlags: флаги ES2021.
const validRegexpFlags = "gimsuy"

// scanRegexp сканирует /body/flags. Тело не валидируем, только классы [..]
// и escape, чтобы правильно найти закрывающий '/'.
func (lx *Lexer) scanRegexp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
body:
	for {
		if lx.cursor.EOF() || lx.cursor.LineTerminator() > 0 {
			return lx.recoverLine(start, 1, diag.LexUnterminatedRegexp, "Unterminated regular expression")
		}
		c := lx.cursor.Peek()
		switch {
		case c == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() && lx.cursor.LineTerminator() == 0 {
				lx.bumpRune()
			}
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			lx.cursor.Bump()
			break body
		}
		lx.bumpRune()
	}

	flagsStart := lx.cursor.Off
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	tok := lx.emit(token.Regexp, start)
	if f := string(lx.file.Content[flagsStart:lx.cursor.Off]); !regexpFlagsValid(f) {
		lx.report(diag.LexBadRegexpFlags, tok.Span, "Invalid regular expression flags")
	}
	return tok
}

func regexpFlagsValid(flags string) bool {
	seen := 0
	for _, r := range flags {
		i := strings.IndexRune(validRegexpFlags, r)
		if i < 0 || seen&(1<<i) != 0 {
			return false
		}
		seen |= 1 << i
	}
	return true
}
