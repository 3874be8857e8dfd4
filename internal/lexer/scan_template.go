package lexer

import (
	"strings"

	"lintel/internal/diag"
	"lintel/internal/token"
)

// scanTemplate сканирует кусок шаблонной строки.
// head=true: курсор на '`' (Template или TemplateHead);
// head=false: курсор на '}' закрывающей подстановку (TemplateMiddle или TemplateTail).
func (lx *Lexer) scanTemplate(head bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`' или '}'
	if !head {
		lx.templates = lx.templates[:len(lx.templates)-1]
	}

	var b strings.Builder
	var flags token.Flags
	kind := token.TemplateTail
	if head {
		kind = token.Template
	}
	for {
		if lx.cursor.EOF() {
			return lx.recoverLine(start, 1, diag.LexUnterminatedTemplate, "Unterminated template")
		}
		c := lx.cursor.Peek()
		if c == '`' {
			lx.cursor.Bump()
			break
		}
		if c == '$' && lx.peekByteAt(1) == '{' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if head {
				kind = token.TemplateHead
			} else {
				kind = token.TemplateMiddle
			}
			lx.templates = append(lx.templates, lx.braces)
			break
		}
		if c == '\\' {
			lx.scanEscape(&b, true)
			continue
		}
		if n := lx.cursor.LineTerminator(); n > 0 {
			flags |= token.FlagMultiline
			b.WriteByte('\n')
			lx.cursor.Off += n
			continue
		}
		r, _ := lx.peekRune()
		b.WriteRune(r)
		lx.bumpRune()
	}
	tok := lx.emit(kind, start)
	tok.Value = b.String()
	tok.Flags |= flags
	return tok
}
