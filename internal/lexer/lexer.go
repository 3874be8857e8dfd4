package lexer

import (
	"unicode/utf8"

	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена

	prev    token.Kind // последний значимый токен, нужен для regexp-эвристики
	newline bool       // был перевод строки после prev
	braces  int        // глубина '{' для шаблонных подстановок
	// templates хранит значение braces на момент каждого открытого "${".
	templates []int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file. Comments are included; the last token is EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next возвращает следующий токен, включая комментарии.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()
	newline := lx.newline

	if lx.cursor.EOF() {
		return token.Token{
			Kind:          token.EOF,
			Span:          lx.emptySpan(),
			NewlineBefore: newline,
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '/' && lx.atCommentStart():
		tok = lx.scanComment()

	case ch == '#' && lx.cursor.Off == 0 && lx.peekByteAt(1) == '!':
		// #! в первой строке: hashbang, считаем строчным комментарием
		tok = lx.scanLineComment()

	case ch == '#':
		tok = lx.scanPrivateName()

	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8.RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString()

	case ch == '`':
		tok = lx.scanTemplate(true)

	case ch == '}' && lx.inTemplateSubst():
		tok = lx.scanTemplate(false)

	case ch == '/' && lx.regexpAllowed():
		tok = lx.scanRegexp()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.NewlineBefore = newline
	if !tok.IsComment() {
		lx.prev = tok.Kind
		lx.newline = false
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// regexpAllowed решает, начинает ли '/' регулярное выражение, по предыдущему
// значимому токену: после значения (идентификатор, литерал, ')' ']' '}') это деление.
func (lx *Lexer) regexpAllowed() bool {
	switch lx.prev {
	case token.Ident, token.PrivateName, token.Number, token.BigInt, token.String,
		token.Template, token.TemplateTail, token.Regexp,
		token.RParen, token.RBracket, token.RBrace, token.PlusPlus, token.MinusMinus,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse:
		return false
	default:
		return true
	}
}

func (lx *Lexer) inTemplateSubst() bool {
	n := len(lx.templates)
	return n > 0 && lx.templates[n-1] == lx.braces
}

// recoverLine reports an unterminated construct at its opening delimiter and
// returns an Invalid token running from the opener to the end of its line.
// Lexing resumes at the next line boundary.
func (lx *Lexer) recoverLine(start Mark, openerLen uint32, code diag.Code, msg string) token.Token {
	opener := source.Span{File: lx.file.ID, Start: uint32(start), End: uint32(start) + openerLen}
	lx.report(code, opener, msg)

	lx.cursor.Reset(start)
	for !lx.cursor.EOF() && lx.cursor.LineTerminator() == 0 {
		lx.bumpRune()
	}
	tok := lx.emit(token.Invalid, start)
	tok.Flags |= token.FlagUnterminated
	return tok
}
