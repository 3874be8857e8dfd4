package parser

import (
	"cmp"
	"slices"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

// SourceType selects the goal symbol of the file.
type SourceType uint8

const (
	// SourceModule: strict code, import/export allowed at top level.
	SourceModule SourceType = iota
	// SourceScript: sloppy code unless a "use strict" directive is present.
	SourceScript
)

func (s SourceType) String() string {
	if s == SourceScript {
		return "script"
	}
	return "module"
}

type Options struct {
	SourceType    SourceType
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

type Result struct {
	Program ast.NodeID
	// Tokens are the significant tokens the parser consumed (comments removed).
	Tokens []token.Token
	// Comments in source order.
	Comments []token.Token
	Errors   uint
}

// fnContext describes the innermost function the parser is in.
type fnContext struct {
	inFunction bool
	async      bool
	generator  bool
	loops      int
	switches   int
	labels     []label
}

type label struct {
	name   string
	isLoop bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks    []token.Token
	pos     int
	b       *ast.Builder
	file    *source.File
	opts    Options
	strict  bool
	prevEnd uint32 // конец последнего съеденного токена
	// panicking: в текущем операторе уже была синтаксическая ошибка,
	// дальнейшие сообщения подавляются до ресинхронизации.
	panicking bool
	fn        fnContext
	// noIn: в заголовке for оператор `in` не бинарный.
	noIn bool
	// depth: вложенность операторов; 1 на верхнем уровне программы.
	depth int
	// coverInits: `{a = 1}` в объектном литерале допустим только как паттерн.
	coverInits map[ast.NodeID]source.Span
}

// ParseFile: входная точка для разбора одного файла. tokens: полный вывод
// лексера (с комментариями, последним идёт EOF).
func ParseFile(file *source.File, tokens []token.Token, b *ast.Builder, opts Options) Result {
	sig := make([]token.Token, 0, len(tokens))
	var comments []token.Token
	for _, tok := range tokens {
		if tok.IsComment() {
			comments = append(comments, tok)
			continue
		}
		sig = append(sig, tok)
	}
	if len(sig) == 0 || sig[len(sig)-1].Kind != token.EOF {
		end := uint32(len(file.Content))
		sig = append(sig, token.Token{Kind: token.EOF, Span: source.Span{File: file.ID, Start: end, End: end}})
	}

	p := Parser{
		toks:       sig,
		b:          b,
		file:       file,
		opts:       opts,
		strict:     opts.SourceType == SourceModule,
		coverInits: make(map[ast.NodeID]source.Span),
	}
	prog := p.parseProgram()
	return Result{
		Program:  prog,
		Tokens:   sig,
		Comments: comments,
		Errors:   p.opts.CurrentErrors,
	}
}

func (p *Parser) parseProgram() ast.NodeID {
	items := p.parseStatementList(true, func() bool { return p.at(token.EOF) })
	sp := source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))}
	return p.b.Nodes.NewList(ast.KindProgram, sp, items)
}

// parseStatementList разбирает операторы до stop(). Директивы ("use strict")
// распознаются только в начале тела функции или программы.
func (p *Parser) parseStatementList(directives bool, stop func() bool) []ast.NodeID {
	var items []ast.NodeID
	prologue := directives
	for !stop() && !p.at(token.EOF) {
		startPos := p.pos
		id, ok := p.parseStatement(true)
		if prologue {
			prologue = p.checkDirective(id)
		}
		if !ok || p.panicking {
			p.b.Nodes.SetFlag(id, ast.FlagHasError)
			p.resync()
		}
		p.flushCoverInits()
		if p.pos == startPos {
			// ни один токен не съеден: пропускаем один, чтобы не зациклиться
			p.advance()
		}
		if id.IsValid() && !p.isEmptyFailure(id) {
			items = append(items, id)
		}
	}
	return items
}

// isEmptyFailure: оператор-выражение, от которого не удалось разобрать ничего.
func (p *Parser) isEmptyFailure(id ast.NodeID) bool {
	nodes := p.b.Nodes
	if nodes.Kind(id) == ast.KindInvalid {
		return true
	}
	if nodes.Kind(id) != ast.KindExprStmt {
		return false
	}
	wrap, _ := nodes.Wrap(id)
	return nodes.Kind(wrap.Expr) == ast.KindInvalid
}

// checkDirective marks a directive statement and reports whether the
// prologue continues after it.
func (p *Parser) checkDirective(id ast.NodeID) bool {
	if p.b.Nodes.Kind(id) != ast.KindExprStmt {
		return false
	}
	wrap, _ := p.b.Nodes.Wrap(id)
	lit, ok := p.b.Nodes.Literal(wrap.Expr)
	if !ok || lit.Kind != ast.LitString || p.b.Nodes.Get(wrap.Expr).Has(ast.FlagParenthesized) {
		return false
	}
	p.b.Nodes.SetFlag(id, ast.FlagDirective)
	if len(lit.Raw) >= 2 && lit.Raw[1:len(lit.Raw)-1] == "use strict" {
		p.strict = true
	}
	return true
}

// resync: восстановление после ошибки, пропускаем токены до ';' (съедаем),
// '}' или EOF, либо до токена на новой строке. Скобочные группы пропускаются
// целиком.
func (p *Parser) resync() {
	defer func() { p.panicking = false }()
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.RBrace:
			return
		case token.Semicolon:
			p.advance()
			return
		}
		if tok.NewlineBefore {
			return
		}
		p.advance()
		if closer, ok := closerOf(tok.Kind); ok {
			p.skipGroup(tok.Kind, closer)
		}
	}
}

func (p *Parser) skipGroup(opener, closer token.Kind) {
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.advance().Kind {
		case opener:
			depth++
		case closer:
			depth--
		}
	}
}

func closerOf(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.LBrace:
		return token.RBrace, true
	case token.LParen:
		return token.RParen, true
	case token.LBracket:
		return token.RBracket, true
	}
	return token.Invalid, false
}

func (p *Parser) flushCoverInits() {
	if len(p.coverInits) == 0 {
		return
	}
	spans := make([]source.Span, 0, len(p.coverInits))
	for _, sp := range p.coverInits {
		spans = append(spans, sp)
	}
	slices.SortFunc(spans, func(a, b source.Span) int { return cmp.Compare(a.Start, b.Start) })
	for _, sp := range spans {
		p.errorAt(diag.SynUnexpectedToken, sp, "Shorthand property assignments are valid only in destructuring patterns")
	}
	clear(p.coverInits)
}
