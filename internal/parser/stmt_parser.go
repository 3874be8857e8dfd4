package parser

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/token"
)

// parseStatement разбирает один оператор или объявление. ok=false, если
// внутри была синтаксическая ошибка и нужна ресинхронизация.
func (p *Parser) parseStatement(allowDecl bool) (ast.NodeID, bool) {
	p.depth++
	defer func() { p.depth-- }()
	tok := p.peek()
	var id ast.NodeID
	switch tok.Kind {
	case token.LBrace:
		id = p.parseBlock()
	case token.Semicolon:
		p.advance()
		id = p.b.Nodes.NewLeaf(ast.KindEmpty, tok.Span)
	case token.KwVar:
		id = p.parseVarStatement(ast.VarVar)
	case token.KwConst:
		id = p.parseVarStatement(ast.VarConst)
	case token.KwFunction:
		id = p.parseFunction(tok.Span.Start, false, ast.KindFuncDecl, true)
	case token.KwClass:
		id = p.parseClass(ast.KindClassDecl, true)
	case token.KwIf:
		id = p.parseIf()
	case token.KwFor:
		id = p.parseFor()
	case token.KwWhile:
		id = p.parseWhile()
	case token.KwDo:
		id = p.parseDoWhile()
	case token.KwReturn:
		id = p.parseReturn()
	case token.KwBreak, token.KwContinue:
		id = p.parseJump()
	case token.KwThrow:
		id = p.parseThrow()
	case token.KwTry:
		id = p.parseTry()
	case token.KwSwitch:
		id = p.parseSwitch()
	case token.KwDebugger:
		p.advance()
		id = p.b.Nodes.NewLeaf(ast.KindDebugger, tok.Span)
		p.consumeSemicolon(id, tok.Span.Start)
	case token.KwWith:
		id = p.parseWith()
	case token.KwImport:
		if next := p.peekN(1).Kind; next == token.LParen || next == token.Dot {
			id = p.parseExpressionStatement()
			break
		}
		id = p.parseImport()
	case token.KwExport:
		id = p.parseExport()
	case token.Ident:
		switch {
		case p.isLetDeclaration():
			id = p.parseVarStatement(ast.VarLet)
		case tok.IsContextual("async") && p.peekN(1).Kind == token.KwFunction && !p.peekN(1).NewlineBefore:
			p.advance()
			id = p.parseFunction(tok.Span.Start, true, ast.KindFuncDecl, true)
		case p.peekN(1).Kind == token.Colon:
			id = p.parseLabeled()
		default:
			id = p.parseExpressionStatement()
		}
	default:
		id = p.parseExpressionStatement()
	}
	if !allowDecl {
		p.checkSingleStatement(id)
	}
	return id, !p.panicking
}

// isLetDeclaration: `let` начинает объявление, если за ним идёт имя или паттерн.
func (p *Parser) isLetDeclaration() bool {
	if !p.atContextual("let") {
		return false
	}
	next := p.peekN(1)
	switch next.Kind {
	case token.LBracket, token.LBrace:
		return true
	case token.Ident:
		return !next.NewlineBefore || p.strict
	}
	return false
}

// checkSingleStatement rejects lexical declarations in positions that allow a
// single statement only (if/loop bodies, labels).
func (p *Parser) checkSingleStatement(id ast.NodeID) {
	n := p.b.Nodes.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindClassDecl:
		p.errorAt(diag.SynUnexpectedToken, n.Span.AtStart(), "Unexpected token class")
	case ast.KindVarDecl:
		if d, _ := p.b.Nodes.VarDecl(id); d.Kind != ast.VarVar {
			p.errorAt(diag.SynUnexpectedToken, n.Span.AtStart(), "Lexical declaration cannot appear in a single-statement context")
		}
	}
}

func (p *Parser) parseBlock() ast.NodeID {
	start := p.peek().Span.Start
	if _, ok := p.expect(token.LBrace); !ok {
		return p.invalid(p.peek().Span.AtStart())
	}
	items := p.parseStatementList(false, func() bool { return p.at(token.RBrace) })
	p.expect(token.RBrace)
	return p.b.Nodes.NewList(ast.KindBlock, p.spanFrom(start), items)
}

func (p *Parser) parseExpressionStatement() ast.NodeID {
	start := p.peek().Span.Start
	expr := p.parseExpression()
	id := p.b.Nodes.NewWrap(ast.KindExprStmt, p.spanFrom(start), expr)
	p.consumeSemicolon(id, start)
	return id
}

func (p *Parser) parseVarStatement(kind ast.VarKind) ast.NodeID {
	start := p.peek().Span.Start
	id := p.parseVarDecl(kind, false)
	p.consumeSemicolon(id, start)
	return id
}

// parseVarDecl разбирает `var|let|const` со списком деклараторов (без ';').
// inFor: заголовок for, где инициализатор может отсутствовать (for-in/of).
func (p *Parser) parseVarDecl(kind ast.VarKind, inFor bool) ast.NodeID {
	start := p.advance().Span.Start // var / let / const
	var decls []ast.NodeID
	for {
		dstart := p.peek().Span.Start
		target := p.parseBindingTarget()
		init := ast.NoNodeID
		if p.eat(token.Assign) {
			init = p.parseAssign()
		}
		decl := p.b.Nodes.NewDeclarator(p.spanFrom(dstart), target, init)
		decls = append(decls, decl)
		if !inFor {
			p.checkDeclaratorInit(kind, decl)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.b.Nodes.NewVarDecl(p.spanFrom(start), kind, decls)
}

func (p *Parser) checkDeclaratorInit(kind ast.VarKind, decl ast.NodeID) {
	d, ok := p.b.Nodes.Declarator(decl)
	if !ok || d.Init.IsValid() {
		return
	}
	sp := p.span(decl).AtEnd()
	switch {
	case kind == ast.VarConst:
		p.errorAt(diag.SynMissingInitializer, sp, "Missing initializer in const declaration")
	case p.b.Nodes.Kind(d.Target) != ast.KindIdent && p.b.Nodes.Kind(d.Target) != ast.KindInvalid:
		p.errorAt(diag.SynMissingInitializer, sp, "Complex binding patterns require an initialization value")
	}
}

func (p *Parser) parseLabeled() ast.NodeID {
	tok := p.advance()
	start := tok.Span.Start
	lbl := p.newIdent(tok)
	name := identName(tok)
	p.advance() // ':'
	for _, l := range p.fn.labels {
		if l.name == name {
			p.errorAt(diag.SynRedeclared, tok.Span, "Label '"+name+"' is already declared")
		}
	}
	isLoop := p.atOr(token.KwFor, token.KwWhile, token.KwDo)
	p.fn.labels = append(p.fn.labels, label{name: name, isLoop: isLoop})
	body, _ := p.parseStatement(false)
	p.fn.labels = p.fn.labels[:len(p.fn.labels)-1]
	return p.b.Nodes.NewLabeled(p.spanFrom(start), lbl, body)
}
