package parser

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/token"
)

// parseParenExpr разбирает `( expr )` заголовка if/while/switch/with.
func (p *Parser) parseParenExpr() ast.NodeID {
	if _, ok := p.expect(token.LParen); !ok {
		return p.invalid(p.peek().Span.AtStart())
	}
	expr := p.parseExpression()
	p.expect(token.RParen)
	return expr
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.advance().Span.Start
	test := p.parseParenExpr()
	cons, _ := p.parseStatement(false)
	alt := ast.NoNodeID
	if p.eat(token.KwElse) {
		alt, _ = p.parseStatement(false)
	}
	return p.b.Nodes.NewCond(ast.KindIf, p.spanFrom(start), test, cons, alt)
}

func (p *Parser) parseLoopBody() ast.NodeID {
	p.fn.loops++
	body, _ := p.parseStatement(false)
	p.fn.loops--
	return body
}

func (p *Parser) parseWhile() ast.NodeID {
	start := p.advance().Span.Start
	test := p.parseParenExpr()
	body := p.parseLoopBody()
	return p.b.Nodes.NewWhile(ast.KindWhile, p.spanFrom(start), test, body)
}

// parseDoWhile: ';' после `while (...)` вставляется всегда, даже без перевода строки.
func (p *Parser) parseDoWhile() ast.NodeID {
	start := p.advance().Span.Start
	body := p.parseLoopBody()
	if _, ok := p.expect(token.KwWhile); !ok {
		return p.b.Nodes.NewWhile(ast.KindDoWhile, p.spanFrom(start), p.invalid(p.peek().Span.AtStart()), body)
	}
	test := p.parseParenExpr()
	id := p.b.Nodes.NewWhile(ast.KindDoWhile, p.spanFrom(start), test, body)
	p.b.Nodes.SetFlag(id, ast.FlagNeedsSemicolon)
	if p.eat(token.Semicolon) {
		p.b.Nodes.SetFlag(id, ast.FlagHasSemicolon)
		p.b.Nodes.SetSpan(id, p.spanFrom(start))
	}
	return id
}

func (p *Parser) parseFor() ast.NodeID {
	start := p.advance().Span.Start
	await := false
	if p.atContextual("await") {
		if !p.fn.async {
			p.errorAt(diag.SynUnexpectedToken, p.peek().Span, "Unexpected token await")
		}
		p.advance()
		await = true
	}
	if _, ok := p.expect(token.LParen); !ok {
		return p.invalid(p.spanFrom(start))
	}

	init := ast.NoNodeID
	if !p.at(token.Semicolon) {
		outer := p.noIn
		p.noIn = true
		switch {
		case p.at(token.KwVar):
			init = p.parseVarDecl(ast.VarVar, true)
		case p.at(token.KwConst):
			init = p.parseVarDecl(ast.VarConst, true)
		case p.isLetDeclaration():
			init = p.parseVarDecl(ast.VarLet, true)
		default:
			init = p.parseExpression()
		}
		p.noIn = outer
	}

	if p.at(token.KwIn) || p.atContextual("of") {
		kind := ast.KindForIn
		if p.at(token.Ident) {
			kind = ast.KindForOf
		}
		p.checkForInLeft(init, kind)
		p.advance()
		var right ast.NodeID
		if kind == ast.KindForOf {
			right = p.parseAssign()
		} else {
			right = p.parseExpression()
		}
		p.expect(token.RParen)
		body := p.parseLoopBody()
		return p.b.Nodes.NewForIn(kind, p.spanFrom(start), ast.ForInData{Left: init, Right: right, Body: body, Await: await})
	}

	if await {
		p.errorAt(diag.SynUnexpectedToken, p.peek().Span, "Unexpected token")
	}
	if vd, ok := p.b.Nodes.VarDecl(init); ok {
		for _, d := range vd.Decls {
			p.checkDeclaratorInit(vd.Kind, d)
		}
	}
	data := ast.ForData{Init: init}
	p.expect(token.Semicolon)
	if !p.at(token.Semicolon) {
		data.Test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.at(token.RParen) {
		data.Update = p.parseExpression()
	}
	p.expect(token.RParen)
	data.Body = p.parseLoopBody()
	return p.b.Nodes.NewFor(p.spanFrom(start), data)
}

// checkForInLeft validates the head of for-in/for-of and turns an expression
// head into an assignment target.
func (p *Parser) checkForInLeft(left ast.NodeID, kind ast.NodeKind) {
	loop := "for-in"
	if kind == ast.KindForOf {
		loop = "for-of"
	}
	if vd, ok := p.b.Nodes.VarDecl(left); ok {
		if len(vd.Decls) != 1 {
			p.errorAt(diag.SynInvalidAssignTarget, p.span(left), "Invalid left-hand side in "+loop+" loop: Must have a single binding.")
			return
		}
		if d, _ := p.b.Nodes.Declarator(vd.Decls[0]); d != nil && d.Init.IsValid() {
			p.errorAt(diag.SynInvalidAssignTarget, p.span(left), loop+" loop variable declaration may not have an initializer.")
		}
		return
	}
	p.toAssignTarget(left)
}

func (p *Parser) parseReturn() ast.NodeID {
	tok := p.advance()
	if !p.fn.inFunction {
		p.errorAt(diag.SynIllegalReturn, tok.Span, "'return' outside of function")
	}
	arg := ast.NoNodeID
	if !p.at(token.Semicolon) && !p.canInsertSemicolon() {
		arg = p.parseExpression()
	}
	id := p.b.Nodes.NewWrap(ast.KindReturn, p.spanFrom(tok.Span.Start), arg)
	p.consumeSemicolon(id, tok.Span.Start)
	return id
}

func (p *Parser) parseThrow() ast.NodeID {
	tok := p.advance()
	if p.peek().NewlineBefore {
		p.fail(diag.SynNewlineAfterThrow, tok.Span.AtEnd(), "Illegal newline after throw")
		return p.b.Nodes.NewWrap(ast.KindThrow, tok.Span, p.invalid(tok.Span.AtEnd()))
	}
	arg := p.parseExpression()
	id := p.b.Nodes.NewWrap(ast.KindThrow, p.spanFrom(tok.Span.Start), arg)
	p.consumeSemicolon(id, tok.Span.Start)
	return id
}

// parseJump: break/continue с необязательной меткой на той же строке.
func (p *Parser) parseJump() ast.NodeID {
	tok := p.advance()
	kind, word, code := ast.KindBreak, "break", diag.SynIllegalBreak
	if tok.Kind == token.KwContinue {
		kind, word, code = ast.KindContinue, "continue", diag.SynIllegalContinue
	}
	lbl := ast.NoNodeID
	if p.at(token.Ident) && !p.peek().NewlineBefore {
		ltok := p.advance()
		lbl = p.newIdent(ltok)
		if !p.hasLabel(identName(ltok), kind == ast.KindContinue) {
			p.errorAt(code, tok.Span, "Unsyntactic "+word)
		}
	} else if p.fn.loops == 0 && (kind == ast.KindContinue || p.fn.switches == 0) {
		p.errorAt(code, tok.Span, "Unsyntactic "+word)
	}
	id := p.b.Nodes.NewJump(kind, p.spanFrom(tok.Span.Start), lbl)
	p.consumeSemicolon(id, tok.Span.Start)
	return id
}

func (p *Parser) hasLabel(name string, loopOnly bool) bool {
	for _, l := range p.fn.labels {
		if l.name == name && (!loopOnly || l.isLoop) {
			return true
		}
	}
	return false
}

func (p *Parser) parseTry() ast.NodeID {
	tok := p.advance()
	block := p.parseBlock()
	handler, finalizer := ast.NoNodeID, ast.NoNodeID
	if p.at(token.KwCatch) {
		cstart := p.advance().Span.Start
		param := ast.NoNodeID
		if p.eat(token.LParen) {
			param = p.parseBindingTarget()
			p.expect(token.RParen)
		}
		body := p.parseBlock()
		handler = p.b.Nodes.NewCatch(p.spanFrom(cstart), param, body)
	}
	if p.eat(token.KwFinally) {
		finalizer = p.parseBlock()
	}
	if !handler.IsValid() && !finalizer.IsValid() {
		p.fail(diag.SynUnexpectedToken, tok.Span, "Missing catch or finally clause")
	}
	return p.b.Nodes.NewTry(p.spanFrom(tok.Span.Start), block, handler, finalizer)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.advance().Span.Start
	disc := p.parseParenExpr()
	var cases []ast.NodeID
	if _, ok := p.expect(token.LBrace); !ok {
		return p.b.Nodes.NewSwitch(p.spanFrom(start), disc, nil)
	}
	p.fn.switches++
	sawDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		ctok := p.peek()
		test := ast.NoNodeID
		switch ctok.Kind {
		case token.KwCase:
			p.advance()
			test = p.parseExpression()
		case token.KwDefault:
			p.advance()
			if sawDefault {
				p.errorAt(diag.SynDuplicateDefault, ctok.Span, "Multiple default clauses")
			}
			sawDefault = true
		default:
			p.unexpected()
		}
		if p.panicking {
			break
		}
		p.expect(token.Colon)
		body := p.parseStatementList(false, func() bool {
			return p.atOr(token.KwCase, token.KwDefault, token.RBrace)
		})
		cases = append(cases, p.b.Nodes.NewCase(p.spanFrom(ctok.Span.Start), test, body))
	}
	p.fn.switches--
	p.expect(token.RBrace)
	return p.b.Nodes.NewSwitch(p.spanFrom(start), disc, cases)
}

func (p *Parser) parseWith() ast.NodeID {
	tok := p.advance()
	if p.strict {
		p.errorAt(diag.SynUnexpectedToken, tok.Span, "'with' in strict mode")
	}
	obj := p.parseParenExpr()
	body, _ := p.parseStatement(false)
	return p.b.Nodes.NewWhile(ast.KindWith, p.spanFrom(tok.Span.Start), obj, body)
}
