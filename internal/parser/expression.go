package parser

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/token"
)

// parseExpression - главная точка входа для парсинга выражений: Expression
// с запятыми (SequenceExpression).
func (p *Parser) parseExpression() ast.NodeID {
	start := p.peek().Span.Start
	first := p.parseAssign()
	if !p.at(token.Comma) {
		return first
	}
	items := []ast.NodeID{first}
	for p.eat(token.Comma) {
		items = append(items, p.parseAssign())
	}
	return p.b.Nodes.NewList(ast.KindSequence, p.spanFrom(start), items)
}

// parseAssign разбирает AssignmentExpression: стрелки, yield, условное
// выражение и присваивания (правоассоциативно).
func (p *Parser) parseAssign() ast.NodeID {
	if p.fn.generator && p.atContextual("yield") {
		return p.parseYield()
	}
	if ok, async := p.arrowAhead(); ok {
		return p.parseArrow(async)
	}
	start := p.peek().Span.Start
	left := p.parseConditional()
	tok := p.peek()
	if !tok.Kind.IsAssign() {
		return left
	}
	if tok.Kind == token.Assign {
		p.toAssignTarget(left)
	} else if !p.isSimpleTarget(left) {
		p.errorAt(diag.SynInvalidAssignTarget, p.span(left), "Assigning to rvalue")
	}
	p.advance()
	right := p.parseAssign()
	return p.b.Nodes.NewBinary(ast.KindAssign, p.spanFrom(start), tok.Kind, left, right)
}

func (p *Parser) parseYield() ast.NodeID {
	tok := p.advance()
	delegate := false
	arg := ast.NoNodeID
	if !p.peek().NewlineBefore {
		if p.eat(token.Star) {
			delegate = true
			arg = p.parseAssign()
		} else if !p.atOr(token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon, token.Colon, token.EOF) {
			arg = p.parseAssign()
		}
	}
	id := p.b.Nodes.NewUnary(ast.KindYield, p.spanFrom(tok.Span.Start), token.Ident, arg, true)
	if un, ok := p.b.Nodes.Unary(id); ok {
		un.Delegate = delegate
	}
	return id
}

func (p *Parser) parseConditional() ast.NodeID {
	start := p.peek().Span.Start
	test := p.parseBinary(0)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	outer := p.noIn
	p.noIn = false
	cons := p.parseAssign()
	p.noIn = outer
	p.expect(token.Colon)
	alt := p.parseAssign()
	return p.b.Nodes.NewCond(ast.KindConditional, p.spanFrom(start), test, cons, alt)
}

// parseBinary реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	start := p.peek().Span.Start
	left := p.parseUnary()

	for {
		tok := p.peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec || (tok.Kind == token.KwIn && p.noIn) {
			break
		}
		if tok.Kind == token.StarStar && p.isBareUnary(left) {
			p.errorAt(diag.SynUnexpectedToken, tok.Span, "Unary operator used immediately before exponentiation expression. Parenthesis must be used to disambiguate operator precedence")
		}
		p.advance()

		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right := p.parseBinary(next)
		p.checkCoalesceMix(tok, left, right)
		left = p.b.Nodes.NewBinary(binaryKind(tok.Kind), p.spanFrom(start), tok.Kind, left, right)
	}
	return left
}

func (p *Parser) isBareUnary(id ast.NodeID) bool {
	n := p.b.Nodes.Get(id)
	if n == nil || n.Has(ast.FlagParenthesized) {
		return false
	}
	return n.Kind == ast.KindUnary || n.Kind == ast.KindAwait
}

// checkCoalesceMix: `a ?? b || c` без скобок запрещено.
func (p *Parser) checkCoalesceMix(op token.Token, left, right ast.NodeID) {
	if binaryKind(op.Kind) != ast.KindLogical {
		return
	}
	coalesce := op.Kind == token.QuestionQuestion
	for _, side := range [...]ast.NodeID{left, right} {
		n := p.b.Nodes.Get(side)
		if n == nil || n.Kind != ast.KindLogical || n.Has(ast.FlagParenthesized) {
			continue
		}
		bin, _ := p.b.Nodes.Binary(side)
		if (bin.Op == token.QuestionQuestion) != coalesce {
			p.errorAt(diag.SynUnexpectedToken, op.Span, "Logical expressions and coalesce expressions cannot be mixed. Wrap either by parentheses")
			return
		}
	}
}

// parseUnary обрабатывает унарные операторы (префиксы), await и ++/--.
func (p *Parser) parseUnary() ast.NodeID {
	tok := p.peek()
	nodes := p.b.Nodes
	switch {
	case isUnaryOperator(tok.Kind):
		p.advance()
		arg := p.parseUnary()
		if tok.Kind == token.KwDelete && p.strict && nodes.Kind(arg) == ast.KindIdent {
			p.errorAt(diag.SynUnexpectedToken, p.span(arg), "Deleting local variable in strict mode")
		}
		return nodes.NewUnary(ast.KindUnary, p.spanFrom(tok.Span.Start), tok.Kind, arg, true)
	case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
		p.advance()
		arg := p.parseUnary()
		if !p.isSimpleTarget(arg) {
			p.errorAt(diag.SynInvalidAssignTarget, p.span(arg), "Assigning to rvalue")
		}
		return nodes.NewUnary(ast.KindUpdate, p.spanFrom(tok.Span.Start), tok.Kind, arg, true)
	case tok.IsContextual("await") && p.fn.async:
		p.advance()
		arg := p.parseUnary()
		return nodes.NewUnary(ast.KindAwait, p.spanFrom(tok.Span.Start), token.Ident, arg, true)
	}

	start := tok.Span.Start
	expr := p.parseLeftHandSide()
	if next := p.peek(); (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore {
		if !p.isSimpleTarget(expr) {
			p.errorAt(diag.SynInvalidAssignTarget, p.span(expr), "Assigning to rvalue")
		}
		p.advance()
		return nodes.NewUnary(ast.KindUpdate, p.spanFrom(start), next.Kind, expr, false)
	}
	return expr
}

// parseLeftHandSide: new/super/import и цепочка вызовов и обращений к членам.
func (p *Parser) parseLeftHandSide() ast.NodeID {
	tok := p.peek()
	start := tok.Span.Start
	var expr ast.NodeID
	switch tok.Kind {
	case token.KwNew:
		expr = p.parseNew()
	case token.KwSuper:
		p.advance()
		expr = p.b.Nodes.NewLeaf(ast.KindSuper, tok.Span)
		if !p.atOr(token.LParen, token.Dot, token.LBracket) {
			p.unexpected()
		}
	case token.KwImport:
		expr = p.parseImportMeta()
	default:
		expr = p.parsePrimary()
	}
	return p.parseSubscripts(expr, start, false)
}

// parseImportMeta: import(x) или import.meta.
func (p *Parser) parseImportMeta() ast.NodeID {
	tok := p.advance()
	if p.eat(token.Dot) {
		prop := p.peek()
		if !prop.IsContextual("meta") {
			p.unexpected()
			return p.invalid(p.spanFrom(tok.Span.Start))
		}
		p.advance()
		if p.opts.SourceType != SourceModule {
			p.errorAt(diag.SynUnexpectedToken, p.spanFrom(tok.Span.Start), "Cannot use 'import.meta' outside a module")
		}
		return p.b.Nodes.NewMetaProperty(p.spanFrom(tok.Span.Start), p.b.Intern("import.meta"))
	}
	if _, ok := p.expect(token.LParen); !ok {
		return p.invalid(tok.Span)
	}
	arg := p.parseAssign()
	p.eat(token.Comma)
	p.expect(token.RParen)
	return p.b.Nodes.NewUnary(ast.KindImportCall, p.spanFrom(tok.Span.Start), token.KwImport, arg, true)
}

func (p *Parser) parseNew() ast.NodeID {
	tok := p.advance()
	start := tok.Span.Start
	if p.eat(token.Dot) {
		if !p.atContextual("target") {
			p.unexpected()
			return p.invalid(p.spanFrom(start))
		}
		p.advance()
		return p.b.Nodes.NewMetaProperty(p.spanFrom(start), p.b.Intern("new.target"))
	}
	cstart := p.peek().Span.Start
	var callee ast.NodeID
	switch p.peek().Kind {
	case token.KwNew:
		callee = p.parseNew()
	case token.KwImport:
		p.unexpected()
		callee = p.invalid(p.peek().Span.AtStart())
	default:
		callee = p.parsePrimary()
	}
	callee = p.parseSubscripts(callee, cstart, true)
	var args []ast.NodeID
	if p.at(token.LParen) {
		args = p.parseArguments()
	}
	return p.b.Nodes.NewCall(ast.KindNew, p.spanFrom(start), callee, args)
}

// parseSubscripts разбирает .x ?.x [x] (args) и тегированные шаблоны.
// noCalls: callee выражения new, вызовы не поглощаются.
func (p *Parser) parseSubscripts(expr ast.NodeID, start uint32, noCalls bool) ast.NodeID {
	nodes := p.b.Nodes
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			prop := p.parseMemberName()
			expr = nodes.NewMember(p.spanFrom(start), expr, prop)
		case token.QuestionDot:
			if noCalls {
				p.fail(diag.SynUnexpectedToken, tok.Span, "Invalid optional chain from new expression")
				return expr
			}
			p.advance()
			switch p.peek().Kind {
			case token.LParen:
				args := p.parseArguments()
				expr = nodes.NewCall(ast.KindCall, p.spanFrom(start), expr, args)
			case token.LBracket:
				expr = p.parseComputedMember(expr, start)
			default:
				prop := p.parseMemberName()
				expr = nodes.NewMember(p.spanFrom(start), expr, prop)
			}
			nodes.SetFlag(expr, ast.FlagOptional)
		case token.LBracket:
			expr = p.parseComputedMember(expr, start)
		case token.LParen:
			if noCalls {
				return expr
			}
			args := p.parseArguments()
			expr = nodes.NewCall(ast.KindCall, p.spanFrom(start), expr, args)
		case token.Template, token.TemplateHead:
			expr = p.parseTemplate(expr, start)
		default:
			return expr
		}
		if p.panicking {
			return expr
		}
	}
}

func (p *Parser) parseComputedMember(object ast.NodeID, start uint32) ast.NodeID {
	p.advance() // [
	outer := p.noIn
	p.noIn = false
	prop := p.parseExpression()
	p.noIn = outer
	p.expect(token.RBracket)
	id := p.b.Nodes.NewMember(p.spanFrom(start), object, prop)
	p.b.Nodes.SetFlag(id, ast.FlagComputed)
	return id
}

// parseMemberName: после точки допустимо любое слово, включая ключевые, и #private.
func (p *Parser) parseMemberName() ast.NodeID {
	tok := p.peek()
	if tok.Kind == token.Ident || tok.Kind == token.PrivateName || tok.IsKeyword() {
		p.advance()
		return p.b.Nodes.NewIdent(tok.Span, p.b.Intern(identName(tok)))
	}
	p.unexpected()
	return p.invalid(tok.Span.AtStart())
}

func (p *Parser) parseArguments() []ast.NodeID {
	p.advance() // (
	outer := p.noIn
	p.noIn = false
	defer func() { p.noIn = outer }()
	var args []ast.NodeID
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.panicking {
		if p.at(token.DotDotDot) {
			args = append(args, p.parseSpread())
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parseSpread() ast.NodeID {
	start := p.advance().Span.Start // ...
	arg := p.parseAssign()
	return p.b.Nodes.NewUnary(ast.KindSpread, p.spanFrom(start), token.DotDotDot, arg, true)
}
