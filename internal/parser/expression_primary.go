package parser

import (
	"lintel/internal/ast"
	"lintel/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.peek()
	nodes := p.b.Nodes
	switch tok.Kind {
	case token.Ident:
		if tok.IsContextual("async") && p.peekN(1).Kind == token.KwFunction && !p.peekN(1).NewlineBefore {
			p.advance()
			return p.parseFunction(tok.Span.Start, true, ast.KindFuncExpr, false)
		}
		p.advance()
		if p.reservedReference(tok) {
			return p.invalid(tok.Span)
		}
		return p.newIdent(tok)
	case token.Number, token.BigInt, token.String, token.Regexp, token.KwTrue, token.KwFalse, token.KwNull:
		p.advance()
		return p.newLiteral(tok)
	case token.Template, token.TemplateHead:
		return p.parseTemplate(ast.NoNodeID, tok.Span.Start)
	case token.LParen:
		return p.parseParenthesized()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(tok.Span.Start, false, ast.KindFuncExpr, false)
	case token.KwClass:
		return p.parseClass(ast.KindClassExpr, false)
	case token.KwThis:
		p.advance()
		return nodes.NewLeaf(ast.KindThis, tok.Span)
	case token.PrivateName:
		if p.peekN(1).Kind == token.KwIn {
			p.advance()
			return nodes.NewIdent(tok.Span, p.b.Intern(tok.Text))
		}
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		p.panicking = true
		return p.invalid(tok.Span)
	}
	p.unexpected()
	return p.invalid(tok.Span.AtStart())
}

func (p *Parser) newLiteral(tok token.Token) ast.NodeID {
	data := ast.LiteralData{Raw: tok.Text}
	switch tok.Kind {
	case token.Number:
		data.Kind = ast.LitNumber
	case token.BigInt:
		data.Kind = ast.LitBigInt
	case token.String:
		data.Kind = ast.LitString
		data.Value = tok.Value
		data.Quote = tok.Text[0]
	case token.Regexp:
		data.Kind = ast.LitRegexp
	case token.KwTrue, token.KwFalse:
		data.Kind = ast.LitBool
	case token.KwNull:
		data.Kind = ast.LitNull
	}
	return p.b.Nodes.NewLiteral(tok.Span, data)
}

// parseTemplate разбирает шаблон; tag != NoNodeID: тегированный шаблон.
func (p *Parser) parseTemplate(tag ast.NodeID, start uint32) ast.NodeID {
	tok := p.advance()
	quasis := []ast.TemplateQuasi{{Span: tok.Span, Cooked: tok.Value}}
	multiline := tok.Has(token.FlagMultiline)
	var exprs []ast.NodeID
	if tok.Kind == token.TemplateHead {
		outer := p.noIn
		p.noIn = false
		for !p.panicking {
			exprs = append(exprs, p.parseExpression())
			part := p.peek()
			if part.Kind != token.TemplateMiddle && part.Kind != token.TemplateTail {
				p.unexpected()
				break
			}
			p.advance()
			quasis = append(quasis, ast.TemplateQuasi{Span: part.Span, Cooked: part.Value})
			multiline = multiline || part.Has(token.FlagMultiline)
			if part.Kind == token.TemplateTail {
				break
			}
		}
		p.noIn = outer
	}
	return p.b.Nodes.NewTemplate(p.spanFrom(start), tag, quasis, exprs, multiline)
}

func (p *Parser) parseParenthesized() ast.NodeID {
	p.advance() // (
	outer := p.noIn
	p.noIn = false
	expr := p.parseExpression()
	p.noIn = outer
	p.expect(token.RParen)
	p.b.Nodes.SetFlag(expr, ast.FlagParenthesized)
	return expr
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.advance().Span.Start // [
	outer := p.noIn
	p.noIn = false
	var items []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) && !p.panicking {
		if p.eat(token.Comma) {
			items = append(items, ast.NoNodeID)
			continue
		}
		if p.at(token.DotDotDot) {
			items = append(items, p.parseSpread())
		} else {
			items = append(items, p.parseAssign())
		}
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.noIn = outer
	p.expect(token.RBracket)
	return p.b.Nodes.NewList(ast.KindArray, p.spanFrom(start), items)
}

func (p *Parser) parseObjectLiteral() ast.NodeID {
	start := p.advance().Span.Start // {
	outer := p.noIn
	p.noIn = false
	var items []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.panicking {
		if p.at(token.DotDotDot) {
			items = append(items, p.parseSpread())
		} else {
			items = append(items, p.parseObjectMember())
		}
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.noIn = outer
	p.expect(token.RBrace)
	return p.b.Nodes.NewList(ast.KindObject, p.spanFrom(start), items)
}

// methodPrefix reads the get/set/async/* modifiers in front of a method name.
type methodPrefix struct {
	kind      ast.PropKind
	async     bool
	generator bool
}

// parseMethodPrefix: слова get/set/async являются модификаторами, только если
// за ними следует имя свойства.
func (p *Parser) parseMethodPrefix() methodPrefix {
	var mp methodPrefix
	tok := p.peek()
	if tok.Kind == token.Ident && p.startsPropertyName(p.peekN(1)) {
		switch {
		case tok.IsContextual("get"):
			p.advance()
			mp.kind = ast.PropGet
			return mp
		case tok.IsContextual("set"):
			p.advance()
			mp.kind = ast.PropSet
			return mp
		case tok.IsContextual("async") && !p.peekN(1).NewlineBefore:
			p.advance()
			mp.async = true
			mp.kind = ast.PropMethod
		}
	}
	if p.eat(token.Star) {
		mp.generator = true
		mp.kind = ast.PropMethod
	}
	return mp
}

func (p *Parser) startsPropertyName(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.String, token.Number, token.BigInt, token.LBracket, token.PrivateName, token.Star:
		return true
	}
	return tok.IsKeyword()
}

func (p *Parser) parseObjectMember() ast.NodeID {
	start := p.peek().Span.Start
	mp := p.parseMethodPrefix()
	keyTok := p.peek()
	key, computed := p.parsePropertyName()
	nodes := p.b.Nodes
	data := ast.PropertyData{Key: key, Kind: mp.kind}

	switch {
	case p.at(token.LParen):
		if data.Kind == ast.PropInit {
			data.Kind = ast.PropMethod
		}
		data.Value = p.parseMethodFunction(p.peek().Span.Start, mp.async, mp.generator)
	case mp.kind != ast.PropInit:
		p.unexpected()
		data.Value = p.invalid(p.peek().Span.AtStart())
	case p.eat(token.Colon):
		data.Value = p.parseAssign()
	case keyTok.Kind == token.Ident && !computed:
		data.Shorthand = true
		data.Value = key
		if p.reservedReference(keyTok) {
			data.Value = p.invalid(keyTok.Span)
		}
		if p.at(token.Assign) {
			p.advance()
			left := p.newIdent(keyTok)
			def := p.parseAssign()
			data.Value = nodes.NewBinary(ast.KindAssign, p.spanFrom(start), token.Assign, left, def)
			p.coverInits[data.Value] = p.span(data.Value)
		}
	default:
		p.unexpected()
		data.Value = p.invalid(p.peek().Span.AtStart())
	}
	id := nodes.NewProperty(ast.KindProperty, p.spanFrom(start), data)
	if computed {
		nodes.SetFlag(id, ast.FlagComputed)
	}
	return id
}

// parsePropertyName: идентификатор или ключевое слово, строка, число,
// [вычисляемый ключ] или #private.
func (p *Parser) parsePropertyName() (ast.NodeID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBracket:
		p.advance()
		outer := p.noIn
		p.noIn = false
		key := p.parseAssign()
		p.noIn = outer
		p.expect(token.RBracket)
		return key, true
	case tok.Kind == token.Ident || tok.Kind == token.PrivateName || tok.IsKeyword():
		p.advance()
		return p.b.Nodes.NewIdent(tok.Span, p.b.Intern(identName(tok))), false
	case tok.Kind == token.String || tok.Kind == token.Number || tok.Kind == token.BigInt:
		p.advance()
		return p.newLiteral(tok), false
	}
	p.unexpected()
	return p.invalid(tok.Span.AtStart()), false
}

// arrowAhead проверяет, начинается ли здесь стрелочная функция:
// `x =>`, `async x =>`, `(...) =>`, `async (...) =>`.
func (p *Parser) arrowAhead() (arrow, async bool) {
	i := 0
	tok := p.peekN(0)
	if tok.IsContextual("async") && !p.peekN(1).NewlineBefore {
		switch next := p.peekN(1); {
		case next.Kind == token.Ident && p.peekN(2).Kind == token.FatArrow:
			return !p.peekN(2).NewlineBefore, true
		case next.Kind == token.LParen:
			i, async = 1, true
		}
	}
	switch p.peekN(i).Kind {
	case token.Ident:
		next := p.peekN(i + 1)
		return next.Kind == token.FatArrow && !next.NewlineBefore, false
	case token.LParen:
		j, ok := p.matchParen(i)
		if !ok {
			return false, false
		}
		next := p.peekN(j + 1)
		return next.Kind == token.FatArrow && !next.NewlineBefore, async
	}
	return false, false
}

// matchParen находит индекс ')' парной к '(' на смещении i.
func (p *Parser) matchParen(i int) (int, bool) {
	depth := 0
	for j := i; p.pos+j < len(p.toks); j++ {
		switch p.peekN(j).Kind {
		case token.LParen, token.LBracket, token.LBrace, token.TemplateHead:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.TemplateTail:
			depth--
			if depth == 0 {
				return j, p.peekN(j).Kind == token.RParen
			}
		case token.EOF:
			return 0, false
		}
	}
	return 0, false
}
