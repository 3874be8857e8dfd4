package parser

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

// parseBindingTarget разбирает имя или деструктурирующий паттерн объявления.
func (p *Parser) parseBindingTarget() ast.NodeID {
	switch p.peek().Kind {
	case token.LBracket:
		return p.parseArrayPattern()
	case token.LBrace:
		return p.parseObjectPattern()
	default:
		return p.parseBindingIdent()
	}
}

func (p *Parser) parseBindingIdent() ast.NodeID {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.unexpected()
		return p.invalid(tok.Span.AtStart())
	}
	p.advance()
	if tok.Has(token.FlagEscaped) {
		if _, kw := token.LookupKeyword(identName(tok)); kw {
			p.errorAt(diag.SynReservedWord, tok.Span, "Keyword must not contain escaped characters")
		}
	}
	p.checkBindingName(identName(tok), tok.Span)
	return p.newIdent(tok)
}

func (p *Parser) checkBindingName(name string, sp source.Span) {
	switch {
	case p.strict && token.IsStrictReserved(name):
		p.errorAt(diag.SynReservedWord, sp, "The keyword '"+name+"' is reserved")
	case p.strict && (name == "eval" || name == "arguments"):
		p.errorAt(diag.SynReservedWord, sp, "Binding "+name+" in strict mode")
	case name == "await" && (p.fn.async || p.opts.SourceType == SourceModule):
		p.errorAt(diag.SynReservedWord, sp, "Cannot use keyword 'await' outside an async function")
	case name == "yield" && p.fn.generator:
		p.errorAt(diag.SynReservedWord, sp, "Cannot use 'yield' as identifier inside a generator")
	}
}

// reservedReference reports a strict-mode reserved word used as an
// identifier reference.
func (p *Parser) reservedReference(tok token.Token) bool {
	name := identName(tok)
	if !p.strict || !token.IsStrictReserved(name) {
		return false
	}
	p.errorAt(diag.SynReservedWord, tok.Span, "The keyword '"+name+"' is reserved")
	return true
}

// parseBindingElement: паттерн с необязательным значением по умолчанию.
func (p *Parser) parseBindingElement() ast.NodeID {
	start := p.peek().Span.Start
	target := p.parseBindingTarget()
	if !p.at(token.Assign) {
		return target
	}
	p.advance()
	def := p.parseAssign()
	return p.b.Nodes.NewBinary(ast.KindAssignPattern, p.spanFrom(start), token.Assign, target, def)
}

func (p *Parser) parseRestElement() ast.NodeID {
	start := p.advance().Span.Start // ...
	target := p.parseBindingTarget()
	return p.b.Nodes.NewUnary(ast.KindRest, p.spanFrom(start), token.DotDotDot, target, true)
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	start := p.advance().Span.Start // [
	var items []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) && !p.panicking {
		if p.eat(token.Comma) {
			items = append(items, ast.NoNodeID)
			continue
		}
		if p.at(token.DotDotDot) {
			items = append(items, p.parseRestElement())
			if p.at(token.Comma) {
				p.fail(diag.SynUnexpectedToken, p.peek().Span, "Comma is not permitted after the rest element")
			}
			break
		}
		items = append(items, p.parseBindingElement())
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBracket)
	return p.b.Nodes.NewList(ast.KindArrayPattern, p.spanFrom(start), items)
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	start := p.advance().Span.Start // {
	var items []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.panicking {
		pstart := p.peek().Span.Start
		if p.at(token.DotDotDot) {
			items = append(items, p.parseRestElement())
			break
		}
		keyTok := p.peek()
		key, computed := p.parsePropertyName()
		var value ast.NodeID
		shorthand := false
		switch {
		case p.eat(token.Colon):
			value = p.parseBindingElement()
		case keyTok.Kind == token.Ident && !computed:
			shorthand = true
			p.checkBindingName(identName(keyTok), keyTok.Span)
			value = key
			if p.eat(token.Assign) {
				left := p.newIdent(keyTok)
				def := p.parseAssign()
				value = p.b.Nodes.NewBinary(ast.KindAssignPattern, p.spanFrom(pstart), token.Assign, left, def)
			}
		default:
			p.unexpected()
			value = p.invalid(p.peek().Span.AtStart())
		}
		prop := p.b.Nodes.NewProperty(ast.KindProperty, p.spanFrom(pstart), ast.PropertyData{
			Key: key, Value: value, Kind: ast.PropInit, Shorthand: shorthand,
		})
		if computed {
			p.b.Nodes.SetFlag(prop, ast.FlagComputed)
		}
		items = append(items, prop)
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return p.b.Nodes.NewList(ast.KindObjectPattern, p.spanFrom(start), items)
}

// toAssignTarget checks the left side of `=` (and for-in/of heads), turning
// object/array literals into patterns.
func (p *Parser) toAssignTarget(id ast.NodeID) {
	nodes := p.b.Nodes
	n := nodes.Get(id)
	if n == nil {
		return
	}
	paren := n.Has(ast.FlagParenthesized)
	switch n.Kind {
	case ast.KindInvalid, ast.KindObjectPattern, ast.KindArrayPattern, ast.KindAssignPattern, ast.KindRest:
		return
	case ast.KindIdent:
		if name := p.b.Name(id); p.strict && (name == "eval" || name == "arguments") {
			p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Assigning to "+name+" in strict mode")
		}
	case ast.KindMember:
		if n.Has(ast.FlagOptional) {
			p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Optional chaining cannot appear in left-hand side")
		}
	case ast.KindObject:
		if paren {
			p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Parenthesized pattern")
			return
		}
		nodes.SetKind(id, ast.KindObjectPattern)
		list, _ := nodes.List(id)
		for i, item := range list.Items {
			p.toPatternProperty(item, i == len(list.Items)-1)
		}
	case ast.KindArray:
		if paren {
			p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Parenthesized pattern")
			return
		}
		nodes.SetKind(id, ast.KindArrayPattern)
		list, _ := nodes.List(id)
		for i, item := range list.Items {
			if nodes.Kind(item) == ast.KindSpread {
				p.toRest(item, i == len(list.Items)-1)
				continue
			}
			p.toAssignTarget(item)
		}
	case ast.KindAssign:
		bin, _ := nodes.Binary(id)
		if bin.Op != token.Assign || paren {
			p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Assigning to rvalue")
			return
		}
		nodes.SetKind(id, ast.KindAssignPattern)
		p.toAssignTarget(bin.Left)
	default:
		p.errorAt(diag.SynInvalidAssignTarget, n.Span, "Assigning to rvalue")
	}
}

func (p *Parser) toPatternProperty(item ast.NodeID, last bool) {
	nodes := p.b.Nodes
	switch nodes.Kind(item) {
	case ast.KindSpread:
		p.toRest(item, last)
	case ast.KindProperty:
		prop, _ := nodes.Property(item)
		if prop.Kind != ast.PropInit {
			p.errorAt(diag.SynInvalidAssignTarget, p.span(item), "Object pattern can't contain getter or setter")
			return
		}
		delete(p.coverInits, prop.Value)
		p.toAssignTarget(prop.Value)
	}
}

func (p *Parser) toRest(id ast.NodeID, last bool) {
	nodes := p.b.Nodes
	nodes.SetKind(id, ast.KindRest)
	if !last {
		p.errorAt(diag.SynInvalidAssignTarget, p.span(id), "Rest element must be last element")
	}
	un, _ := nodes.Unary(id)
	p.toAssignTarget(un.Operand)
}

// isSimpleTarget: цель составного присваивания и ++/--.
func (p *Parser) isSimpleTarget(id ast.NodeID) bool {
	switch p.b.Nodes.Kind(id) {
	case ast.KindIdent, ast.KindInvalid:
		return true
	case ast.KindMember:
		return !p.b.Nodes.Get(id).Has(ast.FlagOptional)
	}
	return false
}
