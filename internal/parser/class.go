package parser

import (
	"lintel/internal/ast"
	"lintel/internal/token"
)

// parseClass разбирает class-объявление или выражение; тело класса всегда strict.
func (p *Parser) parseClass(kind ast.NodeKind, nameRequired bool) ast.NodeID {
	start := p.advance().Span.Start // class
	outerStrict := p.strict
	p.strict = true
	defer func() { p.strict = outerStrict }()

	name := ast.NoNodeID
	switch {
	case p.at(token.Ident):
		name = p.parseBindingIdent()
	case nameRequired:
		p.unexpected()
		return p.invalid(p.spanFrom(start))
	}
	super := ast.NoNodeID
	if p.eat(token.KwExtends) {
		super = p.parseLeftHandSide()
	}
	if _, ok := p.expect(token.LBrace); !ok {
		return p.b.Nodes.NewClass(kind, p.spanFrom(start), name, super, nil)
	}
	var members []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.panicking {
		if p.eat(token.Semicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(token.RBrace)
	return p.b.Nodes.NewClass(kind, p.spanFrom(start), name, super, members)
}

func (p *Parser) parseClassMember() ast.NodeID {
	start := p.peek().Span.Start
	static := false
	if p.atContextual("static") {
		switch p.peekN(1).Kind {
		case token.LParen, token.Assign, token.Semicolon, token.RBrace:
		default:
			p.advance()
			static = true
		}
	}
	mp := p.parseMethodPrefix()
	keyTok := p.peek()
	key, computed := p.parsePropertyName()
	nodes := p.b.Nodes
	data := ast.PropertyData{Key: key, Kind: mp.kind, Static: static}

	if p.at(token.LParen) {
		if data.Kind == ast.PropInit {
			data.Kind = ast.PropMethod
			if !static && !computed && (keyTok.IsContextual("constructor") || keyTok.Kind == token.String && keyTok.Value == "constructor") {
				data.Kind = ast.PropConstructor
			}
		}
		data.Value = p.parseMethodFunction(p.peek().Span.Start, mp.async, mp.generator)
		id := nodes.NewProperty(ast.KindMethod, p.spanFrom(start), data)
		if computed {
			nodes.SetFlag(id, ast.FlagComputed)
		}
		return id
	}
	if mp.kind != ast.PropInit {
		p.unexpected()
		return p.invalid(p.peek().Span.AtStart())
	}

	// поле класса: инициализатор вычисляется как тело метода
	if p.eat(token.Assign) {
		outer := p.fn
		p.fn = fnContext{}
		data.Value = p.parseAssign()
		p.fn = outer
	}
	id := nodes.NewProperty(ast.KindField, p.spanFrom(start), data)
	if computed {
		nodes.SetFlag(id, ast.FlagComputed)
	}
	p.consumeSemicolon(id, start)
	return id
}
