package parser

import (
	"lintel/internal/ast"
	"lintel/internal/source"
	"lintel/internal/token"
)

// parseFunction разбирает function-объявление или выражение; курсор на `function`.
// nameRequired=false для выражений и `export default function`.
func (p *Parser) parseFunction(start uint32, async bool, kind ast.NodeKind, nameRequired bool) ast.NodeID {
	p.advance() // function
	generator := p.eat(token.Star)
	name := ast.NoNodeID
	switch {
	case p.at(token.Ident):
		if kind == ast.KindFuncExpr {
			// имя выражения живёт в контексте самой функции
			outer := p.fn
			p.fn = fnContext{inFunction: true, async: async, generator: generator}
			name = p.parseBindingIdent()
			p.fn = outer
		} else {
			name = p.parseBindingIdent()
		}
	case nameRequired:
		p.unexpected()
		return p.invalid(p.spanFrom(start))
	}
	return p.parseFunctionRest(start, kind, name, async, generator)
}

// parseMethodFunction разбирает параметры и тело метода; имя хранит свойство.
func (p *Parser) parseMethodFunction(start uint32, async, generator bool) ast.NodeID {
	return p.parseFunctionRest(start, ast.KindFuncExpr, ast.NoNodeID, async, generator)
}

func (p *Parser) parseFunctionRest(start uint32, kind ast.NodeKind, name ast.NodeID, async, generator bool) ast.NodeID {
	outer, outerStrict, outerNoIn := p.fn, p.strict, p.noIn
	p.fn = fnContext{inFunction: true, async: async, generator: generator}
	p.noIn = false
	params := p.parseFormalParams()
	body := p.parseFunctionBody()
	p.fn, p.strict, p.noIn = outer, outerStrict, outerNoIn

	return p.b.Nodes.NewFunction(kind, p.spanFrom(start), ast.FunctionData{
		Name: name, Params: params, Body: body, Async: async, Generator: generator,
	})
}

func (p *Parser) parseFormalParams() []ast.NodeID {
	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	var params []ast.NodeID
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.panicking {
		if p.at(token.DotDotDot) {
			params = append(params, p.parseRestElement())
			break
		}
		params = append(params, p.parseBindingElement())
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	return params
}

// parseFunctionBody разбирает `{ ... }` тела функции вместе с директивами.
func (p *Parser) parseFunctionBody() ast.NodeID {
	start := p.peek().Span.Start
	if _, ok := p.expect(token.LBrace); !ok {
		return p.invalid(p.peek().Span.AtStart())
	}
	outerCover := p.coverInits
	p.coverInits = make(map[ast.NodeID]source.Span)
	items := p.parseStatementList(true, func() bool { return p.at(token.RBrace) })
	p.coverInits = outerCover
	p.expect(token.RBrace)
	return p.b.Nodes.NewList(ast.KindBlock, p.spanFrom(start), items)
}

// parseArrow разбирает стрелочную функцию, найденную arrowAhead.
func (p *Parser) parseArrow(async bool) ast.NodeID {
	start := p.peek().Span.Start
	if async {
		p.advance()
	}
	outer, outerStrict := p.fn, p.strict
	p.fn = fnContext{inFunction: true, async: async}

	var params []ast.NodeID
	if p.at(token.Ident) {
		params = []ast.NodeID{p.parseBindingIdent()}
	} else {
		params = p.parseFormalParams()
	}
	p.expect(token.FatArrow)

	data := ast.FunctionData{Params: params, Async: async}
	if p.at(token.LBrace) {
		outerNoIn := p.noIn
		p.noIn = false
		data.Body = p.parseFunctionBody()
		p.noIn = outerNoIn
	} else {
		data.Body = p.parseAssign()
		data.ExprBody = true
	}
	p.fn, p.strict = outer, outerStrict
	return p.b.Nodes.NewFunction(ast.KindArrow, p.spanFrom(start), data)
}
