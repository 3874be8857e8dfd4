package parser

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/token"
)

// checkModuleItem: import/export допустимы только на верхнем уровне модуля.
func (p *Parser) checkModuleItem(tok token.Token) {
	switch {
	case p.opts.SourceType != SourceModule:
		p.errorAt(diag.SynUnexpectedToken, tok.Span, "'import' and 'export' may appear only with 'sourceType: module'")
	case p.depth > 1:
		p.errorAt(diag.SynUnexpectedToken, tok.Span, "'import' and 'export' may only appear at the top level")
	}
}

func (p *Parser) parseImport() ast.NodeID {
	tok := p.advance()
	p.checkModuleItem(tok)
	start := tok.Span.Start
	nodes := p.b.Nodes
	var specs []ast.NodeID

	if !p.at(token.String) {
		named := true
		if p.at(token.Ident) {
			local := p.parseBindingIdent()
			specs = append(specs, nodes.NewSpec(ast.KindImportDefault, p.span(local), local, ast.NoNodeID))
			named = p.eat(token.Comma)
		}
		if named {
			switch {
			case p.at(token.Star):
				sstart := p.advance().Span.Start
				p.expectContextual("as")
				local := p.parseBindingIdent()
				specs = append(specs, nodes.NewSpec(ast.KindImportNamespace, p.spanFrom(sstart), local, ast.NoNodeID))
			case p.at(token.LBrace):
				specs = append(specs, p.parseImportSpecifiers()...)
			default:
				p.unexpected()
			}
		}
		p.expectContextual("from")
	}

	src := ast.NoNodeID
	if p.at(token.String) {
		src = p.newLiteral(p.advance())
	} else {
		p.unexpected()
	}
	id := nodes.NewImport(p.spanFrom(start), specs, src)
	p.consumeSemicolon(id, start)
	return id
}

func (p *Parser) parseImportSpecifiers() []ast.NodeID {
	p.advance() // {
	var specs []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.panicking {
		start := p.peek().Span.Start
		remoteTok := p.peek()
		var local, remote ast.NodeID
		if p.atContextualAfter(1, "as") {
			remote = p.parseModuleExportName()
			p.advance() // as
			local = p.parseBindingIdent()
		} else {
			if remoteTok.Kind != token.Ident {
				p.unexpected()
				break
			}
			local = p.parseBindingIdent()
		}
		specs = append(specs, p.b.Nodes.NewSpec(ast.KindImportSpec, p.spanFrom(start), local, remote))
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return specs
}

// parseModuleExportName: имя по ту сторону модуля, слово или строка.
func (p *Parser) parseModuleExportName() ast.NodeID {
	tok := p.peek()
	switch {
	case tok.Kind == token.String:
		p.advance()
		return p.newLiteral(tok)
	case tok.Kind == token.Ident || tok.IsKeyword():
		p.advance()
		return p.b.Nodes.NewIdent(tok.Span, p.b.Intern(identName(tok)))
	}
	p.unexpected()
	return p.invalid(tok.Span.AtStart())
}

func (p *Parser) atContextualAfter(n int, word string) bool {
	return p.peekN(n).IsContextual(word)
}

func (p *Parser) expectContextual(word string) bool {
	if p.atContextual(word) {
		p.advance()
		return true
	}
	p.unexpected()
	return false
}

func (p *Parser) parseExport() ast.NodeID {
	tok := p.advance()
	p.checkModuleItem(tok)
	start := tok.Span.Start
	nodes := p.b.Nodes

	switch {
	case p.at(token.KwDefault):
		p.advance()
		data := ast.ExportData{}
		needsSemi := false
		switch next := p.peek(); {
		case next.Kind == token.KwFunction:
			data.Decl = p.parseFunction(next.Span.Start, false, ast.KindFuncDecl, false)
		case next.IsContextual("async") && p.peekN(1).Kind == token.KwFunction && !p.peekN(1).NewlineBefore:
			p.advance()
			data.Decl = p.parseFunction(next.Span.Start, true, ast.KindFuncDecl, false)
		case next.Kind == token.KwClass:
			data.Decl = p.parseClass(ast.KindClassDecl, false)
		default:
			data.Decl = p.parseAssign()
			needsSemi = true
		}
		nodes.SetFlag(data.Decl, ast.FlagExported)
		id := nodes.NewExport(ast.KindExportDefault, p.spanFrom(start), data)
		if needsSemi {
			p.consumeSemicolon(id, start)
		}
		return id

	case p.at(token.Star):
		p.advance()
		data := ast.ExportData{}
		if p.atContextual("as") {
			p.advance()
			data.Exported = p.parseModuleExportName()
		}
		p.expectContextual("from")
		if p.at(token.String) {
			data.Source = p.newLiteral(p.advance())
		} else {
			p.unexpected()
		}
		id := nodes.NewExport(ast.KindExportAll, p.spanFrom(start), data)
		p.consumeSemicolon(id, start)
		return id

	case p.at(token.LBrace):
		data := ast.ExportData{Specs: p.parseExportSpecifiers()}
		if p.atContextual("from") {
			p.advance()
			if p.at(token.String) {
				data.Source = p.newLiteral(p.advance())
			} else {
				p.unexpected()
			}
		} else {
			for _, spec := range data.Specs {
				if s, _ := nodes.Spec(spec); s != nil && nodes.Kind(s.Local) != ast.KindIdent {
					p.errorAt(diag.SynUnexpectedToken, p.span(s.Local), "A string literal cannot be used as an exported binding without `from`.")
				}
			}
		}
		id := nodes.NewExport(ast.KindExportNamed, p.spanFrom(start), data)
		p.consumeSemicolon(id, start)
		return id
	}

	// export <declaration>
	decl := ast.NoNodeID
	next := p.peek()
	switch {
	case next.Kind == token.KwVar:
		decl = p.parseVarStatement(ast.VarVar)
	case next.Kind == token.KwConst:
		decl = p.parseVarStatement(ast.VarConst)
	case p.isLetDeclaration():
		decl = p.parseVarStatement(ast.VarLet)
	case next.Kind == token.KwFunction:
		decl = p.parseFunction(next.Span.Start, false, ast.KindFuncDecl, true)
	case next.IsContextual("async") && p.peekN(1).Kind == token.KwFunction:
		p.advance()
		decl = p.parseFunction(next.Span.Start, true, ast.KindFuncDecl, true)
	case next.Kind == token.KwClass:
		decl = p.parseClass(ast.KindClassDecl, true)
	default:
		p.unexpected()
		return p.invalid(p.spanFrom(start))
	}
	nodes.SetFlag(decl, ast.FlagExported)
	return nodes.NewExport(ast.KindExportNamed, p.spanFrom(start), ast.ExportData{Decl: decl})
}

func (p *Parser) parseExportSpecifiers() []ast.NodeID {
	p.advance() // {
	var specs []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.panicking {
		start := p.peek().Span.Start
		local := p.parseModuleExportName()
		remote := ast.NoNodeID
		if p.atContextual("as") {
			p.advance()
			remote = p.parseModuleExportName()
		}
		specs = append(specs, p.b.Nodes.NewSpec(ast.KindExportSpec, p.spanFrom(start), local, remote))
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return specs
}
