package parser

import (
	"slices"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд (0: текущий). За концом: EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// advance: съедает следующий токен и обновляет prevEnd
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.prevEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atContextual(word string) bool {
	return p.peek().IsContextual(word)
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен. Если нет: репортим Unexpected token.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected()
	return p.peek(), false
}

// spanFrom покрывает всё от start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.prevEnd
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) span(id ast.NodeID) source.Span {
	if n := p.b.Nodes.Get(id); n != nil {
		return n.Span
	}
	return p.peek().Span.AtStart()
}

// unexpected reports the current token as unexpected and enters panic mode.
// Invalid tokens were already reported by the lexer.
func (p *Parser) unexpected() {
	tok := p.peek()
	switch {
	case tok.Kind == token.Invalid:
		p.panicking = true
	case tok.Kind == token.EOF:
		p.fail(diag.SynUnexpectedToken, tok.Span, "Unexpected token")
	case tok.IsKeyword():
		p.fail(diag.SynUnexpectedToken, tok.Span, "Unexpected keyword '"+tok.Text+"'")
	default:
		p.fail(diag.SynUnexpectedToken, tok.Span, "Unexpected token "+tok.Text)
	}
}

// fail reports a grammar error and enters panic mode: the enclosing statement
// is resynchronized.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.errorAt(code, sp, msg)
	p.panicking = true
}

// errorAt reports an early error that does not disturb parsing.
func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) bool {
	if p.panicking {
		return false
	}
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
		if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, diag.ParsingErrorPrefix+msg).Emit()
	return true
}

// identName returns the identifier's name, decoding \u escapes.
func identName(tok token.Token) string {
	if tok.Has(token.FlagEscaped) && tok.Value != "" {
		return tok.Value
	}
	return tok.Text
}

func (p *Parser) newIdent(tok token.Token) ast.NodeID {
	return p.b.Nodes.NewIdent(tok.Span, p.b.Intern(identName(tok)))
}

func (p *Parser) invalid(sp source.Span) ast.NodeID {
	return p.b.Nodes.NewLeaf(ast.KindInvalid, sp)
}

// consumeSemicolon завершает оператор, требующий ';', по правилам ASI.
func (p *Parser) consumeSemicolon(id ast.NodeID, start uint32) {
	nodes := p.b.Nodes
	nodes.SetFlag(id, ast.FlagNeedsSemicolon)
	switch {
	case p.at(token.Semicolon):
		p.advance()
		nodes.SetFlag(id, ast.FlagHasSemicolon)
	case p.canInsertSemicolon():
	default:
		p.unexpected()
	}
	nodes.SetSpan(id, p.spanFrom(start))
}

// canInsertSemicolon: перед '}', EOF или токеном с новой строки.
func (p *Parser) canInsertSemicolon() bool {
	tok := p.peek()
	return tok.Kind == token.EOF || tok.Kind == token.RBrace || tok.NewlineBefore
}
