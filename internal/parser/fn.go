package parser

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/token"
	"aether/internal/types"
)

// parseFn recognizes (fn name ((param type) ...) result stmt*).
// The open paren and the fn keyword position have been established by
// the caller; the keyword itself is still in the stream.
func (p *Parser) parseFn() (ast.ItemID, bool) {
	kw := p.advance() // fn
	startSpan := kw.Span

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a function name")
	if !ok {
		return ast.NoItemID, false
	}

	params, ok := p.parseParams()
	if !ok {
		return ast.NoItemID, false
	}

	result, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}

	var body []ast.StmtID
	bodyStart := p.lx.Peek().Span
	for !p.at(token.RParen) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncForm()
			return ast.NoItemID, false
		}
		body = append(body, stmt)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed fn form"); !ok {
		return ast.NoItemID, false
	}

	span := startSpan.Cover(p.lastSpan)
	block := p.arenas.Stmts.NewBlock(bodyStart.Cover(p.lastSpan), body)
	return p.arenas.Items.NewFn(span, p.arenas.Intern(name.Text), params, result, block), true
}

// parseParams recognizes ((name type) ...).
func (p *Parser) parseParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynBadParamList, "expected a parameter list"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedParen, p.diagSpan(), "unclosed parameter list")
			return nil, false
		}
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	p.advance() // closing paren
	return params, true
}

func (p *Parser) parseParam() (ast.FnParam, bool) {
	open, ok := p.expect(token.LParen, diag.SynBadParamList, "expected (name type)")
	if !ok {
		return ast.FnParam{}, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a parameter name")
	if !ok {
		return ast.FnParam{}, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, false
	}
	if typ == types.NoTypeID {
		return ast.FnParam{}, false
	}
	if _, ok := p.expect(token.RParen, diag.SynBadParamList, "unclosed parameter"); !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{
		Name: p.arenas.Intern(name.Text),
		Type: typ,
		Span: open.Span.Cover(p.lastSpan),
	}, true
}
