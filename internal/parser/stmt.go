package parser

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/token"
)

// parseStmt recognizes one statement. Forms with a statement keyword
// head are control flow and bindings; anything else is an expression
// statement.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.LParen {
		// Bare identifiers and literals are expression statements too.
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr), true
	}

	// Look past the paren to pick a statement parser.
	open := p.advance()
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet(open, false)
	case token.KwLetMut:
		return p.parseLet(open, true)
	case token.KwAssign:
		return p.parseAssign(open)
	case token.KwIf:
		return p.parseIf(open)
	case token.KwWhile:
		return p.parseWhile(open)
	case token.KwReturn:
		return p.parseReturn(open)
	case token.KwBlock:
		return p.parseBlock(open)
	default:
		expr, ok := p.parseFormExpr(open)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr), true
	}
}

// parseLet recognizes (let name type init) and (let-mut name type init).
func (p *Parser) parseLet(open token.Token, mutable bool) (ast.StmtID, bool) {
	p.advance() // let / let-mut
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a binding name")
	if !ok {
		return ast.NoStmtID, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}
	init, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed let form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewLet(span, p.arenas.Intern(name.Text), typ, init, mutable), true
}

// parseAssign recognizes (assign name value).
func (p *Parser) parseAssign(open token.Token) (ast.StmtID, bool) {
	p.advance() // assign
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected an assignment target")
	if !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed assign form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewAssign(span, p.arenas.Intern(name.Text), value), true
}

// parseIf recognizes (if cond then-stmt else-stmt?). Branches that are
// not block forms get wrapped so downstream passes always see blocks.
func (p *Parser) parseIf(open token.Token) (ast.StmtID, bool) {
	p.advance() // if
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBranch()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if !p.at(token.RParen) {
		els, ok = p.parseBranch()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed if form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

func (p *Parser) parseBranch() (ast.StmtID, bool) {
	stmt, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.arenas.Stmts.Get(stmt).Kind == ast.StmtBlock {
		return stmt, true
	}
	span := p.arenas.Stmts.Get(stmt).Span
	return p.arenas.Stmts.NewBlock(span, []ast.StmtID{stmt}), true
}

// parseWhile recognizes (while cond stmt*); the body is an implicit block.
func (p *Parser) parseWhile(open token.Token) (ast.StmtID, bool) {
	p.advance() // while
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	bodyStart := p.lx.Peek().Span
	var body []ast.StmtID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		body = append(body, stmt)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed while form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	block := p.arenas.Stmts.NewBlock(bodyStart.Cover(p.lastSpan), body)
	return p.arenas.Stmts.NewWhile(span, cond, block), true
}

// parseReturn recognizes (return) and (return expr).
func (p *Parser) parseReturn(open token.Token) (ast.StmtID, bool) {
	p.advance() // return
	value := ast.NoExprID
	if !p.at(token.RParen) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = expr
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed return form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewReturn(span, value), true
}

// parseBlock recognizes (block stmt*).
func (p *Parser) parseBlock(open token.Token) (ast.StmtID, bool) {
	p.advance() // block
	var stmts []ast.StmtID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed block form"); !ok {
		return ast.NoStmtID, false
	}
	span := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewBlock(span, stmts), true
}
