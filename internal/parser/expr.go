package parser

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/token"
)

// parseExpr recognizes one expression: an atom, or a form whose head is
// an operator, a reference keyword, or a callee name.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Intern(tok.Text)), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitInt, p.arenas.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFloat, p.arenas.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, p.arenas.Intern(tok.Text)), true
	case token.BoolLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitBool, p.arenas.Intern(tok.Text)), true
	case token.LParen:
		open := p.advance()
		return p.parseFormExpr(open)
	default:
		p.report(diag.SynExpectExpression, p.diagSpan(), "expected an expression")
		return ast.NoExprID, false
	}
}

// parseFormExpr recognizes a parenthesized expression whose open paren
// is already consumed.
func (p *Parser) parseFormExpr(open token.Token) (ast.ExprID, bool) {
	head := p.lx.Peek()
	switch {
	case head.Kind == token.KwRef:
		return p.parseUnary(open, ast.ExprUnaryRef)
	case head.Kind == token.KwRefMut:
		return p.parseUnary(open, ast.ExprUnaryRefMut)
	case head.Kind == token.KwDeref:
		return p.parseUnary(open, ast.ExprUnaryDeref)
	case head.Kind == token.KwNot:
		return p.parseUnary(open, ast.ExprUnaryNot)
	case head.Kind == token.Minus:
		return p.parseMinus(open)
	case head.IsOperator() || head.Kind == token.KwAnd || head.Kind == token.KwOr:
		return p.parseBinary(open)
	case head.Kind == token.Ident:
		return p.parseCall(open)
	default:
		p.report(diag.SynUnknownForm, head.Span, "unknown expression form")
		return ast.NoExprID, false
	}
}

func (p *Parser) parseUnary(open token.Token, op ast.ExprUnaryOp) (ast.ExprID, bool) {
	p.advance() // head
	operand, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed form"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(open.Span.Cover(p.lastSpan), op, operand), true
}

// parseMinus disambiguates (- x) negation from (- a b) subtraction by
// arity.
func (p *Parser) parseMinus(open token.Token) (ast.ExprID, bool) {
	p.advance() // minus
	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.RParen) {
		p.advance()
		return p.arenas.Exprs.NewUnary(open.Span.Cover(p.lastSpan), ast.ExprUnaryNeg, first), true
	}
	second, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed form"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(open.Span.Cover(p.lastSpan), ast.ExprBinarySub, first, second), true
}

func (p *Parser) parseBinary(open token.Token) (ast.ExprID, bool) {
	head := p.advance()
	op, ok := binaryOpFor(head.Kind)
	if !ok {
		p.report(diag.SynUnknownForm, head.Span, "unknown operator")
		return ast.NoExprID, false
	}
	left, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	right, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed form"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(open.Span.Cover(p.lastSpan), op, left, right), true
}

func binaryOpFor(k token.Kind) (ast.ExprBinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.ExprBinaryAdd, true
	case token.Minus:
		return ast.ExprBinarySub, true
	case token.Star:
		return ast.ExprBinaryMul, true
	case token.Slash:
		return ast.ExprBinaryDiv, true
	case token.Percent:
		return ast.ExprBinaryMod, true
	case token.EqEq:
		return ast.ExprBinaryEq, true
	case token.BangEq:
		return ast.ExprBinaryNe, true
	case token.Lt:
		return ast.ExprBinaryLt, true
	case token.LtEq:
		return ast.ExprBinaryLe, true
	case token.Gt:
		return ast.ExprBinaryGt, true
	case token.GtEq:
		return ast.ExprBinaryGe, true
	case token.KwAnd:
		return ast.ExprBinaryAnd, true
	case token.KwOr:
		return ast.ExprBinaryOr, true
	default:
		return 0, false
	}
}

// parseCall recognizes (callee arg*).
func (p *Parser) parseCall(open token.Token) (ast.ExprID, bool) {
	callee := p.advance()
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed call form"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(open.Span.Cover(p.lastSpan), p.arenas.Intern(callee.Text), args), true
}
