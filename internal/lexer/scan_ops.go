package lexer

import (
	"fmt"

	"aether/internal/diag"
	"aether/internal/token"
)

// scanOperator scans the operator heads: arithmetic, comparison, and
// anything unrecognized becomes an Error token.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		} else {
			return lx.unknownChar(start, b)
		}
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		} else {
			return lx.unknownChar(start, b)
		}
	case '<':
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		} else {
			kind = token.Lt
		}
	case '>':
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	default:
		return lx.unknownChar(start, b)
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) unknownChar(start Mark, b byte) token.Token {
	// Consume the rest of a multi-byte rune so the error span covers it.
	if b >= utf8RuneSelf {
		for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", string(lx.file.Content[sp.Start:sp.End])))
	return token.Token{Kind: token.Error, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
