package lexer

import (
	"aether/internal/diag"
	"aether/internal/token"
)

// scanNumber scans a decimal integer or a float with an optional
// fraction and exponent. A leading minus has already been validated by
// the caller to sit directly before a digit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('-')

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	isFloat := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		isFloat = true
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.cursor.Eat('+')
		lx.cursor.Eat('-')
		if !isDec(lx.cursor.Peek()) {
			// `1e` with no digits is the start of an identifier-looking
			// tail, roll back and let the number end before it.
			lx.cursor.Reset(mark)
		} else {
			isFloat = true
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	// A digit glued to an identifier tail, e.g. 12ab, is malformed.
	if b := lx.cursor.Peek(); isIdentContinueByte(b) && b != '-' {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		bad := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, bad, "malformed numeric literal")
		return token.Token{Kind: token.Error, Span: bad, Text: string(lx.file.Content[bad.Start:bad.End])}
	}

	kind := token.IntLit
	if isFloat {
		kind = token.FloatLit
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
