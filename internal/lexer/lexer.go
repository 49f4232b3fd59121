package lexer

import (
	"aether/internal/source"
	"aether/internal/token"
)

// Lexer produces tokens for one file. Whitespace and line comments are
// skipped, not attached to tokens.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '(':
		return lx.scanSingle(token.LParen)
	case ch == ')':
		return lx.scanSingle(token.RParen)
	case ch == '"':
		return lx.scanString()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '-' && lx.isNumberAfterMinus():
		return lx.scanNumber()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	default:
		return lx.scanOperator()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// skipTrivia consumes whitespace and `;` line comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		case ';':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanSingle(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: string(b)}
}

func (lx *Lexer) isNumberAfterMinus() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isDec(b1)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
