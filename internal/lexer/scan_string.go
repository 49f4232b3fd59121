package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"aether/internal/diag"
	"aether/internal/token"
)

// scanString scans a double-quoted literal with \" \\ \n \t \r escapes.
// Token.Text holds the decoded value, not the source spelling; like
// identifiers, non-ASCII values are NFC-normalized so that visually
// identical literals compare equal.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	ascii := true
	var value strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Error, Span: sp, Text: value.String()}
		}
		b := lx.cursor.Bump()
		switch b {
		case '"':
			text := value.String()
			if !ascii {
				text = norm.NFC.String(text)
			}
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: text}
		case '\\':
			esc := lx.cursor.Bump()
			switch esc {
			case '"':
				value.WriteByte('"')
			case '\\':
				value.WriteByte('\\')
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			default:
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexUnknownChar, sp, "unknown escape sequence")
				value.WriteByte(esc)
			}
		default:
			if b >= 0x80 {
				ascii = false
			}
			value.WriteByte(b)
		}
	}
}
