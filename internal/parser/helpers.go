package parser

import (
	"aether/internal/diag"
	"aether/internal/source"
	"aether/internal/token"
)

// advance consumes the next token and remembers its span for
// end-of-input diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// diagSpan picks the best span for a diagnostic at the current position.
// At EOF it points just past the last consumed token.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, sp, msg)
	return token.Token{Kind: token.Error, Span: sp}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

// resyncForm skips to the matching close paren of the form whose open
// paren was already consumed.
func (p *Parser) resyncForm() {
	depth := 1
	for depth > 0 {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		p.advance()
	}
}

// resyncTop skips everything to EOF; used when the file does not even
// open a module form.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		p.advance()
	}
}
