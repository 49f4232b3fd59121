package lexer

import (
	"aether/internal/diag"
	"aether/internal/source"
)

// Options configures a Lexer. A nil Reporter drops lexical errors but
// scanning still continues past them.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
