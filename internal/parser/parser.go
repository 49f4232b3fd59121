package parser

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/lexer"
	"aether/internal/source"
	"aether/internal/token"
	"aether/internal/types"
)

type Options struct {
	// MaxErrors bounds reported syntax errors, 0 means unlimited.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	// Types interns the ownership-annotated type annotations found in
	// parameter lists and let forms.
	Types *types.Interner
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one `(module name item*)` file into the builder's
// arenas. It requires an already constructed lexer over the file.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	if opts.Types == nil {
		opts.Types = types.NewInterner()
	}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.Peek().Span),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.Peek().Span,
	}

	p.parseModule()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

// parseModule recognizes the single top-level module form.
func (p *Parser) parseModule() {
	startSpan := p.lx.Peek().Span

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected a module form"); !ok {
		p.resyncTop()
		return
	}
	if _, ok := p.expect(token.KwModule, diag.SynUnexpectedTopLevel, "a file starts with (module name ...)"); !ok {
		p.resyncForm()
		return
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a module name")
	if ok {
		p.arenas.Files.Get(p.file).Name = p.arenas.Intern(name.Text)
	}

	for !p.at(token.RParen) && !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncForm()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "unclosed module form")

	if tok := p.lx.Peek(); tok.Kind != token.EOF {
		p.report(diag.SynUnexpectedTopLevel, tok.Span, "content after the module form")
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}

// parseItem dispatches on the head of a top-level form. Only fn items
// exist at this level.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected an item form"); !ok {
		return ast.NoItemID, false
	}
	switch p.lx.Peek().Kind {
	case token.KwFn:
		return p.parseFn()
	default:
		p.report(diag.SynUnexpectedTopLevel, p.lx.Peek().Span, "only fn items can appear inside a module")
		return ast.NoItemID, false
	}
}
