// Package driver wires the frontend phases together: it loads files,
// runs the lexer, parser and ownership checker, and aggregates
// diagnostics, timings and move plans for the CLI.
package driver

import (
	"context"
	"fmt"
	"io"

	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/diagfmt"
	"aether/internal/lexer"
	"aether/internal/observ"
	"aether/internal/parser"
	"aether/internal/sema"
	"aether/internal/source"
	"aether/internal/token"
	"aether/internal/types"
)

// DefaultMaxDiagnostics bounds a bag when the caller passes zero.
const DefaultMaxDiagnostics = 100

// CheckOptions configures a frontend run.
type CheckOptions struct {
	MaxDiagnostics int
	// Types may be shared across files; nil allocates a fresh interner.
	Types    *types.Interner
	Progress ProgressSink
}

// CheckResult carries everything the frontend produced for one file.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag
	Arenas  *ast.Builder
	File    ast.FileID
	Types   *types.Interner
	Sema    *sema.Result
	Timing  observ.Report
}

// HasErrors reports whether any phase produced an error diagnostic.
func (r *CheckResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// CheckFile runs the whole frontend on a single source file.
func CheckFile(ctx context.Context, path string, opts *CheckOptions) (*CheckResult, error) {
	var o CheckOptions
	if opts != nil {
		o = *opts
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if o.Types == nil {
		o.Types = types.NewInterner()
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		emit(o.Progress, path, StageLex, StatusError, err)
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return checkLoaded(ctx, path, fs, fileID, &o)
}

func checkLoaded(ctx context.Context, path string, fs *source.FileSet, fileID source.FileID, o *CheckOptions) (*CheckResult, error) {
	bag := diag.NewBag(o.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	timer := observ.NewTimer()

	res := &CheckResult{
		Path:    path,
		FileSet: fs,
		FileID:  fileID,
		Bag:     bag,
		Arenas:  arenas,
		Types:   o.Types,
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	emit(o.Progress, path, StageParse, StatusWorking, nil)
	parsePhase := timer.Begin("parse")
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, arenas, parser.Options{
		MaxErrors: uint(o.MaxDiagnostics),
		Reporter:  reporter,
		Types:     o.Types,
	})
	res.File = parsed.File
	timer.End(parsePhase, "")

	if bag.HasErrors() {
		emit(o.Progress, path, StageParse, StatusError, nil)
		res.Timing = timer.Report()
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	emit(o.Progress, path, StageCheck, StatusWorking, nil)
	checkPhase := timer.Begin("check")
	res.Sema = sema.Check(arenas, parsed.File, sema.Options{
		Reporter: reporter,
		Types:    o.Types,
	})
	timer.End(checkPhase, "")

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(o.Progress, path, StageCheck, status, nil)

	bag.Sort()
	res.Timing = timer.Report()
	return res, nil
}

// TokenizeResult carries the raw token stream for the tokens command.
type TokenizeResult struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Tokens  []token.Token
}

// Tokenize lexes a file without parsing it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, Bag: bag, Tokens: tokens}, nil
}

// DumpAST parses a file and writes its structural dump via diagfmt.
func DumpAST(w io.Writer, path string, maxDiagnostics int) (*CheckResult, error) {
	res, err := parseOnly(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if res.Bag.HasErrors() {
		return res, nil
	}
	return res, diagfmt.DumpAST(w, res.Arenas, res.File, res.Types)
}

func parseOnly(path string, maxDiagnostics int) (*CheckResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	ti := types.NewInterner()

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, arenas, parser.Options{
		MaxErrors: uint(maxDiagnostics),
		Reporter:  reporter,
		Types:     ti,
	})
	return &CheckResult{
		Path:    path,
		FileSet: fs,
		FileID:  fileID,
		Bag:     bag,
		Arenas:  arenas,
		File:    parsed.File,
		Types:   ti,
	}, nil
}
