package sema

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/ownership"
	"aether/internal/source"
	"aether/internal/symbols"
	"aether/internal/types"
)

type Options struct {
	Reporter diag.Reporter
	// Types is the interner the parser used for annotations; required.
	Types *types.Interner
	Hints symbols.Hints
}

// Result carries the products of one semantic pass.
type Result struct {
	Table *symbols.Table
	// Plans maps each checked function item to its ownership plan.
	Plans map[ast.ItemID]*ownership.Plan
	// Verified marks functions whose bodies produced no diagnostics.
	// Downstream stages skip code generation for unverified functions.
	Verified map[ast.ItemID]bool
}

// Check runs the semantic pass over one parsed file.
//
// Functions are visible module-wide regardless of declaration order:
// a signature pre-pass declares them all before any body is checked.
func Check(arenas *ast.Builder, file ast.FileID, opts Options) *Result {
	if opts.Types == nil {
		opts.Types = types.NewInterner()
	}
	table := symbols.NewTable(opts.Hints, arenas.StringsInterner)
	astFile := arenas.Files.Get(file)
	root := table.ModuleRoot(astFile.Span)

	res := &Result{
		Table:    table,
		Plans:    make(map[ast.ItemID]*ownership.Plan, len(astFile.Items)),
		Verified: make(map[ast.ItemID]bool, len(astFile.Items)),
	}

	declareFunctions(arenas, astFile, table, root, opts)

	for _, itemID := range astFile.Items {
		fn, ok := arenas.Items.Fn(itemID)
		if !ok || !fn.Body.IsValid() {
			continue
		}
		c := newChecker(arenas, table, root, itemID, opts)
		c.checkFn(fn)
		res.Plans[itemID] = c.plan
		res.Verified[itemID] = c.errors == 0
	}
	return res
}

// declareFunctions is the signature pre-pass.
func declareFunctions(arenas *ast.Builder, astFile *ast.File, table *symbols.Table, root symbols.ScopeID, opts Options) {
	stack := symbols.NewStack(table, root)
	builtins := opts.Types.Builtins()
	for _, itemID := range astFile.Items {
		fn, ok := arenas.Items.Fn(itemID)
		if !ok {
			continue
		}
		sig := &symbols.FunctionSignature{
			Params:     make([]types.TypeID, len(fn.Params)),
			ParamNames: make([]source.StringID, len(fn.Params)),
			Result:     fn.Result,
			HasBody:    fn.Body.IsValid(),
		}
		if sig.Result == types.NoTypeID {
			sig.Result = builtins.Unit
		}
		for i, param := range fn.Params {
			sig.Params[i] = param.Type
			sig.ParamNames[i] = param.Name
		}
		_, prev := stack.Declare(&symbols.Symbol{
			Name:      fn.Name,
			Kind:      symbols.SymbolFunction,
			Flags:     symbols.SymbolFlagModuleLevel,
			Span:      fn.Span,
			Signature: sig,
		})
		if prev.IsValid() {
			prevSym := table.Symbols.Get(prev)
			diag.ReportError(opts.Reporter, diag.SemaDuplicateSymbol, fn.Span,
				"function "+table.Name(prev)+" is already declared").
				WithNote(prevSym.Span, "previous declaration here").
				Emit()
		}
	}
}
