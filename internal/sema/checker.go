package sema

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/ownership"
	"aether/internal/source"
	"aether/internal/symbols"
	"aether/internal/types"
)

// checker holds the state for one function body.
type checker struct {
	arenas   *ast.Builder
	types    *types.Interner
	reporter diag.Reporter
	table    *symbols.Table
	stack    *symbols.Stack
	tracker  *ownership.Tracker
	borrows  *ownership.Borrows
	plan     *ownership.Plan

	fnScope symbols.ScopeID
	result  types.TypeID
	errors  uint
}

func newChecker(arenas *ast.Builder, table *symbols.Table, root symbols.ScopeID, item ast.ItemID, opts Options) *checker {
	return &checker{
		arenas:   arenas,
		types:    opts.Types,
		reporter: opts.Reporter,
		table:    table,
		stack:    symbols.NewStack(table, root),
		tracker:  ownership.NewTracker(),
		borrows:  ownership.NewBorrows(),
		plan:     ownership.NewPlan(item),
	}
}

func (c *checker) checkFn(fn *ast.ItemFnData) {
	c.fnScope = c.stack.EnterScope(symbols.ScopeFunction, fn.Span)
	c.result = fn.Result
	if c.result == types.NoTypeID {
		c.result = c.types.Builtins().Unit
	}

	for _, param := range fn.Params {
		id, prev := c.stack.Declare(&symbols.Symbol{
			Name: param.Name,
			Kind: symbols.SymbolParam,
			Type: param.Type,
			Span: param.Span,
		})
		if prev.IsValid() {
			prevSym := c.table.Symbols.Get(prev)
			c.report(diag.SemaDuplicateSymbol, param.Span,
				"parameter "+c.table.Name(prev)+" is already declared").
				WithNote(prevSym.Span, "previous declaration here").
				Emit()
			continue
		}
		_ = id
	}

	c.checkBlockStmts(fn.Body)

	c.exitScope(c.fnScope, true)
}

// checkStmt dispatches on statement kind.
func (c *checker) checkStmt(id ast.StmtID) {
	stmt := c.arenas.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		scope := c.stack.EnterScope(symbols.ScopeBlock, stmt.Span)
		c.checkBlockStmts(id)
		c.exitScope(scope, false)
	case ast.StmtLet:
		c.checkLet(id)
	case ast.StmtAssign:
		c.checkAssign(id)
	case ast.StmtExpr:
		data, _ := c.arenas.Stmts.Expr(id)
		c.checkExprValue(data.Expr, false)
	case ast.StmtIf:
		c.checkIf(id)
	case ast.StmtWhile:
		c.checkWhile(id)
	case ast.StmtReturn:
		c.checkReturn(id)
	}
}

// checkBlockStmts checks a block's statements inside an already
// entered scope. The caller exits the scope.
func (c *checker) checkBlockStmts(id ast.StmtID) {
	block, ok := c.arenas.Stmts.Block(id)
	if !ok {
		return
	}
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt)
	}
}

// exitScope releases the scope's borrows, schedules drops for bindings
// that still own their value, and forgets their tracker state. pop is
// false only for scopes the stack already popped.
func (c *checker) exitScope(scope symbols.ScopeID, isFnScope bool) {
	for _, rec := range c.borrows.EndScope(c.tracker, scope) {
		c.plan.Log(ownership.Event{
			Kind:    ownership.EvBorrowEnd,
			Borrow:  rec.ID,
			Binding: rec.Target,
			Span:    rec.Span,
			Scope:   scope,
		})
	}
	for _, symID := range c.stack.ScopeSymbols(scope) {
		sym := c.table.Symbols.Get(symID)
		if sym.Kind == symbols.SymbolLet || sym.Kind == symbols.SymbolParam || sym.Kind == symbols.SymbolRef {
			if c.tracker.MoveStateOf(symID).Live() && c.needsDrop(sym.Type) {
				c.plan.AddDrop(scope, symID)
				c.plan.Log(ownership.Event{
					Kind:    ownership.EvDrop,
					Binding: symID,
					Span:    sym.Span,
					Scope:   scope,
				})
			}
		}
		c.tracker.Forget(symID)
	}
	if !isFnScope {
		c.stack.ExitScope()
	}
}

// needsDrop reports whether a live binding of this type owns a value
// the scope must release on exit. References alias, shared handles
// decrement at runtime, and unit carries nothing.
func (c *checker) needsDrop(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	if !ok {
		return false
	}
	return t.Own == types.Owned && t.Kind != types.KindUnit && t.Kind != types.KindInvalid
}

// transfersOwnership reports whether binding a value of this type takes
// ownership, which makes identifier sources move.
func (c *checker) transfersOwnership(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	if !ok {
		return true
	}
	return t.TransfersOwnership()
}

func (c *checker) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	c.errors++
	return diag.ReportError(c.reporter, code, sp, msg)
}

func (c *checker) nameOf(id source.StringID) string {
	name, _ := c.arenas.StringsInterner.Lookup(id)
	return name
}
