package sema

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/ownership"
	"aether/internal/symbols"
	"aether/internal/types"
)

// checkLet declares a binding and checks its initializer. A reference
// initializer borrows for the lifetime of the new binding's scope; any
// other initializer of a non-copy type moves the source value in.
func (c *checker) checkLet(id ast.StmtID) {
	stmt := c.arenas.Stmts.Get(id)
	let, _ := c.arenas.Stmts.Let(id)

	if unary, ok := c.arenas.Exprs.Unary(let.Init); ok && (unary.Op == ast.ExprUnaryRef || unary.Op == ast.ExprUnaryRefMut) {
		c.checkLetBorrow(id, let, unary)
		return
	}

	moveCtx := let.Type == types.NoTypeID || c.transfersOwnership(let.Type)
	initType := c.checkExprValue(let.Init, moveCtx)
	declType := let.Type
	if declType == types.NoTypeID {
		declType = initType
	} else if initType != types.NoTypeID && !c.sameType(declType, initType) {
		c.report(diag.SemaTypeMismatch, stmt.Span,
			"cannot initialize "+c.typeName(declType)+" from "+c.typeName(initType)).Emit()
	}

	c.declareBinding(let, stmt, declType, symbols.NoSymbolID)
}

// checkLetBorrow handles (let r (ref x)) and (let-mut style exclusive
// borrows: the borrow is registered against the scope declaring r and
// released when that scope exits.
func (c *checker) checkLetBorrow(id ast.StmtID, let *ast.StmtLetData, unary *ast.ExprUnaryData) {
	stmt := c.arenas.Stmts.Get(id)
	operandExpr := c.arenas.Exprs.Get(unary.Operand)

	ident, ok := c.arenas.Exprs.Ident(unary.Operand)
	if !ok {
		c.report(diag.SemaError, operandExpr.Span, "only named bindings can be borrowed").Emit()
		return
	}
	target := c.stack.Lookup(ident.Name)
	if !target.IsValid() {
		c.report(diag.SemaUndeclaredVariable, operandExpr.Span,
			"undeclared variable "+c.nameOf(ident.Name)).Emit()
		return
	}
	targetSym := c.table.Symbols.Get(target)

	kind := ownership.BorrowShared
	own := types.Borrowed
	if unary.Op == ast.ExprUnaryRefMut {
		kind = ownership.BorrowMut
		own = types.BorrowedMut
	}
	refType := c.types.WithOwnership(c.types.StripOwnership(targetSym.Type), own)
	if let.Type != types.NoTypeID && !c.sameType(let.Type, refType) {
		c.report(diag.SemaTypeMismatch, stmt.Span,
			"cannot initialize "+c.typeName(let.Type)+" from "+c.typeName(refType)).Emit()
	}

	borrower := c.declareBinding(let, stmt, refType, target)
	if !borrower.IsValid() {
		return
	}

	initSpan := c.arenas.Exprs.Get(let.Init).Span
	borrowID, issue := c.borrows.Begin(c.tracker, target, borrower, kind, initSpan, c.stack.Current(), targetSym.IsMutable())
	if !issue.OK() {
		c.reportBorrowIssue(issue, initSpan, target)
		return
	}
	c.plan.SetAction(let.Init, ownership.Action{
		Kind:   actionForBorrow(kind),
		Target: target,
		Span:   initSpan,
	})
	c.plan.Log(ownership.Event{
		Kind:       ownership.EvBorrowStart,
		Borrow:     borrowID,
		BorrowKind: kind,
		Binding:    target,
		Span:       initSpan,
		Scope:      c.stack.Current(),
	})
}

func actionForBorrow(kind ownership.BorrowKind) ownership.ActionKind {
	if kind == ownership.BorrowMut {
		return ownership.ActionBorrowMut
	}
	return ownership.ActionBorrow
}

// declareBinding inserts the let's symbol, reporting duplicates in the
// same scope. Shadowing an outer binding is allowed.
func (c *checker) declareBinding(let *ast.StmtLetData, stmt *ast.Stmt, typ types.TypeID, target symbols.SymbolID) symbols.SymbolID {
	kind := symbols.SymbolLet
	if target.IsValid() {
		kind = symbols.SymbolRef
	}
	var flags symbols.SymbolFlags
	if let.Mutable {
		flags |= symbols.SymbolFlagMutable
	}
	id, prev := c.stack.Declare(&symbols.Symbol{
		Name:   let.Name,
		Kind:   kind,
		Flags:  flags,
		Type:   typ,
		Span:   stmt.Span,
		Target: target,
	})
	if prev.IsValid() {
		prevSym := c.table.Symbols.Get(prev)
		c.report(diag.SemaDuplicateSymbol, stmt.Span,
			c.nameOf(let.Name)+" is already declared in this scope").
			WithNote(prevSym.Span, "previous declaration here").
			Emit()
		return symbols.NoSymbolID
	}
	return id
}

// checkAssign enforces mutability and the borrow freeze on writes.
func (c *checker) checkAssign(id ast.StmtID) {
	stmt := c.arenas.Stmts.Get(id)
	assign, _ := c.arenas.Stmts.Assign(id)

	target := c.stack.Lookup(assign.Name)
	if !target.IsValid() {
		c.report(diag.SemaUndeclaredVariable, stmt.Span,
			"undeclared variable "+c.nameOf(assign.Name)).Emit()
		c.checkExprValue(assign.Value, false)
		return
	}
	sym := c.table.Symbols.Get(target)

	valueType := c.checkExprValue(assign.Value, c.transfersOwnership(sym.Type))
	if valueType != types.NoTypeID && !c.sameType(sym.Type, valueType) {
		c.report(diag.SemaTypeMismatch, stmt.Span,
			"cannot assign "+c.typeName(valueType)+" to "+c.typeName(sym.Type)).Emit()
	}

	issue := c.tracker.CheckAssign(target, stmt.Span, sym.IsMutable())
	if !issue.OK() {
		switch issue.Kind {
		case ownership.IssueNotMutable:
			c.report(diag.OwnAssignToImmutable, stmt.Span,
				"cannot assign to immutable binding "+c.table.Name(target)).
				WithNote(sym.Span, "declared immutable here").
				Emit()
		case ownership.IssueUseAfterMove:
			// A moved binding never comes back to life; reassignment
			// does not revive it.
			c.report(diag.OwnUseAfterMove, stmt.Span,
				"assignment to moved binding "+c.table.Name(target)).
				WithNote(issue.MovedAt, "value moved here").
				Emit()
		case ownership.IssueAssignWhileBorrowed:
			c.report(diag.OwnUseWhileBorrowed, stmt.Span,
				"cannot assign to "+c.table.Name(target)+" while it is borrowed").Emit()
		}
		return
	}
	c.plan.Log(ownership.Event{
		Kind:    ownership.EvWrite,
		Binding: target,
		Span:    stmt.Span,
		Scope:   c.stack.Current(),
	})
}

// checkIf analyzes both branches against the same entry state and
// installs the conservative join.
func (c *checker) checkIf(id ast.StmtID) {
	data, _ := c.arenas.Stmts.If(id)

	condType := c.checkExprValue(data.Cond, false)
	if condType != types.NoTypeID && !c.isBoolType(condType) {
		c.report(diag.SemaTypeMismatch, c.arenas.Exprs.Get(data.Cond).Span,
			"condition must be bool, found "+c.typeName(condType)).Emit()
	}

	entry := c.tracker.Snapshot()

	c.checkStmt(data.Then)
	thenOut := c.tracker.Snapshot()

	elseOut := entry
	if data.Else.IsValid() {
		c.tracker.Restore(entry)
		c.checkStmt(data.Else)
		elseOut = c.tracker.Snapshot()
	}

	c.tracker.MergeBranches(thenOut, elseOut)
}

// checkWhile analyzes the body once and rejects bodies that change the
// ownership state of outer bindings between entry and the back edge.
func (c *checker) checkWhile(id ast.StmtID) {
	stmt := c.arenas.Stmts.Get(id)
	data, _ := c.arenas.Stmts.While(id)

	condType := c.checkExprValue(data.Cond, false)
	if condType != types.NoTypeID && !c.isBoolType(condType) {
		c.report(diag.SemaTypeMismatch, c.arenas.Exprs.Get(data.Cond).Span,
			"condition must be bool, found "+c.typeName(condType)).Emit()
	}

	entry := c.tracker.Snapshot()

	scope := c.stack.EnterScope(symbols.ScopeLoop, stmt.Span)
	c.checkBlockStmts(data.Body)
	c.exitScope(scope, false)

	if changed, ok := c.tracker.Diff(entry); ok {
		sym := c.table.Symbols.Get(changed)
		b := c.report(diag.OwnOwnershipMismatch, stmt.Span,
			"loop body leaves "+c.table.Name(changed)+" in a different ownership state on the back edge")
		if sym != nil {
			b.WithNote(sym.Span, "declared here")
		}
		if moved := c.tracker.MoveStateOf(changed); moved.Moved {
			b.WithNote(moved.At, "moved inside the loop here")
		}
		b.Emit()
		// Keep the merged worst case so later uses still diagnose.
	}
}

// checkReturn moves the returned value out and rejects returns that
// would let a borrow of a function-local escape.
func (c *checker) checkReturn(id ast.StmtID) {
	stmt := c.arenas.Stmts.Get(id)
	ret, _ := c.arenas.Stmts.Return(id)

	if !ret.Value.IsValid() {
		if !c.isUnitType(c.result) {
			c.report(diag.SemaTypeMismatch, stmt.Span,
				"function returns "+c.typeName(c.result)+", found bare return").Emit()
		}
		return
	}

	c.checkDanglingReturn(ret.Value, stmt)

	valueType := c.checkExprValue(ret.Value, c.transfersOwnership(c.result))
	if valueType != types.NoTypeID && !c.sameType(c.result, valueType) {
		c.report(diag.SemaTypeMismatch, stmt.Span,
			"function returns "+c.typeName(c.result)+", found "+c.typeName(valueType)).Emit()
	}
}

// checkDanglingReturn rejects returning a reference whose target lives
// in this function. References to parameters and module-level bindings
// outlive the frame and pass.
func (c *checker) checkDanglingReturn(value ast.ExprID, stmt *ast.Stmt) {
	target := symbols.NoSymbolID

	if unary, ok := c.arenas.Exprs.Unary(value); ok && (unary.Op == ast.ExprUnaryRef || unary.Op == ast.ExprUnaryRefMut) {
		if ident, ok := c.arenas.Exprs.Ident(unary.Operand); ok {
			target = c.stack.Lookup(ident.Name)
		}
	} else if ident, ok := c.arenas.Exprs.Ident(value); ok {
		sym := c.stack.Lookup(ident.Name)
		if sym.IsValid() {
			if rec := c.table.Symbols.Get(sym); rec.Kind == symbols.SymbolRef {
				target = rec.Target
			}
		}
	}

	if !target.IsValid() {
		return
	}
	targetSym := c.table.Symbols.Get(target)
	if targetSym.Kind == symbols.SymbolParam || targetSym.IsModuleLevel() {
		return
	}
	if c.stack.InScope(target, c.fnScope) {
		c.report(diag.OwnDanglingReference, stmt.Span,
			"returning a reference to "+c.table.Name(target)+", which does not outlive this function").
			WithNote(targetSym.Span, "local binding declared here").
			Emit()
	}
}
