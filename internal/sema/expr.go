package sema

import (
	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/ownership"
	"aether/internal/source"
	"aether/internal/symbols"
	"aether/internal/types"
)

// checkExprValue checks an expression used for its value and returns
// its type, NoTypeID after an error. moveCtx marks positions that take
// ownership of the result: initializers, owned arguments, assignments,
// returns of owned values. An identifier of a non-copy type in a move
// context is a move; everywhere else it is a read.
func (c *checker) checkExprValue(id ast.ExprID, moveCtx bool) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	expr := c.arenas.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		return c.checkIdentValue(id, expr.Span, moveCtx)
	case ast.ExprLit:
		return c.literalType(id)
	case ast.ExprUnary:
		return c.checkUnary(id, expr.Span)
	case ast.ExprBinary:
		return c.checkBinary(id, expr.Span)
	case ast.ExprCall:
		return c.checkCall(id, expr.Span)
	default:
		return types.NoTypeID
	}
}

func (c *checker) checkIdentValue(id ast.ExprID, sp source.Span, moveCtx bool) types.TypeID {
	ident, _ := c.arenas.Exprs.Ident(id)
	target := c.stack.Lookup(ident.Name)
	if !target.IsValid() {
		c.report(diag.SemaUndeclaredVariable, sp,
			"undeclared variable "+c.nameOf(ident.Name)).Emit()
		return types.NoTypeID
	}
	sym := c.table.Symbols.Get(target)
	if sym.Kind == symbols.SymbolFunction {
		c.report(diag.SemaError, sp, c.nameOf(ident.Name)+" is a function, not a value").Emit()
		return types.NoTypeID
	}

	if moveCtx && c.transfersOwnership(sym.Type) {
		issue := c.tracker.RecordMove(target, sp)
		if !issue.OK() {
			c.reportMoveIssue(issue, sp, target)
			return sym.Type
		}
		c.plan.SetAction(id, ownership.Action{Kind: ownership.ActionMove, Target: target, Span: sp})
		c.plan.Log(ownership.Event{
			Kind:    ownership.EvMove,
			Binding: target,
			Span:    sp,
			Scope:   c.stack.Current(),
		})
		return sym.Type
	}

	if issue := c.tracker.CheckUse(target, sp); !issue.OK() {
		c.report(diag.OwnUseAfterMove, sp,
			"use of moved value "+c.table.Name(target)).
			WithNote(issue.MovedAt, "value moved here").
			Emit()
		return sym.Type
	}
	// An exclusive borrow freezes the binding for direct reads; access
	// goes through the reference until it dies.
	if c.tracker.BorrowStateOf(target).Exclusive {
		c.report(diag.OwnBorrowConflict, sp,
			"cannot use "+c.table.Name(target)+" while it is exclusively borrowed").Emit()
	}
	return sym.Type
}

func (c *checker) literalType(id ast.ExprID) types.TypeID {
	lit, _ := c.arenas.Exprs.Literal(id)
	builtins := c.types.Builtins()
	switch lit.Kind {
	case ast.ExprLitInt:
		return builtins.Int
	case ast.ExprLitFloat:
		return builtins.Float
	case ast.ExprLitString:
		return builtins.String
	case ast.ExprLitBool:
		return builtins.Bool
	default:
		return types.NoTypeID
	}
}

func (c *checker) checkUnary(id ast.ExprID, sp source.Span) types.TypeID {
	unary, _ := c.arenas.Exprs.Unary(id)
	switch unary.Op {
	case ast.ExprUnaryRef, ast.ExprUnaryRefMut:
		// A reference expression outside a let initializer or a call
		// argument is a temporary borrow scoped to the current block.
		return c.checkTempBorrow(id, unary, sp, c.stack.Current())
	case ast.ExprUnaryDeref:
		operandType := c.checkExprValue(unary.Operand, false)
		if operandType == types.NoTypeID {
			return types.NoTypeID
		}
		t := c.types.MustLookup(operandType)
		if t.Own == types.Owned {
			c.report(diag.SemaTypeMismatch, sp,
				"cannot deref "+c.typeName(operandType)+", it is not a reference").Emit()
			return types.NoTypeID
		}
		return c.types.StripOwnership(operandType)
	case ast.ExprUnaryNeg:
		operandType := c.checkExprValue(unary.Operand, false)
		if operandType == types.NoTypeID {
			return types.NoTypeID
		}
		if !c.isNumericType(operandType) {
			c.report(diag.SemaTypeMismatch, sp,
				"cannot negate "+c.typeName(operandType)).Emit()
			return types.NoTypeID
		}
		return operandType
	case ast.ExprUnaryNot:
		operandType := c.checkExprValue(unary.Operand, false)
		if operandType != types.NoTypeID && !c.isBoolType(operandType) {
			c.report(diag.SemaTypeMismatch, sp,
				"not expects bool, found "+c.typeName(operandType)).Emit()
		}
		return c.types.Builtins().Bool
	default:
		return types.NoTypeID
	}
}

// checkTempBorrow performs the borrow for a ref expression whose
// lifetime is the given scope; the borrower is anonymous.
func (c *checker) checkTempBorrow(id ast.ExprID, unary *ast.ExprUnaryData, sp source.Span, scope symbols.ScopeID) types.TypeID {
	ident, ok := c.arenas.Exprs.Ident(unary.Operand)
	if !ok {
		c.report(diag.SemaError, sp, "only named bindings can be borrowed").Emit()
		return types.NoTypeID
	}
	target := c.stack.Lookup(ident.Name)
	if !target.IsValid() {
		c.report(diag.SemaUndeclaredVariable, sp,
			"undeclared variable "+c.nameOf(ident.Name)).Emit()
		return types.NoTypeID
	}
	sym := c.table.Symbols.Get(target)

	kind := ownership.BorrowShared
	own := types.Borrowed
	if unary.Op == ast.ExprUnaryRefMut {
		kind = ownership.BorrowMut
		own = types.BorrowedMut
	}
	borrowID, issue := c.borrows.Begin(c.tracker, target, symbols.NoSymbolID, kind, sp, scope, sym.IsMutable())
	if !issue.OK() {
		c.reportBorrowIssue(issue, sp, target)
		return types.NoTypeID
	}
	c.plan.SetAction(id, ownership.Action{Kind: actionForBorrow(kind), Target: target, Span: sp})
	c.plan.Log(ownership.Event{
		Kind:       ownership.EvBorrowStart,
		Borrow:     borrowID,
		BorrowKind: kind,
		Binding:    target,
		Span:       sp,
		Scope:      scope,
	})
	return c.types.WithOwnership(c.types.StripOwnership(sym.Type), own)
}

func (c *checker) checkBinary(id ast.ExprID, sp source.Span) types.TypeID {
	bin, _ := c.arenas.Exprs.Binary(id)
	left := c.checkExprValue(bin.Left, false)
	right := c.checkExprValue(bin.Right, false)
	if left == types.NoTypeID || right == types.NoTypeID {
		return types.NoTypeID
	}
	builtins := c.types.Builtins()

	switch bin.Op {
	case ast.ExprBinaryAdd, ast.ExprBinarySub, ast.ExprBinaryMul, ast.ExprBinaryDiv, ast.ExprBinaryMod:
		if !c.isNumericType(left) || !c.sameType(left, right) {
			c.report(diag.SemaTypeMismatch, sp,
				"arithmetic on "+c.typeName(left)+" and "+c.typeName(right)).Emit()
			return types.NoTypeID
		}
		return left
	case ast.ExprBinaryEq, ast.ExprBinaryNe, ast.ExprBinaryLt, ast.ExprBinaryLe, ast.ExprBinaryGt, ast.ExprBinaryGe:
		if !c.sameBase(left, right) {
			c.report(diag.SemaTypeMismatch, sp,
				"comparison of "+c.typeName(left)+" and "+c.typeName(right)).Emit()
		}
		return builtins.Bool
	case ast.ExprBinaryAnd, ast.ExprBinaryOr:
		if !c.isBoolType(left) || !c.isBoolType(right) {
			c.report(diag.SemaTypeMismatch, sp,
				"logical operator expects bool operands").Emit()
		}
		return builtins.Bool
	default:
		return types.NoTypeID
	}
}

// reportMoveIssue maps a failed move transition to a diagnostic.
func (c *checker) reportMoveIssue(issue ownership.Issue, sp source.Span, target symbols.SymbolID) {
	name := c.table.Name(target)
	switch issue.Kind {
	case ownership.IssueDoubleMove:
		c.report(diag.OwnDoubleMove, sp, "value "+name+" moved twice").
			WithNote(issue.MovedAt, "first moved here").
			Emit()
	case ownership.IssueUseAfterMove:
		c.report(diag.OwnUseAfterMove, sp, "use of moved value "+name).
			WithNote(issue.MovedAt, "value moved here").
			Emit()
	case ownership.IssueMoveWhileBorrowed:
		c.report(diag.OwnMoveWhileBorrowed, sp,
			"cannot move "+name+" while it is borrowed").Emit()
	}
}

// reportBorrowIssue maps a failed borrow transition to a diagnostic.
func (c *checker) reportBorrowIssue(issue ownership.Issue, sp source.Span, target symbols.SymbolID) {
	name := c.table.Name(target)
	switch issue.Kind {
	case ownership.IssueUseAfterMove:
		c.report(diag.OwnBorrowOfMoved, sp, "cannot borrow moved value "+name).
			WithNote(issue.MovedAt, "value moved here").
			Emit()
	case ownership.IssueBorrowConflict:
		c.report(diag.OwnBorrowConflict, sp,
			"cannot borrow "+name+", conflicting borrow is active").Emit()
	case ownership.IssueNotMutable:
		sym := c.table.Symbols.Get(target)
		c.report(diag.OwnMutBorrowOfImmutable, sp,
			"cannot take a mutable borrow of immutable binding "+name).
			WithNote(sym.Span, "declared immutable here").
			Emit()
	}
}

func (c *checker) sameType(a, b types.TypeID) bool {
	return a == b
}

func (c *checker) sameBase(a, b types.TypeID) bool {
	ta, oka := c.types.Lookup(a)
	tb, okb := c.types.Lookup(b)
	return oka && okb && ta.SameBase(tb)
}

func (c *checker) isBoolType(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Kind == types.KindBool && t.Own == types.Owned
}

func (c *checker) isUnitType(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Kind == types.KindUnit
}

func (c *checker) isNumericType(id types.TypeID) bool {
	t, ok := c.types.Lookup(id)
	return ok && t.Own == types.Owned && (t.Kind == types.KindInt || t.Kind == types.KindFloat)
}

func (c *checker) typeName(id types.TypeID) string {
	t, ok := c.types.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	if t.Kind == types.KindNamed {
		name := c.nameOf(t.Name)
		if t.Own == types.Owned {
			return name
		}
		return "(" + t.Own.String() + " " + name + ")"
	}
	return t.String()
}
