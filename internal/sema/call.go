package sema

import (
	"fmt"

	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/ownership"
	"aether/internal/source"
	"aether/internal/symbols"
	"aether/internal/types"
)

// checkCall resolves the callee, matches arguments against the
// signature, and applies the ownership effect of each pass. Implicit
// argument borrows live in a synthetic scope that closes when the call
// returns, so `(f (ref x)) (consume x)` is legal in sequence.
func (c *checker) checkCall(id ast.ExprID, sp source.Span) types.TypeID {
	call, _ := c.arenas.Exprs.Call(id)

	calleeID := c.stack.Lookup(call.Callee)
	if !calleeID.IsValid() || c.table.Symbols.Get(calleeID).Kind != symbols.SymbolFunction {
		c.report(diag.SemaUnknownFunction, sp,
			"unknown function "+c.nameOf(call.Callee)).Emit()
		for _, arg := range call.Args {
			c.checkExprValue(arg, false)
		}
		return types.NoTypeID
	}
	sig := c.table.Symbols.Get(calleeID).Signature

	if len(call.Args) != sig.Arity() {
		c.report(diag.SemaArgCountMismatch, sp,
			fmt.Sprintf("%s expects %d arguments, found %d", c.nameOf(call.Callee), sig.Arity(), len(call.Args))).Emit()
		for _, arg := range call.Args {
			c.checkExprValue(arg, false)
		}
		return sig.Result
	}

	callScope := c.stack.EnterScope(symbols.ScopeCall, sp)
	for i, arg := range call.Args {
		c.checkCallArg(arg, sig.Params[i], i, call.Callee)
	}
	c.exitScope(callScope, false)

	return sig.Result
}

// checkCallArg applies the pass mode of one argument.
func (c *checker) checkCallArg(arg ast.ExprID, paramType types.TypeID, index int, callee source.StringID) {
	argExpr := c.arenas.Exprs.Get(arg)

	// Named arguments get the implicit narrowing rules; everything else
	// is checked as a value and matched structurally.
	if ident, ok := c.arenas.Exprs.Ident(arg); ok {
		c.checkNamedArg(arg, argExpr.Span, ident.Name, paramType, index, callee)
		return
	}

	argType := c.checkExprValue(arg, c.transfersOwnership(paramType))
	if argType == types.NoTypeID {
		return
	}
	if mode := types.PassModeFor(c.types.MustLookup(argType), c.types.MustLookup(paramType)); mode == types.PassIncompatible {
		c.reportArgMismatch(argExpr.Span, argType, paramType, index, callee)
	}
}

// checkNamedArg narrows an owned binding to the parameter's ownership:
// an owned argument moves into an owned parameter and implicitly
// borrows for a reference parameter. Shared handles only ever pass to
// shared parameters.
func (c *checker) checkNamedArg(arg ast.ExprID, sp source.Span, name source.StringID, paramType types.TypeID, index int, callee source.StringID) {
	target := c.stack.Lookup(name)
	if !target.IsValid() {
		c.report(diag.SemaUndeclaredVariable, sp,
			"undeclared variable "+c.nameOf(name)).Emit()
		return
	}
	sym := c.table.Symbols.Get(target)
	if sym.Kind == symbols.SymbolFunction {
		c.report(diag.SemaError, sp, c.nameOf(name)+" is a function, not a value").Emit()
		return
	}

	mode := types.PassModeFor(c.types.MustLookup(sym.Type), c.types.MustLookup(paramType))
	switch mode {
	case types.PassIncompatible:
		c.reportArgMismatch(sp, sym.Type, paramType, index, callee)

	case types.PassMove:
		issue := c.tracker.RecordMove(target, sp)
		if !issue.OK() {
			c.reportMoveIssue(issue, sp, target)
			return
		}
		c.plan.SetAction(arg, ownership.Action{Kind: ownership.ActionMove, Target: target, Span: sp})
		c.plan.Log(ownership.Event{
			Kind:    ownership.EvMove,
			Binding: target,
			Span:    sp,
			Scope:   c.stack.Current(),
		})

	case types.PassBorrow:
		c.beginArgBorrow(arg, sp, target, ownership.BorrowShared, sym.IsMutable())

	case types.PassBorrowMut:
		c.beginArgBorrow(arg, sp, target, ownership.BorrowMut, sym.IsMutable())

	case types.PassByValue:
		if issue := c.tracker.CheckUse(target, sp); !issue.OK() {
			c.report(diag.OwnUseAfterMove, sp,
				"use of moved value "+c.table.Name(target)).
				WithNote(issue.MovedAt, "value moved here").
				Emit()
			return
		}
		c.plan.SetAction(arg, ownership.Action{Kind: ownership.ActionByValue, Target: target, Span: sp})
	}
}

// beginArgBorrow takes the implicit borrow of an owned argument for the
// duration of the call scope.
func (c *checker) beginArgBorrow(arg ast.ExprID, sp source.Span, target symbols.SymbolID, kind ownership.BorrowKind, mutable bool) {
	borrowID, issue := c.borrows.Begin(c.tracker, target, symbols.NoSymbolID, kind, sp, c.stack.Current(), mutable)
	if !issue.OK() {
		c.reportBorrowIssue(issue, sp, target)
		return
	}
	c.plan.SetAction(arg, ownership.Action{Kind: actionForBorrow(kind), Target: target, Span: sp})
	c.plan.Log(ownership.Event{
		Kind:       ownership.EvBorrowStart,
		Borrow:     borrowID,
		BorrowKind: kind,
		Binding:    target,
		Span:       sp,
		Scope:      c.stack.Current(),
	})
}

func (c *checker) reportArgMismatch(sp source.Span, argType, paramType types.TypeID, index int, callee source.StringID) {
	argT := c.types.MustLookup(argType)
	paramT := c.types.MustLookup(paramType)
	if argT.SameBase(paramT) && (argT.Own == types.Shared) != (paramT.Own == types.Shared) {
		c.report(diag.SemaSharedConversion, sp,
			fmt.Sprintf("argument %d of %s: %s does not convert to %s, shared ownership is explicit",
				index+1, c.nameOf(callee), c.typeName(argType), c.typeName(paramType))).Emit()
		return
	}
	c.report(diag.SemaTypeMismatch, sp,
		fmt.Sprintf("argument %d of %s: expected %s, found %s",
			index+1, c.nameOf(callee), c.typeName(paramType), c.typeName(argType))).Emit()
}
