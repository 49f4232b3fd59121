package ownership

import (
	"testing"

	"aether/internal/symbols"
)

func TestBorrowsBeginAndEndScope(t *testing.T) {
	tr := NewTracker()
	bw := NewBorrows()
	target := symbols.SymbolID(1)
	borrower := symbols.SymbolID(2)
	scope := symbols.ScopeID(3)

	id, issue := bw.Begin(tr, target, borrower, BorrowShared, spanAt(1), scope, false)
	if !issue.OK() || !id.IsValid() {
		t.Fatalf("begin failed: %v", issue.Kind)
	}
	if rec := bw.Record(id); rec == nil || rec.Target != target || rec.Borrower != borrower {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if state := tr.BorrowStateOf(target); state.Shared != 1 {
		t.Fatalf("tracker must see the borrow, got %v", state)
	}
	if active := bw.ActiveIn(scope); len(active) != 1 || active[0] != id {
		t.Fatalf("unexpected active set: %v", active)
	}

	released := bw.EndScope(tr, scope)
	if len(released) != 1 || released[0].ID != id {
		t.Fatalf("unexpected released set: %+v", released)
	}
	if state := tr.BorrowStateOf(target); !state.Unborrowed() {
		t.Fatalf("end scope must release the borrow, got %v", state)
	}
	if active := bw.ActiveIn(scope); active != nil {
		t.Fatalf("scope should be empty after release, got %v", active)
	}
}

func TestBorrowsConflictLeavesNoRecord(t *testing.T) {
	tr := NewTracker()
	bw := NewBorrows()
	target := symbols.SymbolID(1)
	scope := symbols.ScopeID(3)

	if _, issue := bw.Begin(tr, target, symbols.NoSymbolID, BorrowMut, spanAt(1), scope, true); !issue.OK() {
		t.Fatalf("exclusive borrow failed: %v", issue.Kind)
	}
	id, issue := bw.Begin(tr, target, symbols.NoSymbolID, BorrowShared, spanAt(2), scope, true)
	if issue.Kind != IssueBorrowConflict {
		t.Fatalf("expected borrow conflict, got %v", issue.Kind)
	}
	if id.IsValid() {
		t.Fatalf("conflicting begin must not register a record")
	}
	if bw.Len() != 1 {
		t.Fatalf("expected a single record, got %d", bw.Len())
	}
}

func TestBorrowsNestedScopesReleaseIndependently(t *testing.T) {
	tr := NewTracker()
	bw := NewBorrows()
	target := symbols.SymbolID(1)
	outer := symbols.ScopeID(5)
	inner := symbols.ScopeID(6)

	if _, issue := bw.Begin(tr, target, symbols.SymbolID(2), BorrowShared, spanAt(1), outer, false); !issue.OK() {
		t.Fatalf("outer borrow failed: %v", issue.Kind)
	}
	if _, issue := bw.Begin(tr, target, symbols.SymbolID(3), BorrowShared, spanAt(2), inner, false); !issue.OK() {
		t.Fatalf("inner borrow failed: %v", issue.Kind)
	}
	if state := tr.BorrowStateOf(target); state.Shared != 2 {
		t.Fatalf("expected two shared borrows, got %v", state)
	}

	bw.EndScope(tr, inner)
	if state := tr.BorrowStateOf(target); state.Shared != 1 {
		t.Fatalf("inner release must keep the outer borrow, got %v", state)
	}
	bw.EndScope(tr, outer)
	if state := tr.BorrowStateOf(target); !state.Unborrowed() {
		t.Fatalf("expected unborrowed, got %v", state)
	}
}

func TestBorrowsCallScopeReleasesArguments(t *testing.T) {
	tr := NewTracker()
	bw := NewBorrows()
	a := symbols.SymbolID(1)
	b := symbols.SymbolID(2)
	callScope := symbols.ScopeID(9)

	// Implicit argument borrows carry no borrower binding; they die with
	// the synthetic call scope.
	if _, issue := bw.Begin(tr, a, symbols.NoSymbolID, BorrowShared, spanAt(1), callScope, false); !issue.OK() {
		t.Fatalf("arg borrow failed: %v", issue.Kind)
	}
	if _, issue := bw.Begin(tr, b, symbols.NoSymbolID, BorrowMut, spanAt(2), callScope, true); !issue.OK() {
		t.Fatalf("arg borrow failed: %v", issue.Kind)
	}

	released := bw.EndScope(tr, callScope)
	if len(released) != 2 {
		t.Fatalf("expected both argument borrows released, got %d", len(released))
	}
	if !tr.BorrowStateOf(a).Unborrowed() || !tr.BorrowStateOf(b).Unborrowed() {
		t.Fatalf("call scope exit must free both arguments")
	}
	if issue := tr.RecordMove(a, spanAt(3)); !issue.OK() {
		t.Fatalf("move after call failed: %v", issue.Kind)
	}
}
