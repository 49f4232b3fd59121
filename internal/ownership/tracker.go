package ownership

import (
	"aether/internal/source"
	"aether/internal/symbols"
)

// Tracker is the move/borrow state machine, keyed by SymbolID.
//
// State lives here rather than on the symbol records so that branch
// analysis can snapshot, restore and merge it without touching shared
// arena storage. Absent keys mean Live and Unborrowed.
type Tracker struct {
	moved   map[symbols.SymbolID]source.Span
	borrows map[symbols.SymbolID]BorrowState
}

func NewTracker() *Tracker {
	return &Tracker{
		moved:   make(map[symbols.SymbolID]source.Span),
		borrows: make(map[symbols.SymbolID]BorrowState),
	}
}

// MoveStateOf returns the current move state of a binding.
func (t *Tracker) MoveStateOf(id symbols.SymbolID) MoveState {
	if at, ok := t.moved[id]; ok {
		return MoveState{Moved: true, At: at}
	}
	return MoveState{}
}

// BorrowStateOf returns the current borrow state of a binding.
func (t *Tracker) BorrowStateOf(id symbols.SymbolID) BorrowState {
	return t.borrows[id]
}

// RecordMove transfers ownership away from the binding.
// Requires Live and Unborrowed. On failure the state is unchanged.
func (t *Tracker) RecordMove(id symbols.SymbolID, at source.Span) Issue {
	if !id.IsValid() {
		return Issue{}
	}
	if movedAt, ok := t.moved[id]; ok {
		return Issue{Kind: IssueDoubleMove, MovedAt: movedAt}
	}
	if !t.borrows[id].Unborrowed() {
		return Issue{Kind: IssueMoveWhileBorrowed}
	}
	t.moved[id] = at
	return Issue{}
}

// RecordBorrow takes a shared borrow of the binding.
// Requires Live and no exclusive borrow. On success the shared count grows.
func (t *Tracker) RecordBorrow(id symbols.SymbolID, at source.Span) Issue {
	if !id.IsValid() {
		return Issue{}
	}
	if movedAt, ok := t.moved[id]; ok {
		return Issue{Kind: IssueUseAfterMove, MovedAt: movedAt}
	}
	state := t.borrows[id]
	if state.Exclusive {
		return Issue{Kind: IssueBorrowConflict}
	}
	state.Shared++
	t.borrows[id] = state
	return Issue{}
}

// RecordBorrowMut takes an exclusive borrow of the binding.
// Requires Live, Unborrowed and a mutable binding.
func (t *Tracker) RecordBorrowMut(id symbols.SymbolID, at source.Span, mutable bool) Issue {
	if !id.IsValid() {
		return Issue{}
	}
	if movedAt, ok := t.moved[id]; ok {
		return Issue{Kind: IssueUseAfterMove, MovedAt: movedAt}
	}
	if !mutable {
		return Issue{Kind: IssueNotMutable}
	}
	state := t.borrows[id]
	if !state.Unborrowed() {
		return Issue{Kind: IssueBorrowConflict}
	}
	t.borrows[id] = BorrowState{Exclusive: true}
	return Issue{}
}

// releaseBorrow drops one shared borrow. Only the borrow scope manager
// calls this; releasing an unborrowed binding is an internal fault.
func (t *Tracker) releaseBorrow(id symbols.SymbolID) {
	state := t.borrows[id]
	if state.Shared == 0 {
		panic("ownership: shared borrow released twice")
	}
	state.Shared--
	if state.Unborrowed() {
		delete(t.borrows, id)
	} else {
		t.borrows[id] = state
	}
}

// releaseBorrowMut drops the exclusive borrow. Only the borrow scope
// manager calls this; releasing twice is an internal fault.
func (t *Tracker) releaseBorrowMut(id symbols.SymbolID) {
	state := t.borrows[id]
	if !state.Exclusive {
		panic("ownership: exclusive borrow released twice")
	}
	delete(t.borrows, id)
}

// CheckUse validates a read of the binding's value (not its address).
func (t *Tracker) CheckUse(id symbols.SymbolID, at source.Span) Issue {
	if !id.IsValid() {
		return Issue{}
	}
	if movedAt, ok := t.moved[id]; ok {
		return Issue{Kind: IssueUseAfterMove, MovedAt: movedAt}
	}
	return Issue{}
}

// CheckAssign validates a reassignment of the binding.
// Requires a mutable, Live, Unborrowed binding.
func (t *Tracker) CheckAssign(id symbols.SymbolID, at source.Span, mutable bool) Issue {
	if !id.IsValid() {
		return Issue{}
	}
	if !mutable {
		return Issue{Kind: IssueNotMutable}
	}
	if movedAt, ok := t.moved[id]; ok {
		return Issue{Kind: IssueUseAfterMove, MovedAt: movedAt}
	}
	if !t.borrows[id].Unborrowed() {
		return Issue{Kind: IssueAssignWhileBorrowed}
	}
	return Issue{}
}

// Forget drops all state for a binding whose scope has exited.
func (t *Tracker) Forget(id symbols.SymbolID) {
	delete(t.moved, id)
	delete(t.borrows, id)
}
