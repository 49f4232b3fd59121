package ownership

import (
	"fmt"

	"fortio.org/safecast"

	"aether/internal/source"
	"aether/internal/symbols"
)

// BorrowID identifies an active borrow record.
type BorrowID uint32

// NoBorrowID marks the absence of a borrow.
const NoBorrowID BorrowID = 0

// IsValid reports whether the id refers to a registered record.
func (id BorrowID) IsValid() bool { return id != NoBorrowID }

// BorrowKind differentiates shared vs mutable borrows.
type BorrowKind uint8

const (
	BorrowShared BorrowKind = iota
	BorrowMut
)

func (k BorrowKind) String() string {
	switch k {
	case BorrowShared:
		return "shared"
	case BorrowMut:
		return "mut"
	default:
		return fmt.Sprintf("BorrowKind(%d)", uint8(k))
	}
}

// BorrowRecord stores metadata about one live borrow. Target is the
// borrowed binding; Borrower is the binding holding the reference, or
// NoSymbolID for call-argument borrows that live only for the duration
// of a synthetic call scope.
type BorrowRecord struct {
	ID       BorrowID
	Kind     BorrowKind
	Target   symbols.SymbolID
	Borrower symbols.SymbolID
	Span     source.Span
	Scope    symbols.ScopeID

	released bool
}

// Borrows registers borrow records against the scope of the borrower
// and releases them when that scope exits. It is the only component
// allowed to undo borrow transitions on the tracker: every record is
// released exactly once, in EndScope, and a second release is an
// internal fault.
type Borrows struct {
	records []BorrowRecord
	byScope map[symbols.ScopeID][]BorrowID
}

// NewBorrows builds an empty borrow registry. Index 0 is reserved so
// that NoBorrowID never resolves to a record.
func NewBorrows() *Borrows {
	return &Borrows{
		records: []BorrowRecord{{}},
		byScope: make(map[symbols.ScopeID][]BorrowID),
	}
}

// Begin performs the borrow transition on the tracker and, if it is
// admissible, registers a record bound to the borrower's scope. On a
// conflict no record is created and the tracker is left untouched.
func (b *Borrows) Begin(t *Tracker, target, borrower symbols.SymbolID, kind BorrowKind, span source.Span, scope symbols.ScopeID, targetMutable bool) (BorrowID, Issue) {
	if !target.IsValid() || !scope.IsValid() {
		return NoBorrowID, Issue{}
	}
	var issue Issue
	switch kind {
	case BorrowShared:
		issue = t.RecordBorrow(target, span)
	case BorrowMut:
		issue = t.RecordBorrowMut(target, span, targetMutable)
	default:
		panic(fmt.Sprintf("ownership: unknown borrow kind %d", kind))
	}
	if !issue.OK() {
		return NoBorrowID, issue
	}
	value, err := safecast.Conv[uint32](len(b.records))
	if err != nil {
		panic(fmt.Errorf("ownership: borrow registry overflow: %w", err))
	}
	id := BorrowID(value)
	b.records = append(b.records, BorrowRecord{
		ID:       id,
		Kind:     kind,
		Target:   target,
		Borrower: borrower,
		Span:     span,
		Scope:    scope,
	})
	b.byScope[scope] = append(b.byScope[scope], id)
	return id, Issue{}
}

// Record returns the record for id, or nil when the id is unknown.
func (b *Borrows) Record(id BorrowID) *BorrowRecord {
	if !id.IsValid() || int(id) >= len(b.records) {
		return nil
	}
	return &b.records[id]
}

// ActiveIn returns the ids of the not-yet-released records registered
// against scope, in creation order.
func (b *Borrows) ActiveIn(scope symbols.ScopeID) []BorrowID {
	ids := b.byScope[scope]
	if len(ids) == 0 {
		return nil
	}
	active := make([]BorrowID, 0, len(ids))
	for _, id := range ids {
		if !b.records[id].released {
			active = append(active, id)
		}
	}
	return active
}

// EndScope releases every record registered against scope, newest
// first, and returns the released records for event logging. Each
// record is released exactly once; hitting an already-released record
// here means scope bookkeeping went wrong and the process must not
// continue with a corrupted borrow count.
func (b *Borrows) EndScope(t *Tracker, scope symbols.ScopeID) []BorrowRecord {
	ids := b.byScope[scope]
	if len(ids) == 0 {
		return nil
	}
	delete(b.byScope, scope)
	released := make([]BorrowRecord, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		rec := &b.records[ids[i]]
		if rec.released {
			panic(fmt.Sprintf("ownership: borrow %d released twice", rec.ID))
		}
		rec.released = true
		switch rec.Kind {
		case BorrowShared:
			t.releaseBorrow(rec.Target)
		case BorrowMut:
			t.releaseBorrowMut(rec.Target)
		}
		released = append(released, *rec)
	}
	return released
}

// Len reports the number of registered records, released or not.
func (b *Borrows) Len() int { return len(b.records) - 1 }
