package ownership

import (
	"aether/internal/source"
	"aether/internal/symbols"
)

// Snapshot is an immutable copy of the tracker state, taken at branch
// entry and merged after the branches rejoin.
type Snapshot struct {
	moved   map[symbols.SymbolID]source.Span
	borrows map[symbols.SymbolID]BorrowState
}

// Snapshot copies the current state.
func (t *Tracker) Snapshot() Snapshot {
	moved := make(map[symbols.SymbolID]source.Span, len(t.moved))
	for key, value := range t.moved {
		moved[key] = value
	}
	borrows := make(map[symbols.SymbolID]BorrowState, len(t.borrows))
	for key, value := range t.borrows {
		borrows[key] = value
	}
	return Snapshot{moved: moved, borrows: borrows}
}

// Restore resets the tracker to a previously taken snapshot.
func (t *Tracker) Restore(snap Snapshot) {
	t.moved = make(map[symbols.SymbolID]source.Span, len(snap.moved))
	for key, value := range snap.moved {
		t.moved[key] = value
	}
	t.borrows = make(map[symbols.SymbolID]BorrowState, len(snap.borrows))
	for key, value := range snap.borrows {
		t.borrows[key] = value
	}
}

// MergeBranches installs the conservative join of per-branch final states.
//
// A binding moved on any branch is treated as moved afterwards (the
// violation, if the program later uses it, surfaces at the use site); the
// earliest recorded span wins so the attached note is stable. Borrow
// states take the worst case: an exclusive borrow on either side wins,
// otherwise the larger shared count.
func (t *Tracker) MergeBranches(branches ...Snapshot) {
	moved := make(map[symbols.SymbolID]source.Span)
	borrows := make(map[symbols.SymbolID]BorrowState)
	for _, branch := range branches {
		for key, value := range branch.moved {
			if _, exists := moved[key]; !exists {
				moved[key] = value
			}
		}
		for key, value := range branch.borrows {
			cur := borrows[key]
			if value.Exclusive {
				cur = BorrowState{Exclusive: true}
			} else if !cur.Exclusive && value.Shared > cur.Shared {
				cur.Shared = value.Shared
			}
			borrows[key] = cur
		}
	}
	t.moved = moved
	t.borrows = borrows
}

// Diff compares the current state against a snapshot and returns the
// lowest-numbered binding whose move or borrow state changed. Loop bodies
// are analyzed once and then held to this predicate: state for bindings
// declared outside the loop must be identical between loop entry and the
// back edge, otherwise a second iteration would observe an unsound state.
// Bindings local to the loop have been forgotten by the time the body's
// scope exits, so they never show up in the comparison.
func (t *Tracker) Diff(snap Snapshot) (symbols.SymbolID, bool) {
	worst := symbols.NoSymbolID
	note := func(id symbols.SymbolID) {
		if !worst.IsValid() || id < worst {
			worst = id
		}
	}
	for id := range t.moved {
		if _, ok := snap.moved[id]; !ok {
			note(id)
		}
	}
	for id := range snap.moved {
		if _, ok := t.moved[id]; !ok {
			note(id)
		}
	}
	for id, state := range t.borrows {
		if snap.borrows[id] != state {
			note(id)
		}
	}
	for id, state := range snap.borrows {
		if t.borrows[id] != state {
			note(id)
		}
	}
	return worst, worst.IsValid()
}
