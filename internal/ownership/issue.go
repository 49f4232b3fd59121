package ownership

import (
	"aether/internal/source"
)

// IssueKind enumerates the reasons a tracker transition fails.
type IssueKind uint8

const (
	IssueNone IssueKind = iota
	// IssueUseAfterMove is a read or borrow of a moved binding.
	IssueUseAfterMove
	// IssueDoubleMove is a move of an already moved binding.
	IssueDoubleMove
	// IssueMoveWhileBorrowed is a move attempted while any borrow is active.
	IssueMoveWhileBorrowed
	// IssueBorrowConflict is an exclusive borrow requested while any borrow
	// is active, or a shared borrow requested during an exclusive one.
	IssueBorrowConflict
	// IssueNotMutable is a mutable borrow or assignment of an immutable binding.
	IssueNotMutable
	// IssueAssignWhileBorrowed is an assignment while any borrow is active.
	IssueAssignWhileBorrowed
)

func (k IssueKind) String() string {
	switch k {
	case IssueNone:
		return "none"
	case IssueUseAfterMove:
		return "use_after_move"
	case IssueDoubleMove:
		return "double_move"
	case IssueMoveWhileBorrowed:
		return "move_while_borrowed"
	case IssueBorrowConflict:
		return "borrow_conflict"
	case IssueNotMutable:
		return "not_mutable"
	case IssueAssignWhileBorrowed:
		return "assign_while_borrowed"
	default:
		return "unknown"
	}
}

// Issue describes one failed transition.
type Issue struct {
	Kind IssueKind
	// MovedAt is the original move location for the move-related kinds.
	MovedAt source.Span
}

// OK reports whether the transition succeeded.
func (i Issue) OK() bool { return i.Kind == IssueNone }
