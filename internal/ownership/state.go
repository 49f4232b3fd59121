package ownership

import (
	"fmt"

	"aether/internal/source"
)

// MoveState records whether a binding's value has been moved away.
// The zero value is Live.
type MoveState struct {
	Moved bool
	At    source.Span // location of the move when Moved
}

// Live reports whether the binding still owns its value.
func (m MoveState) Live() bool { return !m.Moved }

func (m MoveState) String() string {
	if m.Moved {
		return fmt.Sprintf("moved@%s", m.At)
	}
	return "live"
}

// BorrowState counts the active borrows of a binding.
// The zero value is Unborrowed. Shared and Exclusive are mutually
// exclusive: Exclusive implies Shared == 0 and vice versa.
type BorrowState struct {
	Shared    uint32
	Exclusive bool
}

// Unborrowed reports whether no borrow is active.
func (b BorrowState) Unborrowed() bool {
	return b.Shared == 0 && !b.Exclusive
}

func (b BorrowState) String() string {
	switch {
	case b.Exclusive:
		return "exclusive"
	case b.Shared > 0:
		return fmt.Sprintf("shared(%d)", b.Shared)
	default:
		return "unborrowed"
	}
}
