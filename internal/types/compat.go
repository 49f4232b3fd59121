package types

// PassMode is the resolved effect of binding an argument to a parameter.
type PassMode uint8

const (
	// PassIncompatible marks an argument that cannot satisfy the parameter.
	PassIncompatible PassMode = iota
	// PassMove transfers ownership of the argument to the callee.
	PassMove
	// PassBorrow creates a shared borrow for the duration of the call.
	PassBorrow
	// PassBorrowMut creates an exclusive borrow for the duration of the call.
	PassBorrowMut
	// PassByValue has no move/borrow effect: an existing reference or a
	// shared handle is handed over as-is.
	PassByValue
)

func (m PassMode) String() string {
	switch m {
	case PassMove:
		return "move"
	case PassBorrow:
		return "borrow"
	case PassBorrowMut:
		return "borrow_mut"
	case PassByValue:
		return "by_value"
	default:
		return "incompatible"
	}
}

// PassModeFor resolves call compatibility of an argument type against a
// parameter type. Ownership kinds must match exactly, except that an Owned
// argument may be narrowed to Borrowed or BorrowedMut (an implicit borrow)
// or transferred where Owned is expected. Shared never converts to or from
// the other three kinds. Base types must agree in every case.
func PassModeFor(arg, param Type) PassMode {
	if !arg.SameBase(param) {
		return PassIncompatible
	}
	switch param.Own {
	case Owned:
		if arg.Own == Owned {
			return PassMove
		}
	case Borrowed:
		switch arg.Own {
		case Owned:
			return PassBorrow
		case Borrowed:
			return PassByValue
		}
	case BorrowedMut:
		switch arg.Own {
		case Owned:
			return PassBorrowMut
		case BorrowedMut:
			return PassByValue
		}
	case Shared:
		if arg.Own == Shared {
			return PassByValue
		}
	}
	return PassIncompatible
}
