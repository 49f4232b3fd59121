package types

import (
	"fmt"

	"aether/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the supported base types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindString
	KindNamed // nominal user-declared type, identified by Name
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Ownership is the qualifier wrapping every base type.
// A plain value type with no qualifier is implicitly Owned.
type Ownership uint8

const (
	// Owned is exclusive, value-transferring ownership.
	Owned Ownership = iota
	// Borrowed is shared, read-only, non-owning access.
	Borrowed
	// BorrowedMut is exclusive, read-write, non-owning access.
	BorrowedMut
	// Shared is reference-counted ownership; the count is a runtime
	// concern, the checker treats handles as freely copyable.
	Shared
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "own"
	case Borrowed:
		return "ref"
	case BorrowedMut:
		return "ref-mut"
	case Shared:
		return "shared"
	default:
		return fmt.Sprintf("Ownership(%d)", o)
	}
}

// Type is a compact descriptor: an ownership qualifier over a base kind.
type Type struct {
	Kind Kind
	Own  Ownership
	Name source.StringID // only for KindNamed
}

// TransfersOwnership reports whether passing a value of this type moves it.
func (t Type) TransfersOwnership() bool {
	return t.Own == Owned
}

// IsSharedBorrow reports whether the type is a shared (read-only) borrow.
func (t Type) IsSharedBorrow() bool {
	return t.Own == Borrowed
}

// IsExclusiveBorrow reports whether the type is an exclusive (mutable) borrow.
func (t Type) IsExclusiveBorrow() bool {
	return t.Own == BorrowedMut
}

// Strip returns the base type with the ownership qualifier removed.
func (t Type) Strip() Type {
	t.Own = Owned
	return t
}

// SameBase reports whether two types agree once qualifiers are stripped.
func (t Type) SameBase(other Type) bool {
	return t.Kind == other.Kind && t.Name == other.Name
}

// MakeOwned describes an owned value of the given base kind.
func MakeOwned(kind Kind) Type {
	return Type{Kind: kind, Own: Owned}
}

// MakeBorrowed describes a shared borrow of the given base kind.
func MakeBorrowed(kind Kind) Type {
	return Type{Kind: kind, Own: Borrowed}
}

// MakeBorrowedMut describes an exclusive borrow of the given base kind.
func MakeBorrowedMut(kind Kind) Type {
	return Type{Kind: kind, Own: BorrowedMut}
}

// MakeShared describes a reference-counted handle of the given base kind.
func MakeShared(kind Kind) Type {
	return Type{Kind: kind, Own: Shared}
}

// MakeNamed describes a nominal type with the given ownership qualifier.
func MakeNamed(name source.StringID, own Ownership) Type {
	return Type{Kind: KindNamed, Own: own, Name: name}
}

// String renders the type the way Aether source spells it.
func (t Type) String() string {
	base := t.Kind.String()
	if t.Own == Owned {
		return base
	}
	return fmt.Sprintf("(%s %s)", t.Own, base)
}
