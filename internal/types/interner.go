package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types (all implicitly Owned).
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	Float   TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(MakeOwned(KindUnit))
	in.builtins.Bool = in.Intern(MakeOwned(KindBool))
	in.builtins.Int = in.Intern(MakeOwned(KindInt))
	in.builtins.Float = in.Intern(MakeOwned(KindFloat))
	in.builtins.String = in.Intern(MakeOwned(KindString))
	return in
}

// Builtins returns TypeIDs for the primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup returns the descriptor and panics on an unknown ID.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: unknown TypeID %d", id))
	}
	return t
}

// WithOwnership re-interns the base of id under a different qualifier.
func (in *Interner) WithOwnership(id TypeID, own Ownership) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	t.Own = own
	return in.Intern(t)
}

// StripOwnership returns the TypeID of the bare base type.
func (in *Interner) StripOwnership(id TypeID) TypeID {
	return in.WithOwnership(id, Owned)
}

// Len reports the number of interned descriptors.
func (in *Interner) Len() int {
	return len(in.types)
}
