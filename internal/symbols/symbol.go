package symbols

import (
	"aether/internal/source"
	"aether/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolLet
	SymbolParam
	SymbolRef // a named reference binding produced by (ref x) / (ref-mut x)
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	case SymbolRef:
		return "ref"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	SymbolFlagModuleLevel
)

// Symbol describes a named entity available in a scope.
//
// The record is immutable after declaration: move and borrow state is
// tracked by the ownership package keyed by SymbolID, so that branch
// snapshots never have to copy arena storage.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Flags SymbolFlags
	Type  types.TypeID
	Span  source.Span
	Scope ScopeID

	// Target is set for SymbolRef bindings: the symbol the reference
	// borrows from. Used by the dangling-reference check on return.
	Target SymbolID

	// Signature is set for SymbolFunction.
	Signature *FunctionSignature
}

// IsMutable reports whether the binding may be reassigned.
func (s *Symbol) IsMutable() bool {
	return s.Flags&SymbolFlagMutable != 0
}

// IsModuleLevel reports whether the binding was declared at module scope.
func (s *Symbol) IsModuleLevel() bool {
	return s.Flags&SymbolFlagModuleLevel != 0
}
