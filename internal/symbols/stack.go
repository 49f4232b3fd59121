package symbols

import (
	"aether/internal/source"
)

// Stack is the compile-time environment of one traversal: a stack of
// lexical scopes over a shared Table. The bottom scope is the module
// root; everything above it belongs exclusively to this stack.
type Stack struct {
	table *Table
	stack []ScopeID // innermost last
}

// NewStack builds a stack rooted at the given scope (usually ModuleRoot).
func NewStack(table *Table, root ScopeID) *Stack {
	return &Stack{
		table: table,
		stack: []ScopeID{root},
	}
}

// Table exposes the underlying table.
func (s *Stack) Table() *Table { return s.table }

// Current returns the innermost scope.
func (s *Stack) Current() ScopeID {
	return s.stack[len(s.stack)-1]
}

// Depth reports the number of scopes on the stack.
func (s *Stack) Depth() int { return len(s.stack) }

// EnterScope pushes a new empty scope of the given kind.
func (s *Stack) EnterScope(kind ScopeKind, span source.Span) ScopeID {
	id := s.table.Scopes.New(kind, s.Current(), span)
	s.stack = append(s.stack, id)
	return id
}

// ExitScope pops the innermost scope and returns its ID.
// The root scope cannot be popped; ok is false in that case.
func (s *Stack) ExitScope() (ScopeID, bool) {
	if len(s.stack) <= 1 {
		return NoScopeID, false
	}
	id := s.Current()
	s.stack = s.stack[:len(s.stack)-1]
	return id, true
}

// Declare inserts a new symbol into the current scope.
//
// A name already bound in the *current* scope is a duplicate declaration:
// the existing symbol is returned as prev and no new symbol is allocated.
// A name bound only in an ancestor scope is shadowed: the new declaration
// wins for subsequent lookups without touching the ancestor's symbol.
func (s *Stack) Declare(sym *Symbol) (id SymbolID, prev SymbolID) {
	cur := s.Current()
	if existing := s.table.LookupIn(cur, sym.Name); existing.IsValid() {
		return NoSymbolID, existing
	}
	sym.Scope = cur
	id = s.table.Symbols.New(sym)
	sc := s.table.Scopes.Get(cur)
	sc.NameIndex[sym.Name] = id
	sc.Symbols = append(sc.Symbols, id)
	return id, NoSymbolID
}

// Lookup searches from the innermost scope outward and returns the
// nearest symbol bound to name, or NoSymbolID.
func (s *Stack) Lookup(name source.StringID) SymbolID {
	return s.table.LookupFrom(s.Current(), name)
}

// ScopeSymbols returns the symbols declared directly in the given scope.
func (s *Stack) ScopeSymbols(scope ScopeID) []SymbolID {
	sc := s.table.Scopes.Get(scope)
	if sc == nil {
		return nil
	}
	return sc.Symbols
}

// InScope reports whether target is declared in scope or any of its
// descendants on the current stack (i.e. at or below the given frame).
func (s *Stack) InScope(target SymbolID, scope ScopeID) bool {
	sym := s.table.Symbols.Get(target)
	if sym == nil {
		return false
	}
	for cur := sym.Scope; cur.IsValid(); {
		if cur == scope {
			return true
		}
		sc := s.table.Scopes.Get(cur)
		if sc == nil {
			break
		}
		cur = sc.Parent
	}
	return false
}
