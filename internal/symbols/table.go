package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"aether/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
// One Table serves one module; every function body gets its own Stack
// over the table, so bodies can be checked concurrently as long as they
// only read module-level symbols.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	moduleRoot ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// ModuleRoot returns (and creates on first call) the module-level scope.
func (t *Table) ModuleRoot(span source.Span) ScopeID {
	if t.moduleRoot.IsValid() {
		return t.moduleRoot
	}
	t.moduleRoot = t.Scopes.New(ScopeModule, NoScopeID, span)
	return t.moduleRoot
}

// LookupIn searches a single scope's name index.
func (t *Table) LookupIn(scope ScopeID, name source.StringID) SymbolID {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID
	}
	return sc.NameIndex[name]
}

// LookupFrom searches from scope outward through the parent chain and
// returns the nearest symbol bound to name.
func (t *Table) LookupFrom(scope ScopeID, name source.StringID) SymbolID {
	for cur := scope; cur.IsValid(); {
		sc := t.Scopes.Get(cur)
		if sc == nil {
			break
		}
		if id, ok := sc.NameIndex[name]; ok {
			return id
		}
		cur = sc.Parent
	}
	return NoSymbolID
}

// Name resolves a symbol's interned name to its text.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}
