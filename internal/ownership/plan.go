package ownership

import (
	"aether/internal/ast"
	"aether/internal/source"
	"aether/internal/symbols"
)

// ActionKind identifies what the checker decided for an expression that
// consumes or references a binding.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	// ActionMove transfers ownership out of the binding.
	ActionMove
	// ActionBorrow takes a shared reference.
	ActionBorrow
	// ActionBorrowMut takes an exclusive reference.
	ActionBorrowMut
	// ActionByValue passes an already-borrowed or shared value as is.
	ActionByValue
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionBorrow:
		return "borrow"
	case ActionBorrowMut:
		return "borrow_mut"
	case ActionByValue:
		return "by_value"
	default:
		return "unknown"
	}
}

// Action records the ownership decision for a single expression.
type Action struct {
	Kind   ActionKind
	Target symbols.SymbolID
	Span   source.Span
}

// EventKind identifies the type of event recorded during analysis.
type EventKind uint8

const (
	EvBorrowStart EventKind = iota
	EvBorrowEnd
	EvMove
	EvWrite
	EvDrop
)

func (k EventKind) String() string {
	switch k {
	case EvBorrowStart:
		return "borrow_start"
	case EvBorrowEnd:
		return "borrow_end"
	case EvMove:
		return "move"
	case EvWrite:
		return "write"
	case EvDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Event is a lightweight log entry produced while ownership checking.
// It feeds downstream debug/visualization and must not affect diagnostics.
type Event struct {
	Kind EventKind

	// Borrow is the record associated with this event (when applicable).
	Borrow BorrowID

	// BorrowKind is only meaningful for EvBorrowStart.
	BorrowKind BorrowKind

	// Binding is the binding symbol involved in this event.
	Binding symbols.SymbolID

	Span  source.Span
	Scope symbols.ScopeID
}

// Plan is the per-function product of ownership analysis: the decision
// made for each consuming expression, the bindings each scope is
// responsible for dropping on exit, and the ordered event log.
type Plan struct {
	Fn      ast.ItemID
	Actions map[ast.ExprID]Action
	Drops   map[symbols.ScopeID][]symbols.SymbolID
	Events  []Event
}

// NewPlan builds an empty plan for fn.
func NewPlan(fn ast.ItemID) *Plan {
	return &Plan{
		Fn:      fn,
		Actions: make(map[ast.ExprID]Action),
		Drops:   make(map[symbols.ScopeID][]symbols.SymbolID),
	}
}

// SetAction records the ownership decision for expr.
func (p *Plan) SetAction(expr ast.ExprID, action Action) {
	if !expr.IsValid() || action.Kind == ActionNone {
		return
	}
	p.Actions[expr] = action
}

// AddDrop marks sym as dropped when scope exits. Moved-out bindings are
// not registered here: whoever received the value drops it.
func (p *Plan) AddDrop(scope symbols.ScopeID, sym symbols.SymbolID) {
	if !scope.IsValid() || !sym.IsValid() {
		return
	}
	p.Drops[scope] = append(p.Drops[scope], sym)
}

// Log appends ev to the event log.
func (p *Plan) Log(ev Event) {
	p.Events = append(p.Events, ev)
}
