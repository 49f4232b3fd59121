package ast

import (
	"aether/internal/source"
	"aether/internal/types"
)

type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFn
)

// Item is the kind/span header for a top-level declaration.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// FnParam is one declared parameter with its ownership-annotated type.
type FnParam struct {
	Name source.StringID
	Type types.TypeID
	Span source.Span
}

type ItemFnData struct {
	Name   source.StringID
	Params []FnParam
	Result types.TypeID // NoTypeID means Unit
	Body   StmtID       // block; NoStmtID for a declaration without body
	Span   source.Span
}

// Items manages allocation of top-level declarations.
type Items struct {
	Arena *Arena[Item]
	Fns   *Arena[ItemFnData]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena: NewArena[Item](capHint),
		Fns:   NewArena[ItemFnData](capHint),
	}
}

// Get returns the item header for the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewFn creates a function item.
func (it *Items) NewFn(span source.Span, name source.StringID, params []FnParam, result types.TypeID, body StmtID) ItemID {
	payload := it.Fns.Allocate(ItemFnData{
		Name:   name,
		Params: params,
		Result: result,
		Body:   body,
		Span:   span,
	})
	return ItemID(it.Arena.Allocate(Item{
		Kind:    ItemFn,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Fn returns the function payload, or false for other kinds.
func (it *Items) Fn(id ItemID) (*ItemFnData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return it.Fns.Get(uint32(item.Payload)), true
}
