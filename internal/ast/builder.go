package ast

import (
	"aether/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder aggregates the arenas for one parse session plus the shared
// string interner used for names and literal text.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs

	StringsInterner *source.Interner
}

// NewBuilder constructs a builder. If strings is nil a fresh interner is
// allocated; drivers share one interner across files of a module.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: strings,
	}
}

// Intern is a convenience wrapper over the shared interner.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// PushItem appends an item to the file's top-level list.
func (b *Builder) PushItem(file FileID, item ItemID) {
	b.Files.Get(file).Items = append(b.Files.Get(file).Items, item)
}
