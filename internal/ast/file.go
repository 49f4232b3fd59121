package ast

import (
	"aether/internal/source"
)

// File is one parsed module file: an ordered list of top-level items.
type File struct {
	Span  source.Span
	Name  source.StringID // module name from the (module …) form
	Items []ItemID
}

// Files manages allocation of parsed files.
type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(span source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: span}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
