package ast

import (
	"nova/internal/source"
)

type File struct {
	Source source.FileID
	Span   source.Span
	Items  []ItemID
	// Stmts заполняется только ParseStmts (режим REPL); ParseFile оставляет его пустым.
	Stmts []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(file source.FileID, sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Source: file,
		Span:   sp,
		Items:  make([]ItemID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
