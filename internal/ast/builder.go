package ast

import (
	"nova/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs, Types, Pats uint }

// Builder владеет всеми аренами одного разбора. Не потокобезопасен:
// на каждый файл (или на каждый воркер) свой Builder.
type Builder struct {
	Files   *Files
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *Types
	Pats    *Pats
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 6
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Items:   NewItems(hints.Items),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Types),
		Pats:    NewPats(hints.Pats),
		Strings: strings,
	}
}

// HintsFor прикидывает ёмкости арен по размеру исходника: примерно один
// узел выражения на 4 байта текста.
func HintsFor(size int) Hints {
	exprs := uint(size/4) + 16
	return Hints{
		Files: 1,
		Items: exprs/32 + 8,
		Stmts: exprs/4 + 8,
		Exprs: exprs,
		Types: exprs/16 + 8,
		Pats:  exprs/16 + 8,
	}
}

func (b *Builder) NewFile(file source.FileID, sp source.Span) FileID {
	return b.Files.New(file, sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name возвращает интернированную строку или "" для NoStringID.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
