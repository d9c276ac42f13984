package ast

import (
	"nova/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemImpl
	ItemTrait
	ItemUse
	ItemTypeAlias
	ItemMod
)

var itemKindNames = [...]string{
	ItemFn:        "Fn",
	ItemStruct:    "Struct",
	ItemEnum:      "Enum",
	ItemImpl:      "Impl",
	ItemTrait:     "Trait",
	ItemUse:       "Use",
	ItemTypeAlias: "TypeAlias",
	ItemMod:       "Mod",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "ItemKind(?)"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Pub     bool
	Name    source.StringID // у impl и use имени нет
	Payload PayloadID
}

// GenericParam: `T: Display + Clone`.
type GenericParam struct {
	Name   source.StringID
	Bounds []TypeID
	Span   source.Span
}

// WherePred: `T: Bound + Bound` внутри where.
type WherePred struct {
	Type   TypeID
	Bounds []TypeID
	Span   source.Span
}

type FnParam struct {
	Pat  PatID
	Type TypeID
	Span source.Span
}

type FnItem struct {
	Generics []GenericParam
	Params   []FnParam
	Result   TypeID // NoTypeID, если `->` нет
	Where    []WherePred
	Body     ExprID // NoExprID для объявления без тела внутри trait
}

type StructShape uint8

const (
	ShapeNamed StructShape = iota // { a: T }
	ShapeTuple                    // (T, U)
	ShapeUnit                     // ;
)

var shapeNames = [...]string{ShapeNamed: "named", ShapeTuple: "tuple", ShapeUnit: "unit"}

func (s StructShape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "?"
}

// FieldDecl: у полей кортежной формы Name == NoStringID.
type FieldDecl struct {
	Pub  bool
	Name source.StringID
	Type TypeID
	Span source.Span
}

type StructItem struct {
	Generics []GenericParam
	Shape    StructShape
	Fields   []FieldDecl
}

type Variant struct {
	Name   source.StringID
	Shape  StructShape
	Fields []FieldDecl
	Span   source.Span
}

type EnumItem struct {
	Generics []GenericParam
	Variants []Variant
}

type ImplItem struct {
	Generics []GenericParam
	Trait    TypeID // NoTypeID для inherent impl
	Self     TypeID
	Where    []WherePred
	Items    []ItemID
}

type TraitItem struct {
	Generics []GenericParam
	Supers   []TypeID
	Items    []ItemID
}

type UseItem struct {
	Path []source.StringID
	Glob bool // use a::b::*;
}

type TypeAliasItem struct {
	Generics []GenericParam
	Target   TypeID
}

type ModItem struct {
	Inline bool // mod m { ... } против mod m;
	Items  []ItemID
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Structs *Arena[StructItem]
	Enums   *Arena[EnumItem]
	Impls   *Arena[ImplItem]
	Traits  *Arena[TraitItem]
	Uses    *Arena[UseItem]
	Aliases *Arena[TypeAliasItem]
	Mods    *Arena[ModItem]
}

// NewItems creates an Items with per-kind arenas initialized to capHint.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	rare := capHint/8 + 1
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructItem](rare),
		Enums:   NewArena[EnumItem](rare),
		Impls:   NewArena[ImplItem](rare),
		Traits:  NewArena[TraitItem](rare),
		Uses:    NewArena[UseItem](rare),
		Aliases: NewArena[TypeAliasItem](rare),
		Mods:    NewArena[ModItem](rare),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, pub bool, name source.StringID, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Pub:     pub,
		Name:    name,
		Payload: PayloadID(payload),
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) payload(id ItemID, kind ItemKind) (uint32, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != kind {
		return 0, false
	}
	return uint32(item.Payload), true
}

func (i *Items) NewFn(span source.Span, pub bool, name source.StringID, fn FnItem) ItemID {
	return i.new(ItemFn, span, pub, name, i.Fns.Allocate(fn))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	p, ok := i.payload(id, ItemFn)
	if !ok {
		return nil, false
	}
	return i.Fns.Get(p), true
}

func (i *Items) NewStruct(span source.Span, pub bool, name source.StringID, st StructItem) ItemID {
	return i.new(ItemStruct, span, pub, name, i.Structs.Allocate(st))
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	p, ok := i.payload(id, ItemStruct)
	if !ok {
		return nil, false
	}
	return i.Structs.Get(p), true
}

func (i *Items) NewEnum(span source.Span, pub bool, name source.StringID, en EnumItem) ItemID {
	return i.new(ItemEnum, span, pub, name, i.Enums.Allocate(en))
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	p, ok := i.payload(id, ItemEnum)
	if !ok {
		return nil, false
	}
	return i.Enums.Get(p), true
}

func (i *Items) NewImpl(span source.Span, impl ImplItem) ItemID {
	return i.new(ItemImpl, span, false, source.NoStringID, i.Impls.Allocate(impl))
}

func (i *Items) Impl(id ItemID) (*ImplItem, bool) {
	p, ok := i.payload(id, ItemImpl)
	if !ok {
		return nil, false
	}
	return i.Impls.Get(p), true
}

func (i *Items) NewTrait(span source.Span, pub bool, name source.StringID, tr TraitItem) ItemID {
	return i.new(ItemTrait, span, pub, name, i.Traits.Allocate(tr))
}

func (i *Items) Trait(id ItemID) (*TraitItem, bool) {
	p, ok := i.payload(id, ItemTrait)
	if !ok {
		return nil, false
	}
	return i.Traits.Get(p), true
}

func (i *Items) NewUse(span source.Span, pub bool, use UseItem) ItemID {
	return i.new(ItemUse, span, pub, source.NoStringID, i.Uses.Allocate(use))
}

func (i *Items) Use(id ItemID) (*UseItem, bool) {
	p, ok := i.payload(id, ItemUse)
	if !ok {
		return nil, false
	}
	return i.Uses.Get(p), true
}

func (i *Items) NewTypeAlias(span source.Span, pub bool, name source.StringID, alias TypeAliasItem) ItemID {
	return i.new(ItemTypeAlias, span, pub, name, i.Aliases.Allocate(alias))
}

func (i *Items) TypeAlias(id ItemID) (*TypeAliasItem, bool) {
	p, ok := i.payload(id, ItemTypeAlias)
	if !ok {
		return nil, false
	}
	return i.Aliases.Get(p), true
}

func (i *Items) NewMod(span source.Span, pub bool, name source.StringID, mod ModItem) ItemID {
	return i.new(ItemMod, span, pub, name, i.Mods.Allocate(mod))
}

func (i *Items) Mod(id ItemID) (*ModItem, bool) {
	p, ok := i.payload(id, ItemMod)
	if !ok {
		return nil, false
	}
	return i.Mods.Get(p), true
}
