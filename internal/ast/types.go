package ast

import (
	"nova/internal/source"
)

type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypePath             // a::B<T, U>
	TypeRef              // &T, &mut T
	TypeSlice            // [T]
	TypeArray            // [T; N]
	TypeTuple            // (A, B), () это пустой кортеж
	TypeNever            // !
)

var typeKindNames = [...]string{
	TypeInvalid: "Invalid",
	TypePath:    "Path",
	TypeRef:     "Ref",
	TypeSlice:   "Slice",
	TypeArray:   "Array",
	TypeTuple:   "Tuple",
	TypeNever:   "Never",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "TypeKind(?)"
}

type TypeExpr struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypePathData struct {
	Segments []source.StringID
	Args     []TypeID // generic-аргументы последнего сегмента
}

type TypeRefData struct {
	Mut  bool
	Elem TypeID
}

// TypeArrayData: у среза Len == NoExprID.
type TypeArrayData struct {
	Elem TypeID
	Len  ExprID
}

type TypeTupleData struct {
	Elems []TypeID
}

type Types struct {
	Arena  *Arena[TypeExpr]
	Paths  *Arena[TypePathData]
	Refs   *Arena[TypeRefData]
	Arrays *Arena[TypeArrayData]
	Tuples *Arena[TypeTupleData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:  NewArena[TypeExpr](capHint),
		Paths:  NewArena[TypePathData](capHint),
		Refs:   NewArena[TypeRefData](capHint / 4),
		Arrays: NewArena[TypeArrayData](capHint / 4),
		Tuples: NewArena[TypeTupleData](capHint / 4),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: payload}))
}

func (t *Types) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewInvalid(span source.Span) TypeID {
	return t.new(TypeInvalid, span, NoPayloadID)
}

func (t *Types) NewNever(span source.Span) TypeID {
	return t.new(TypeNever, span, NoPayloadID)
}

func (t *Types) NewPath(span source.Span, segments []source.StringID, args []TypeID) TypeID {
	payload := t.Paths.Allocate(TypePathData{Segments: segments, Args: args})
	return t.new(TypePath, span, PayloadID(payload))
}

func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypePath {
		return nil, false
	}
	return t.Paths.Get(uint32(typ.Payload)), true
}

func (t *Types) NewRef(span source.Span, mut bool, elem TypeID) TypeID {
	payload := t.Refs.Allocate(TypeRefData{Mut: mut, Elem: elem})
	return t.new(TypeRef, span, PayloadID(payload))
}

func (t *Types) Ref(id TypeID) (*TypeRefData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeRef {
		return nil, false
	}
	return t.Refs.Get(uint32(typ.Payload)), true
}

// NewArray creates [T; len], or the slice [T] when length is NoExprID.
func (t *Types) NewArray(span source.Span, elem TypeID, length ExprID) TypeID {
	kind := TypeArray
	if !length.IsValid() {
		kind = TypeSlice
	}
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem, Len: length})
	return t.new(kind, span, PayloadID(payload))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	typ := t.Get(id)
	if typ == nil || (typ.Kind != TypeArray && typ.Kind != TypeSlice) {
		return nil, false
	}
	return t.Arrays.Get(uint32(typ.Payload)), true
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	payload := t.Tuples.Allocate(TypeTupleData{Elems: elems})
	return t.new(TypeTuple, span, PayloadID(payload))
}

func (t *Types) Tuple(id TypeID) (*TypeTupleData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(typ.Payload)), true
}
