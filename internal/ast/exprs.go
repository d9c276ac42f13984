package ast

import (
	"nova/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena        *Arena[Expr]
	Lits         *Arena[ExprLitData]
	Paths        *Arena[ExprPathData]
	Unaries      *Arena[ExprUnaryData]
	Binaries     *Arena[ExprBinaryData]
	Calls        *Arena[ExprCallData]
	Indices      *Arena[ExprIndexData]
	Fields       *Arena[ExprFieldData]
	TupleIndices *Arena[ExprTupleIndexData]
	Wraps        *Arena[ExprWrapData]
	Lists        *Arena[ExprListData]
	Repeats      *Arena[ExprRepeatData]
	Structs      *Arena[ExprStructData]
	Blocks       *Arena[ExprBlockData]
	Ifs          *Arena[ExprIfData]
	Matches      *Arena[ExprMatchData]
	Whiles       *Arena[ExprWhileData]
	Fors         *Arena[ExprForData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// Редкие виды получают четверть ёмкости.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	rare := capHint/4 + 1
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Lits:         NewArena[ExprLitData](capHint),
		Paths:        NewArena[ExprPathData](capHint),
		Unaries:      NewArena[ExprUnaryData](rare),
		Binaries:     NewArena[ExprBinaryData](capHint),
		Calls:        NewArena[ExprCallData](rare),
		Indices:      NewArena[ExprIndexData](rare),
		Fields:       NewArena[ExprFieldData](rare),
		TupleIndices: NewArena[ExprTupleIndexData](rare),
		Wraps:        NewArena[ExprWrapData](rare),
		Lists:        NewArena[ExprListData](rare),
		Repeats:      NewArena[ExprRepeatData](rare),
		Structs:      NewArena[ExprStructData](rare),
		Blocks:       NewArena[ExprBlockData](rare),
		Ifs:          NewArena[ExprIfData](rare),
		Matches:      NewArena[ExprMatchData](rare),
		Whiles:       NewArena[ExprWhileData](rare),
		Fors:         NewArena[ExprForData](rare),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewInvalid ставит заглушку на месте выражения, которое не удалось разобрать.
func (e *Exprs) NewInvalid(span source.Span) ExprID {
	return e.new(ExprInvalid, span, NoPayloadID)
}

func (e *Exprs) NewLit(span source.Span, kind LitKind, value source.StringID) ExprID {
	payload := e.Lits.Allocate(ExprLitData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Lits.Get(p), true
}

func (e *Exprs) NewPath(span source.Span, segments []source.StringID) ExprID {
	payload := e.Paths.Allocate(ExprPathData{Segments: segments})
	return e.new(ExprPath, span, PayloadID(payload))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	p, ok := e.payload(id, ExprPath)
	if !ok {
		return nil, false
	}
	return e.Paths.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewField(span source.Span, target ExprID, name source.StringID) ExprID {
	payload := e.Fields.Allocate(ExprFieldData{Target: target, Name: name})
	return e.new(ExprField, span, PayloadID(payload))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	p, ok := e.payload(id, ExprField)
	if !ok {
		return nil, false
	}
	return e.Fields.Get(p), true
}

func (e *Exprs) NewTupleIndex(span source.Span, target ExprID, index uint32) ExprID {
	payload := e.TupleIndices.Allocate(ExprTupleIndexData{Target: target, Index: index})
	return e.new(ExprTupleIndex, span, PayloadID(payload))
}

func (e *Exprs) TupleIndex(id ExprID) (*ExprTupleIndexData, bool) {
	p, ok := e.payload(id, ExprTupleIndex)
	if !ok {
		return nil, false
	}
	return e.TupleIndices.Get(p), true
}

// NewWrap creates Try, Group, Return or Break.
func (e *Exprs) NewWrap(kind ExprKind, span source.Span, inner ExprID) ExprID {
	switch kind {
	case ExprTry, ExprGroup, ExprReturn, ExprBreak:
	default:
		panic("ast: NewWrap with kind " + kind.String())
	}
	payload := e.Wraps.Allocate(ExprWrapData{Inner: inner})
	return e.new(kind, span, PayloadID(payload))
}

// Wrap returns the payload of Try, Group, Return and Break expressions.
func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprTry, ExprGroup, ExprReturn, ExprBreak:
		return e.Wraps.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewContinue(span source.Span) ExprID {
	return e.new(ExprContinue, span, NoPayloadID)
}

// NewList creates Tuple or Array.
func (e *Exprs) NewList(kind ExprKind, span source.Span, elems []ExprID) ExprID {
	if kind != ExprTuple && kind != ExprArray {
		panic("ast: NewList with kind " + kind.String())
	}
	payload := e.Lists.Allocate(ExprListData{Elems: elems})
	return e.new(kind, span, PayloadID(payload))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprTuple && expr.Kind != ExprArray) {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewRepeat(span source.Span, elem, count ExprID) ExprID {
	payload := e.Repeats.Allocate(ExprRepeatData{Elem: elem, Count: count})
	return e.new(ExprRepeat, span, PayloadID(payload))
}

func (e *Exprs) Repeat(id ExprID) (*ExprRepeatData, bool) {
	p, ok := e.payload(id, ExprRepeat)
	if !ok {
		return nil, false
	}
	return e.Repeats.Get(p), true
}

func (e *Exprs) NewStruct(span source.Span, path ExprID, fields []FieldInit) ExprID {
	payload := e.Structs.Allocate(ExprStructData{Path: path, Fields: fields})
	return e.new(ExprStruct, span, PayloadID(payload))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	p, ok := e.payload(id, ExprStruct)
	if !ok {
		return nil, false
	}
	return e.Structs.Get(p), true
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID, tail ExprID) ExprID {
	payload := e.Blocks.Allocate(ExprBlockData{Stmts: stmts, Tail: tail})
	return e.new(ExprBlock, span, PayloadID(payload))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	p, ok := e.payload(id, ExprBlock)
	if !ok {
		return nil, false
	}
	return e.Blocks.Get(p), true
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return e.Ifs.Get(p), true
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	payload := e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: arms})
	return e.new(ExprMatch, span, PayloadID(payload))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	p, ok := e.payload(id, ExprMatch)
	if !ok {
		return nil, false
	}
	return e.Matches.Get(p), true
}

func (e *Exprs) NewWhile(span source.Span, cond, body ExprID) ExprID {
	payload := e.Whiles.Allocate(ExprWhileData{Cond: cond, Body: body})
	return e.new(ExprWhile, span, PayloadID(payload))
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	p, ok := e.payload(id, ExprWhile)
	if !ok {
		return nil, false
	}
	return e.Whiles.Get(p), true
}

func (e *Exprs) NewFor(span source.Span, pat PatID, iter, body ExprID) ExprID {
	payload := e.Fors.Allocate(ExprForData{Pat: pat, Iter: iter, Body: body})
	return e.new(ExprFor, span, PayloadID(payload))
}

func (e *Exprs) For(id ExprID) (*ExprForData, bool) {
	p, ok := e.payload(id, ExprFor)
	if !ok {
		return nil, false
	}
	return e.Fors.Get(p), true
}
