package ast

import (
	"nova/internal/source"
)

type PatKind uint8

const (
	PatInvalid PatKind = iota
	PatWild            // _
	PatBind            // x, mut x
	PatLit             // 1, -1, "s", 'c', true
	PatTuple           // (a, _, 3)
)

var patKindNames = [...]string{
	PatInvalid: "Invalid",
	PatWild:    "Wild",
	PatBind:    "Bind",
	PatLit:     "Lit",
	PatTuple:   "Tuple",
}

func (k PatKind) String() string {
	if int(k) < len(patKindNames) {
		return patKindNames[k]
	}
	return "PatKind(?)"
}

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

type PatBindData struct {
	Name source.StringID
	Mut  bool
}

type PatLitData struct {
	Kind  LitKind
	Neg   bool
	Value source.StringID
}

type PatTupleData struct {
	Elems []PatID
}

type Pats struct {
	Arena  *Arena[Pat]
	Binds  *Arena[PatBindData]
	Lits   *Arena[PatLitData]
	Tuples *Arena[PatTupleData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Pats{
		Arena:  NewArena[Pat](capHint),
		Binds:  NewArena[PatBindData](capHint),
		Lits:   NewArena[PatLitData](capHint / 4),
		Tuples: NewArena[PatTupleData](capHint / 4),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: payload}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) NewInvalid(span source.Span) PatID {
	return p.new(PatInvalid, span, NoPayloadID)
}

func (p *Pats) NewWild(span source.Span) PatID {
	return p.new(PatWild, span, NoPayloadID)
}

func (p *Pats) NewBind(span source.Span, name source.StringID, mut bool) PatID {
	payload := p.Binds.Allocate(PatBindData{Name: name, Mut: mut})
	return p.new(PatBind, span, PayloadID(payload))
}

func (p *Pats) Bind(id PatID) (*PatBindData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatBind {
		return nil, false
	}
	return p.Binds.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewLit(span source.Span, kind LitKind, neg bool, value source.StringID) PatID {
	payload := p.Lits.Allocate(PatLitData{Kind: kind, Neg: neg, Value: value})
	return p.new(PatLit, span, PayloadID(payload))
}

func (p *Pats) Lit(id PatID) (*PatLitData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewTuple(span source.Span, elems []PatID) PatID {
	payload := p.Tuples.Allocate(PatTupleData{Elems: elems})
	return p.new(PatTuple, span, PayloadID(payload))
}

func (p *Pats) Tuple(id PatID) (*PatTupleData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTuple {
		return nil, false
	}
	return p.Tuples.Get(uint32(pat.Payload)), true
}
