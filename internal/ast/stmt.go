package ast

import (
	"nova/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtExpr
	StmtItem
	StmtEmpty // одиночная ';'
)

var stmtKindNames = [...]string{
	StmtLet:   "Let",
	StmtExpr:  "Expr",
	StmtItem:  "Item",
	StmtEmpty: "Empty",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type LetStmt struct {
	Pat   PatID
	Type  TypeID // NoTypeID без аннотации
	Value ExprID // NoExprID без инициализатора
}

type ExprStmt struct {
	Expr ExprID
	Semi bool // была ли завершающая ';'
}

type ItemStmt struct {
	Item ItemID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[LetStmt]
	Exprs *Arena[ExprStmt]
	Items *Arena[ItemStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[LetStmt](capHint / 2),
		Exprs: NewArena[ExprStmt](capHint / 2),
		Items: NewArena[ItemStmt](capHint/16 + 1),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, pat PatID, typ TypeID, value ExprID) StmtID {
	payload := s.Lets.Allocate(LetStmt{Pat: pat, Type: typ, Value: value})
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	payload := s.Exprs.Allocate(ExprStmt{Expr: expr, Semi: semi})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	payload := s.Items.Allocate(ItemStmt{Item: item})
	return s.new(StmtItem, span, PayloadID(payload))
}

func (s *Stmts) Item(id StmtID) (*ItemStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtItem {
		return nil, false
	}
	return s.Items.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
