package ast

import (
	"nova/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota // узел-заглушка после ошибки разбора
	ExprLit
	ExprPath
	ExprUnary
	ExprBinary
	ExprCall
	ExprIndex
	ExprField
	ExprTupleIndex
	ExprTry
	ExprGroup
	ExprTuple
	ExprArray
	ExprRepeat
	ExprStruct
	ExprBlock
	ExprIf
	ExprMatch
	ExprWhile
	ExprFor
	ExprReturn
	ExprBreak
	ExprContinue
)

var exprKindNames = [...]string{
	ExprInvalid:    "Invalid",
	ExprLit:        "Lit",
	ExprPath:       "Path",
	ExprUnary:      "Unary",
	ExprBinary:     "Binary",
	ExprCall:       "Call",
	ExprIndex:      "Index",
	ExprField:      "Field",
	ExprTupleIndex: "TupleIndex",
	ExprTry:        "Try",
	ExprGroup:      "Group",
	ExprTuple:      "Tuple",
	ExprArray:      "Array",
	ExprRepeat:     "Repeat",
	ExprStruct:     "Struct",
	ExprBlock:      "Block",
	ExprIf:         "If",
	ExprMatch:      "Match",
	ExprWhile:      "While",
	ExprFor:        "For",
	ExprReturn:     "Return",
	ExprBreak:      "Break",
	ExprContinue:   "Continue",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// IsBlockLike: такие выражения в позиции оператора не требуют ';'.
func (k ExprKind) IsBlockLike() bool {
	switch k {
	case ExprBlock, ExprIf, ExprMatch, ExprWhile, ExprFor:
		return true
	}
	return false
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitTrue
	LitFalse
)

var litKindNames = [...]string{
	LitInt:    "int",
	LitFloat:  "float",
	LitString: "string",
	LitChar:   "char",
	LitTrue:   "true",
	LitFalse:  "false",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "?"
}

// ExprLitData хранит исходный текст литерала; значение вычисляется позже.
type ExprLitData struct {
	Kind  LitKind
	Value source.StringID
}

// ExprPathData: a, a::b::c. Одиночный идентификатор это путь из одного сегмента.
type ExprPathData struct {
	Segments []source.StringID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprFieldData struct {
	Target ExprID
	Name   source.StringID
}

type ExprTupleIndexData struct {
	Target ExprID
	Index  uint32
}

// ExprWrapData: Try, Group, Return, Break. Inner может быть NoExprID у return/break.
type ExprWrapData struct {
	Inner ExprID
}

// ExprListData: Tuple и Array.
type ExprListData struct {
	Elems []ExprID
}

type ExprRepeatData struct {
	Elem  ExprID
	Count ExprID
}

type FieldInit struct {
	Name  source.StringID
	Value ExprID // для сокращения `Point { x }` это путь `x`
	Span  source.Span
}

type ExprStructData struct {
	Path   ExprID
	Fields []FieldInit
}

type ExprBlockData struct {
	Stmts []StmtID
	Tail  ExprID // последнее выражение без ';', может отсутствовать
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID // блок или вложенный if
}

type MatchArm struct {
	Pat   PatID
	Guard ExprID
	Body  ExprID
	Span  source.Span
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type ExprWhileData struct {
	Cond ExprID
	Body ExprID
}

type ExprForData struct {
	Pat  PatID
	Iter ExprID
	Body ExprID
}
