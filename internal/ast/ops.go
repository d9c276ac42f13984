package ast

type UnaryOp uint8

const (
	UnaryNeg    UnaryOp = iota // -x
	UnaryNot                   // !x
	UnaryBitNot                // ~x
	UnaryRef                   // &x
	UnaryRefMut                // &mut x
	UnaryDeref                 // *x
)

var unaryOpNames = [...]string{
	UnaryNeg:    "-",
	UnaryNot:    "!",
	UnaryBitNot: "~",
	UnaryRef:    "&",
	UnaryRefMut: "&mut",
	UnaryDeref:  "*",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAnd
	BinOr
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinRange          // a..b
	BinRangeInclusive // a..=b

	// присваивания
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinModAssign
	BinBitAndAssign
	BinBitOrAssign
	BinBitXorAssign
	BinShlAssign
	BinShrAssign
)

var binaryOpNames = [...]string{
	BinAdd:            "+",
	BinSub:            "-",
	BinMul:            "*",
	BinDiv:            "/",
	BinMod:            "%",
	BinBitAnd:         "&",
	BinBitOr:          "|",
	BinBitXor:         "^",
	BinShl:            "<<",
	BinShr:            ">>",
	BinAnd:            "&&",
	BinOr:             "||",
	BinEq:             "==",
	BinNotEq:          "!=",
	BinLess:           "<",
	BinLessEq:         "<=",
	BinGreater:        ">",
	BinGreaterEq:      ">=",
	BinRange:          "..",
	BinRangeInclusive: "..=",
	BinAssign:         "=",
	BinAddAssign:      "+=",
	BinSubAssign:      "-=",
	BinMulAssign:      "*=",
	BinDivAssign:      "/=",
	BinModAssign:      "%=",
	BinBitAndAssign:   "&=",
	BinBitOrAssign:    "|=",
	BinBitXorAssign:   "^=",
	BinShlAssign:      "<<=",
	BinShrAssign:      ">>=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

func (op BinaryOp) IsAssign() bool { return op >= BinAssign }

func (op BinaryOp) IsComparison() bool { return op >= BinEq && op <= BinGreaterEq }
