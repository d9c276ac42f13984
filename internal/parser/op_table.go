package parser

import (
	"nova/internal/ast"
	"nova/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет. Префиксные операторы связывают
// сильнее любого бинарного, постфиксные сильнее префиксных.
// Побитовые & ^ | стоят выше сравнений: a & b == c это (a & b) == c.
const (
	precAssignment     = 1  // = += -= *= /= %= &= |= ^= <<= >>=
	precRange          = 2  // .. ..=
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precComparison     = 5  // == != < <= > >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

type assoc uint8

const (
	assocLeft assoc = iota
	assocRight
	assocNone // цепочка a..b..c: ошибка
)

type binaryInfo struct {
	prec  int
	assoc assoc
	op    ast.BinaryOp
}

// binaryOperator возвращает приоритет, ассоциативность и узел для токена.
func binaryOperator(kind token.Kind) (binaryInfo, bool) {
	switch kind {
	// Присваивание (правоассоциативно)
	case token.Assign:
		return binaryInfo{precAssignment, assocRight, ast.BinAssign}, true
	case token.PlusAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinAddAssign}, true
	case token.MinusAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinSubAssign}, true
	case token.StarAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinMulAssign}, true
	case token.SlashAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinDivAssign}, true
	case token.PercentAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinModAssign}, true
	case token.AmpAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinBitAndAssign}, true
	case token.PipeAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinBitOrAssign}, true
	case token.CaretAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinBitXorAssign}, true
	case token.ShlAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinShlAssign}, true
	case token.ShrAssign:
		return binaryInfo{precAssignment, assocRight, ast.BinShrAssign}, true

	// Диапазоны
	case token.DotDot:
		return binaryInfo{precRange, assocNone, ast.BinRange}, true
	case token.DotDotEq:
		return binaryInfo{precRange, assocNone, ast.BinRangeInclusive}, true

	// Логические операторы
	case token.OrOr:
		return binaryInfo{precLogicalOr, assocLeft, ast.BinOr}, true
	case token.AndAnd:
		return binaryInfo{precLogicalAnd, assocLeft, ast.BinAnd}, true

	// Сравнения
	case token.EqEq:
		return binaryInfo{precComparison, assocLeft, ast.BinEq}, true
	case token.BangEq:
		return binaryInfo{precComparison, assocLeft, ast.BinNotEq}, true
	case token.Lt:
		return binaryInfo{precComparison, assocLeft, ast.BinLess}, true
	case token.LtEq:
		return binaryInfo{precComparison, assocLeft, ast.BinLessEq}, true
	case token.Gt:
		return binaryInfo{precComparison, assocLeft, ast.BinGreater}, true
	case token.GtEq:
		return binaryInfo{precComparison, assocLeft, ast.BinGreaterEq}, true

	// Битовые операторы
	case token.Pipe:
		return binaryInfo{precBitwiseOr, assocLeft, ast.BinBitOr}, true
	case token.Caret:
		return binaryInfo{precBitwiseXor, assocLeft, ast.BinBitXor}, true
	case token.Amp:
		return binaryInfo{precBitwiseAnd, assocLeft, ast.BinBitAnd}, true

	// Сдвиги
	case token.Shl:
		return binaryInfo{precShift, assocLeft, ast.BinShl}, true
	case token.Shr:
		return binaryInfo{precShift, assocLeft, ast.BinShr}, true

	// Арифметические операторы
	case token.Plus:
		return binaryInfo{precAdditive, assocLeft, ast.BinAdd}, true
	case token.Minus:
		return binaryInfo{precAdditive, assocLeft, ast.BinSub}, true
	case token.Star:
		return binaryInfo{precMultiplicative, assocLeft, ast.BinMul}, true
	case token.Slash:
		return binaryInfo{precMultiplicative, assocLeft, ast.BinDiv}, true
	case token.Percent:
		return binaryInfo{precMultiplicative, assocLeft, ast.BinMod}, true

	default:
		return binaryInfo{}, false // не бинарный оператор
	}
}

// prefixOperator возвращает унарный оператор для токена в префиксной позиции.
// `&mut` и `&&` обрабатываются в parseUnaryExpr.
func prefixOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	case token.Tilde:
		return ast.UnaryBitNot, true
	case token.Star:
		return ast.UnaryDeref, true
	case token.Amp:
		return ast.UnaryRef, true
	default:
		return 0, false
	}
}

// canStartExpr: может ли токен начинать выражение (для return/break без значения).
func canStartExpr(kind token.Kind) bool {
	switch kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.LParen, token.LBracket, token.LBrace,
		token.KwIf, token.KwMatch, token.KwWhile, token.KwFor, token.KwReturn,
		token.KwBreak, token.KwContinue, token.AndAnd, token.Invalid:
		return true
	}
	_, ok := prefixOperator(kind)
	return ok
}
