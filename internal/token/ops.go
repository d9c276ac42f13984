package token

import "bytes"

// opRule describes every operator that starts with one particular byte.
// next is ordered longest first so the first hit is the longest match.
type opRule struct {
	single Kind
	next   []opTail
}

type opTail struct {
	tail string // bytes after the first one
	kind Kind
}

// opTable is indexed by the first byte of an operator or punctuation token.
var opTable = [128]opRule{
	'+': {Plus, []opTail{{"=", PlusAssign}}},
	'-': {Minus, []opTail{{"=", MinusAssign}, {">", Arrow}}},
	'*': {Star, []opTail{{"=", StarAssign}}},
	'/': {Slash, []opTail{{"=", SlashAssign}}},
	'%': {Percent, []opTail{{"=", PercentAssign}}},
	'^': {Caret, []opTail{{"=", CaretAssign}}},
	'&': {Amp, []opTail{{"&", AndAnd}, {"=", AmpAssign}}},
	'|': {Pipe, []opTail{{"|", OrOr}, {"=", PipeAssign}}},
	'~': {Tilde, nil},
	'!': {Bang, []opTail{{"=", BangEq}}},
	'=': {Assign, []opTail{{"=", EqEq}, {">", FatArrow}}},
	'<': {Lt, []opTail{{"<=", ShlAssign}, {"<", Shl}, {"=", LtEq}}},
	'>': {Gt, []opTail{{">=", ShrAssign}, {">", Shr}, {"=", GtEq}}},
	'@': {At, nil},
	'.': {Dot, []opTail{{".=", DotDotEq}, {".", DotDot}}},
	',': {Comma, nil},
	';': {Semicolon, nil},
	':': {Colon, []opTail{{":", ColonColon}}},
	'?': {Question, nil},
	'(': {LParen, nil},
	')': {RParen, nil},
	'{': {LBrace, nil},
	'}': {RBrace, nil},
	'[': {LBracket, nil},
	']': {RBracket, nil},
}

// MatchOperator returns the longest operator at the start of src and its length in bytes.
// It returns (Invalid, 0) when src does not start with an operator.
func MatchOperator(src []byte) (Kind, int) {
	if len(src) == 0 || src[0] >= 0x80 {
		return Invalid, 0
	}
	rule := opTable[src[0]]
	if rule.single == Invalid {
		return Invalid, 0
	}
	rest := src[1:]
	for _, t := range rule.next {
		if bytes.HasPrefix(rest, []byte(t.tail)) {
			return t.kind, 1 + len(t.tail)
		}
	}
	return rule.single, 1
}

var operatorSpelling = func() map[Kind]string {
	out := make(map[Kind]string, operatorEnd-operatorBegin)
	for b, rule := range opTable {
		if rule.single == Invalid {
			continue
		}
		out[rule.single] = string(rune(b))
		for _, t := range rule.next {
			out[t.kind] = string(rune(b)) + t.tail
		}
	}
	return out
}()
