package token

// Kind represents the category of a source token.
// The set is closed: every value below kindCount is a valid Kind.
type Kind uint8

const (
	// Invalid indicates an erroneous token; the lexer already reported it.
	Invalid Kind = iota
	// EOF marks the end of the source input. It is always zero-width.
	EOF

	// Ident represents an identifier token.
	Ident
	// Underscore is a lone '_'.
	Underscore // _

	literalBegin
	// IntLit is a decimal, 0x, 0b or 0o integer literal.
	IntLit
	// FloatLit is a decimal literal with a fraction or an exponent.
	FloatLit
	// StringLit is a double-quoted string literal, possibly unterminated.
	StringLit
	// CharLit is a single-quoted character literal.
	CharLit
	literalEnd

	keywordBegin
	KwFn       // fn
	KwLet      // let
	KwMut      // mut
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwStruct   // struct
	KwEnum     // enum
	KwImpl     // impl
	KwTrait    // trait
	KwType     // type
	KwPub      // pub
	KwUse      // use
	KwMod      // mod
	KwWhere    // where
	KwMatch    // match
	KwTrue     // true
	KwFalse    // false
	keywordEnd

	operatorBegin
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Caret         // ^
	Amp           // &
	Pipe          // |
	Tilde         // ~
	Bang          // !
	Assign        // =
	Lt            // <
	Gt            // >
	At            // @
	Dot           // .
	DotDot        // ..
	DotDotEq      // ..=
	Comma         // ,
	Semicolon     // ;
	Colon         // :
	ColonColon    // ::
	Arrow         // ->
	FatArrow      // =>
	Question      // ?
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	BangEq        // !=
	LtEq          // <=
	GtEq          // >=
	AndAnd        // &&
	OrOr          // ||
	Shl           // <<
	Shr           // >>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	operatorEnd

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Underscore:    "Underscore",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	KwFn:          "KwFn",
	KwLet:         "KwLet",
	KwMut:         "KwMut",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwFor:         "KwFor",
	KwIn:          "KwIn",
	KwReturn:      "KwReturn",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwStruct:      "KwStruct",
	KwEnum:        "KwEnum",
	KwImpl:        "KwImpl",
	KwTrait:       "KwTrait",
	KwType:        "KwType",
	KwPub:         "KwPub",
	KwUse:         "KwUse",
	KwMod:         "KwMod",
	KwWhere:       "KwWhere",
	KwMatch:       "KwMatch",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Caret:         "Caret",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Tilde:         "Tilde",
	Bang:          "Bang",
	Assign:        "Assign",
	Lt:            "Lt",
	Gt:            "Gt",
	At:            "At",
	Dot:           "Dot",
	DotDot:        "DotDot",
	DotDotEq:      "DotDotEq",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Colon:         "Colon",
	ColonColon:    "ColonColon",
	Arrow:         "Arrow",
	FatArrow:      "FatArrow",
	Question:      "Question",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
	ShlAssign:     "ShlAssign",
	ShrAssign:     "ShrAssign",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	LtEq:          "LtEq",
	GtEq:          "GtEq",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Shl:           "Shl",
	Shr:           "Shr",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
}

// String returns the Go-style name used in token dumps.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe renders the kind for diagnostics: "`;`", "identifier", "end of file".
func (k Kind) Describe() string {
	switch {
	case k == Invalid:
		return "invalid token"
	case k == EOF:
		return "end of file"
	case k == Ident:
		return "identifier"
	case k == IntLit:
		return "integer literal"
	case k == FloatLit:
		return "float literal"
	case k == StringLit:
		return "string literal"
	case k == CharLit:
		return "character literal"
	}
	if s := k.Spelling(); s != "" {
		return "`" + s + "`"
	}
	return k.String()
}

// Spelling returns the fixed source text of keywords and operators, or "".
func (k Kind) Spelling() string {
	switch {
	case k == Underscore:
		return "_"
	case k.IsKeyword():
		return keywordSpelling[k]
	case k.IsOperator():
		return operatorSpelling[k]
	default:
		return ""
	}
}

func (k Kind) IsKeyword() bool  { return k > keywordBegin && k < keywordEnd }
func (k Kind) IsLiteral() bool  { return k > literalBegin && k < literalEnd }
func (k Kind) IsOperator() bool { return k > operatorBegin && k < operatorEnd }

// IsValid reports whether k is a real token kind and not a range marker.
func (k Kind) IsValid() bool {
	return k < kindCount && kindNames[k] != ""
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		if k.IsValid() {
			out = append(out, k)
		}
	}
	return out
}
