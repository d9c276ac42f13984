package lexer

import (
	"unicode/utf8"

	"nova/internal/diag"
	"nova/internal/token"
)

// scanOperatorOrPunct берёт самое длинное совпадение из таблицы token.MatchOperator.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	kind, n := token.MatchOperator(lx.cursor.Rest())
	if kind == token.Invalid {
		return lx.scanUnknown()
	}
	start := lx.cursor.Mark()
	lx.cursor.BumpN(n)
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
}

// scanUnknown reports one character (or one broken byte) and steps over it.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, size, ok := lx.peekRune()
	if !ok {
		r, size = rune(lx.cursor.Peek()), 1
	}
	if size == 0 {
		size = 1
	}
	lx.cursor.BumpN(size)
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.UnknownChar(lx.file.ID, sp, r, ok || r < utf8.RuneSelf))
	return token.Token{Kind: token.Invalid, Span: sp}
}
