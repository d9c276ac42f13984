package lexer

import (
	"fmt"

	"nova/internal/diag"
	"nova/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10.
// Точка входит в литерал только если за ней цифра: "1..2" и "1.foo" не числа.
// Неверные формы репортятся, токен покрывает весь литерал и получает Kind Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	problem := ""

	if b1, ok := lx.cursor.PeekAt(1); ok && lx.cursor.Peek() == '0' && isBasePrefix(b1) {
		problem = lx.scanPrefixed(b1)
		goto emit
	}

	lx.eatDecimalDigits()

	// дробная часть
	if b1, ok := lx.cursor.PeekAt(1); ok && lx.cursor.Peek() == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		lx.eatDecimalDigits()
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			problem = "expected digit after exponent"
		}
		lx.eatDecimalDigits()
	}

	// хвост вида 123abc
	if suffix := lx.eatIdentTail(); suffix != "" && problem == "" {
		problem = fmt.Sprintf("invalid suffix %q", suffix)
	}

emit:
	sp := lx.cursor.SpanFrom(start)
	if problem != "" {
		lx.report(diag.BadNumber(lx.file.ID, sp, problem))
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	return token.Token{Kind: kind, Span: sp}
}

func isBasePrefix(b byte) bool {
	switch b {
	case 'x', 'X', 'b', 'B', 'o', 'O':
		return true
	}
	return false
}

// scanPrefixed eats 0x/0b/0o and every identifier byte after it, returning the
// first problem found.
func (lx *Lexer) scanPrefixed(prefix byte) string {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // prefix

	var valid func(byte) bool
	var name string
	switch prefix {
	case 'x', 'X':
		valid, name = isHex, "hexadecimal"
	case 'b', 'B':
		valid, name = func(b byte) bool { return b == '0' || b == '1' }, "binary"
	default:
		valid, name = func(b byte) bool { return b >= '0' && b <= '7' }, "octal"
	}

	problem := ""
	digits := 0
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		b := lx.cursor.Bump()
		if b == '_' {
			continue
		}
		if !valid(b) {
			if problem == "" {
				problem = fmt.Sprintf("invalid digit %q in %s literal", b, name)
			}
			continue
		}
		digits++
	}
	if digits == 0 && problem == "" {
		problem = fmt.Sprintf("missing digits after %s prefix", name)
	}
	return problem
}

func (lx *Lexer) eatDecimalDigits() {
	for b := lx.cursor.Peek(); !lx.cursor.EOF() && (isDec(b) || b == '_'); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatIdentTail() string {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return string(lx.file.Content[start:lx.cursor.Off])
}
