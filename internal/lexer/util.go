package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

// ===== Работа с рунами поверх Cursor =====

// peekRune декодирует руну под курсором; ok=false для EOF и битого UTF-8.
func (lx *Lexer) peekRune() (r rune, size int, ok bool) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0, false
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1, true
	}
	r, size = utf8.DecodeRune(lx.cursor.Rest())
	return r, size, !(r == utf8.RuneError && size == 1)
}

// bumpRune съедает одну руну, битый байт считается за одну.
func (lx *Lexer) bumpRune() {
	_, sz, _ := lx.peekRune()
	lx.cursor.BumpN(sz)
}

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

// isIdentStartRune approximates Unicode ID_Start.
func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentStartByte(byte(r))
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIdentContinueRune approximates Unicode ID_Continue.
func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	if isIdentStartRune(r) {
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
