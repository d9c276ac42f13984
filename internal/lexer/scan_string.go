package lexer

import (
	"bytes"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"nova/internal/diag"
	"nova/internal/token"
)

// scanString: "..." где '\' съедает ровно один следующий символ без проверки.
// Валидность escape-последовательностей проверяется позже, при материализации значения.
// Незакрытая строка (перевод строки или EOF) даёт диагностику и StringLit до места обрыва.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start)}
		case '\n':
			goto unterminated
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}

unterminated:
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.UnterminatedString(lx.file.ID, sp))
	return token.Token{Kind: token.StringLit, Span: sp}
}

// scanChar: '...' с теми же escape-правилами; внутри должен быть ровно один
// графемный кластер или одна escape-последовательность.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	bodyStart := lx.cursor.Off
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.UnterminatedChar(lx.file.ID, sp))
			return token.Token{Kind: token.CharLit, Span: sp}
		}
		b := lx.cursor.Peek()
		if b == '\'' {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				continue
			}
		}
		lx.bumpRune()
	}
	body := lx.file.Content[bodyStart:lx.cursor.Off]
	lx.cursor.Bump() // closing '\''

	sp := lx.cursor.SpanFrom(start)
	if n := countChars(body); n != 1 {
		lx.report(diag.BadCharLiteral(lx.file.ID, sp, n))
	}
	return token.Token{Kind: token.CharLit, Span: sp}
}

// countChars counts escapes and grapheme clusters in a char literal body.
// \xNN and \u{...} count as one escape.
func countChars(body []byte) int {
	n := 0
	state := -1
	for len(body) > 0 {
		if body[0] == '\\' {
			n++
			body = skipEscape(body[1:])
			state = -1
			continue
		}
		var cluster []byte
		cluster, body, _, state = uniseg.FirstGraphemeCluster(body, state)
		if len(cluster) > 0 {
			n++
		}
	}
	return n
}

// skipEscape drops the escape body that follows a backslash.
func skipEscape(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	switch b[0] {
	case 'x':
		b = b[1:]
		for i := 0; i < 2 && len(b) > 0 && isHex(b[0]); i++ {
			b = b[1:]
		}
		return b
	case 'u':
		if len(b) > 1 && b[1] == '{' {
			if end := bytes.IndexByte(b, '}'); end >= 0 {
				return b[end+1:]
			}
		}
		return b[1:]
	}
	_, size := utf8.DecodeRune(b)
	return b[size:]
}
