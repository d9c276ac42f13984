package lexer

import (
	"golang.org/x/text/unicode/norm"

	"nova/internal/diag"
	"nova/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	ascii := true

	lx.bumpRune() // первый символ уже проверен в Next
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _, ok := lx.peekRune()
		if !ok || !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.file.Content[sp.Start():sp.End()]
	if lex[0] >= utf8RuneSelf {
		ascii = false
	}

	if len(lex) == 1 && lex[0] == '_' {
		return token.Token{Kind: token.Underscore, Span: sp}
	}
	if ascii {
		if k, ok := token.LookupKeyword(string(lex)); ok {
			return token.Token{Kind: k, Span: sp}
		}
		return token.Token{Kind: token.Ident, Span: sp}
	}

	if !norm.NFC.IsNormal(lex) {
		lx.report(diag.IdentNotNFC(lx.file.ID, sp, norm.NFC.String(string(lex))))
	}
	return token.Token{Kind: token.Ident, Span: sp}
}
