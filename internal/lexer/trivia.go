package lexer

import (
	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

// skipTrivia пропускает пробелы и комментарии перед значимым токеном.
//   - ' ', '\t', '\r', '\f', '\v' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment, ///... -> TriviaDocLine
//   - /* ... */ -> TriviaBlockComment, вложенность считается явным счётчиком
//
// Превышение глубины вложенности фатально: lx.err выставляется и сканирование прекращается.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()
		next, _ := lx.cursor.PeekAt(1)

		switch {
		case isSpace(b):
			for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaSpace, lx.cursor.SpanFrom(start))

		case b == '\n':
			for lx.cursor.Peek() == '\n' && !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaNewline, lx.cursor.SpanFrom(start))

		case b == '/' && next == '/':
			kind := token.TriviaLineComment
			if third, ok := lx.cursor.PeekAt(2); ok && third == '/' {
				kind = token.TriviaDocLine
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.keep(kind, lx.cursor.SpanFrom(start))

		case b == '/' && next == '*':
			if !lx.skipBlockComment() {
				return
			}

		default:
			return
		}
	}
}

// skipBlockComment returns false when the nesting limit was exceeded.
func (lx *Lexer) skipBlockComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	opener := lx.cursor.SpanFrom(start)
	maxDepth := lx.opts.maxNesting()

	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.report(diag.UnterminatedBlockComment(lx.file.ID, opener, depth))
			break
		}
		b := lx.cursor.Bump()
		next := lx.cursor.Peek()
		switch {
		case b == '/' && next == '*':
			lx.cursor.Bump()
			depth++
			if depth > maxDepth {
				at := lx.cursor.SpanFrom(Mark(lx.cursor.Off - 2))
				lx.fail(diag.LexNestingTooDeep, diag.ErrNestingTooDeep, at, uint64(maxDepth), uint64(depth))
				return false
			}
		case b == '*' && next == '/':
			lx.cursor.Bump()
			depth--
		}
	}
	lx.keep(token.TriviaBlockComment, lx.cursor.SpanFrom(start))
	return true
}

func (lx *Lexer) keep(kind token.TriviaKind, sp source.Span) {
	if lx.opts.KeepTrivia {
		lx.trivia = append(lx.trivia, token.Trivia{Kind: kind, Span: sp})
	}
}
