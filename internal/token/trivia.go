package token

import "nova/internal/source"

// TriviaKind classifies the bytes between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine // ///
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	default:
		return "TriviaKind(?)"
	}
}

// Trivia is whitespace or a comment. The lexer records it on request only;
// tokens never point at their trivia.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
}
