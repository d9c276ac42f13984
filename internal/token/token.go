package token

import (
	"fmt"

	"nova/internal/source"
)

// Token is a lexeme: a kind and the span it covers. It never carries its text;
// Text slices the file on demand, so every Token has the same small size.
type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the source slice under the token.
func (t Token) Text(f *source.File) string {
	return f.Text(t.Span)
}

// IsLiteral reports whether the token is a numeric, character or string literal.
// true and false are keywords.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

func (t Token) String() string {
	return fmt.Sprintf("%s@%s", t.Kind, t.Span)
}
