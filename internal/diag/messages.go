package diag

import (
	"fmt"
	"unicode"

	"nova/internal/source"
)

// Helpers below fix the wording of diagnostics shared by the lexer and the parser.

// UnexpectedToken: "expected X, found Y".
func UnexpectedToken(file source.FileID, sp source.Span, expected, found string) Diagnostic {
	return ExpectedConstruct(SynUnexpectedToken, file, sp, expected, found)
}

// ExpectedConstruct is UnexpectedToken with a more specific code.
func ExpectedConstruct(code Code, file source.FileID, sp source.Span, expected, found string) Diagnostic {
	return NewError(code, file, sp, fmt.Sprintf("expected %s, found %s", expected, found)).
		WithLabelText("expected " + expected)
}

// UnclosedDelimiter points at the place the closer was expected and at the opener.
func UnclosedDelimiter(code Code, file source.FileID, at, opener source.Span, closer, found string) Diagnostic {
	return NewError(code, file, at, fmt.Sprintf("expected `%s`, found %s", closer, found)).
		WithLabelText("expected `" + closer + "`").
		WithSecondary(opener, "unclosed delimiter")
}

// MissingSemicolon carries a fix that inserts ';' at the end of the previous token.
func MissingSemicolon(file source.FileID, insertAt, found source.Span, foundDesc string) Diagnostic {
	return NewError(SynExpectSemicolon, file, insertAt, "expected `;`, found "+foundDesc).
		WithLabelText("add `;` here").
		WithSecondary(found, "unexpected token").
		WithFix("insert semicolon", FixEdit{Span: insertAt, NewText: ";"})
}

func NonAssociative(file source.FileID, sp source.Span, op string) Diagnostic {
	return NewError(SynNonAssociative, file, sp, fmt.Sprintf("`%s` operators cannot be chained", op)).
		WithHelp("use parentheses to group the operands")
}

func UnknownChar(file source.FileID, sp source.Span, r rune, valid bool) Diagnostic {
	var msg string
	switch {
	case !valid:
		msg = fmt.Sprintf("invalid UTF-8 byte 0x%02X", r)
	case r == 0:
		msg = "unexpected NUL character"
	case unicode.IsPrint(r):
		msg = fmt.Sprintf("unknown character %q", r)
	default:
		msg = fmt.Sprintf("unknown character U+%04X", r)
	}
	return NewError(LexUnknownChar, file, sp, msg)
}

func UnterminatedString(file source.FileID, sp source.Span) Diagnostic {
	return NewError(LexUnterminatedString, file, sp, "unterminated string literal").
		WithLabelText("missing closing `\"`")
}

func UnterminatedChar(file source.FileID, sp source.Span) Diagnostic {
	return NewError(LexUnterminatedChar, file, sp, "unterminated character literal").
		WithLabelText("missing closing `'`")
}

func UnterminatedBlockComment(file source.FileID, opener source.Span, depth int) Diagnostic {
	d := NewError(LexUnterminatedBlockComment, file, opener, "unterminated block comment").
		WithLabelText("comment starts here")
	if depth > 1 {
		d = d.WithNote(fmt.Sprintf("%d nested comments are still open at end of file", depth))
	}
	return d
}

func BadNumber(file source.FileID, sp source.Span, reason string) Diagnostic {
	return NewError(LexBadNumber, file, sp, "invalid numeric literal: "+reason)
}

// BadCharLiteral reports a char literal holding count characters instead of one.
func BadCharLiteral(file source.FileID, sp source.Span, count int) Diagnostic {
	d := NewError(LexBadCharLiteral, file, sp, "empty character literal")
	if count > 1 {
		d = NewError(LexBadCharLiteral, file, sp, fmt.Sprintf("character literal holds %d characters", count)).
			WithHelp("use a string literal for more than one character")
	}
	return d
}

func IdentNotNFC(file source.FileID, sp source.Span, normalized string) Diagnostic {
	return NewWarning(LexIdentNotNFC, file, sp, "identifier is not in Unicode normalization form C").
		WithHelp(fmt.Sprintf("write it as %q", normalized))
}
