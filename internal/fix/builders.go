package fix

import (
	"fmt"

	"nova/internal/diag"
	"nova/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.Applicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func single(title string, edit diag.FixEdit, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Applicability: diag.FixMachineApplicable,
		Edits:         []diag.FixEdit{edit},
	}
	return applyOptions(f, opts)
}

// InsertText creates fix that inserts text at the start of at.
func InsertText(title string, at source.Span, text string, opts ...Option) diag.Fix {
	return single(title, diag.FixEdit{Span: source.EmptySpan(at.Start()), NewText: text}, opts)
}

// DeleteSpan removes text covered by span; expect guards against stale diagnostics.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return single(title, diag.FixEdit{Span: span, OldText: expect}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return single(title, diag.FixEdit{Span: span, NewText: newText, OldText: expect}, opts)
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string, opts ...Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Applicability: diag.FixMaybeIncorrect,
		Edits: []diag.FixEdit{
			{Span: source.EmptySpan(span.Start()), NewText: prefix},
			{Span: source.EmptySpan(span.End()), NewText: suffix},
		},
	}
	return applyOptions(f, opts)
}

// MakeID builds the identifier used when a fix has none: code, file, offset and index.
func MakeID(code diag.Code, file source.FileID, at source.Span, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", code.ID(), file, at.Start(), idx)
}
