package diag

import (
	"errors"
	"fmt"

	"nova/internal/source"
)

// Fatal conditions. They bound worst-case work on hostile input and are the
// only errors that abort a pass.
var (
	ErrNestingTooDeep = errors.New("nesting too deep")
	ErrSourceTooLarge = errors.New("source too large")
)

// LimitError reports a violated resource bound. errors.Is matches it against
// ErrNestingTooDeep or ErrSourceTooLarge.
type LimitError struct {
	Kind   error
	Code   Code
	File   source.FileID
	Span   source.Span
	Limit  uint64
	Actual uint64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v: %d exceeds limit %d", e.Kind, e.Actual, e.Limit)
}

func (e *LimitError) Unwrap() error { return e.Kind }

// Diagnostic renders the failure like any other error.
func (e *LimitError) Diagnostic() Diagnostic {
	return NewError(e.Code, e.File, e.Span, e.Error()).
		WithNote("this limit can be raised in nova.toml under [limits]")
}
