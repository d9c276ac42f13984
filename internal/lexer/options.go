package lexer

import (
	"nova/internal/diag"
	"nova/internal/source"
)

const (
	// DefaultMaxNestingDepth bounds nested block comments.
	DefaultMaxNestingDepth = 256
	// DefaultMaxSourceSize is 1 GiB.
	DefaultMaxSourceSize uint64 = 1 << 30
)

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки игнорируем, но продолжаем лексить

	// MaxNestingDepth limits /* */ nesting; 0 means DefaultMaxNestingDepth.
	MaxNestingDepth int
	// MaxSourceSize limits the input in bytes; 0 means DefaultMaxSourceSize.
	MaxSourceSize uint64
	// KeepTrivia records whitespace and comments for Lexer.Trivia.
	KeepTrivia bool
}

func (o Options) maxNesting() int {
	if o.MaxNestingDepth <= 0 {
		return DefaultMaxNestingDepth
	}
	return o.MaxNestingDepth
}

func (o Options) maxSize() uint64 {
	if o.MaxSourceSize == 0 {
		return DefaultMaxSourceSize
	}
	return o.MaxSourceSize
}

func (lx *Lexer) report(d diag.Diagnostic) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d)
	}
}

func (lx *Lexer) fail(code diag.Code, kind error, sp source.Span, limit, actual uint64) {
	lx.err = &diag.LimitError{
		Kind:   kind,
		Code:   code,
		File:   lx.file.ID,
		Span:   sp,
		Limit:  limit,
		Actual: actual,
	}
}
