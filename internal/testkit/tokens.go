package testkit

import (
	"fmt"
	"slices"

	"nova/internal/source"
	"nova/internal/token"
)

// CheckTokenStream verifies the lexer contract on one stream:
//  1. every span lies within the file
//  2. tokens are ordered and do not overlap
//  3. the stream ends with exactly one zero-width EOF at the end of the file
//  4. when trivia is given, tokens and trivia tile [0, len) with no gap and no overlap
func CheckTokenStream(f *source.File, toks []token.Token, trivia []token.Trivia) error {
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	size := f.Len()
	var prevEnd uint32
	for i, tok := range toks {
		if tok.Span.End() > size {
			return fmt.Errorf("token %d %s ends past the file (%d bytes)", i, tok, size)
		}
		if tok.Span.Start() < prevEnd {
			return fmt.Errorf("token %d %s overlaps the previous token ending at %d", i, tok, prevEnd)
		}
		prevEnd = tok.Span.End()
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at position %d of %d", i, len(toks))
		}
	}
	last := toks[len(toks)-1]
	if last.Kind != token.EOF || !last.Span.IsEmpty() || last.Span.Start() != size {
		return fmt.Errorf("stream must end with zero-width EOF at %d, got %s", size, last)
	}
	if trivia == nil {
		return nil
	}

	spans := make([]source.Span, 0, len(toks)+len(trivia))
	for _, tok := range toks[:len(toks)-1] {
		spans = append(spans, tok.Span)
	}
	for _, tr := range trivia {
		spans = append(spans, tr.Span)
	}
	slices.SortFunc(spans, func(a, b source.Span) int {
		return int(a.Start()) - int(b.Start())
	})
	var at uint32
	for _, sp := range spans {
		if sp.IsEmpty() {
			return fmt.Errorf("empty span %s in stream", sp)
		}
		if sp.Start() != at {
			return fmt.Errorf("bytes %d..%d are not covered exactly once (next span %s)", at, sp.Start(), sp)
		}
		at = sp.End()
	}
	if at != size {
		return fmt.Errorf("coverage stops at %d of %d", at, size)
	}
	return nil
}
