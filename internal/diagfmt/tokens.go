package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"nova/internal/source"
	"nova/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, f *source.File) error {
	for i, tok := range tokens {
		start, end := f.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if text := tok.Text(f); text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, f *source.File) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := f.Resolve(tok.Span)
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Start: tok.Span.Start(),
			End:   tok.Span.End(),
			Line:  start.Line,
			Col:   start.Col,
		}
		if tok.Kind != token.EOF {
			out.Text = tok.Text(f)
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
