package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"nova/internal/diag"
	"nova/internal/source"
	"nova/internal/token"
)

func TestJSONDiagnostics(t *testing.T) {
	fs, f := virtualFile(t, "main.nova", "fn main() {\n  let a = 1 let b = 2;\n}")
	bag := diag.NewBag(0)
	bag.Add(diag.MissingSemicolon(f.ID, source.EmptySpan(23), source.MustSpan(24, 27), "`let`"))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	require.Equal(t, "SYN2012", d.Code)
	require.Equal(t, "error", d.Severity)

	wantLoc := LocationJSON{File: "main.nova", StartByte: 23, EndByte: 23, StartLine: 2, StartCol: 12, EndLine: 2, EndCol: 12}
	if diff := cmp.Diff(wantLoc, d.Location); diff != "" {
		t.Fatalf("location mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, d.Labels, 2)
	require.True(t, d.Labels[0].Primary)
	require.Equal(t, "unexpected token", d.Labels[1].Text)

	require.Len(t, d.Fixes, 1)
	edit := d.Fixes[0].Edits[0]
	require.Equal(t, ";", edit.NewText)
	require.Equal(t, []string{"  let a = 1 let b = 2;"}, edit.BeforeLines)
	require.Equal(t, []string{"  let a = 1; let b = 2;"}, edit.AfterLines)
}

func TestJSONMaxCountsDropped(t *testing.T) {
	fs, f := virtualFile(t, "a.nova", "abc")
	bag := diag.NewBag(0)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, f.ID, source.MustSpan(i, i+1), "x"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	require.Equal(t, 2, out.Count)
	require.Equal(t, 1, out.Dropped)
	require.Empty(t, out.Diagnostics[0].Labels)
}

func TestFormatTokens(t *testing.T) {
	_, f := virtualFile(t, "t.nova", "let x")
	toks := []token.Token{
		{Kind: token.KwLet, Span: source.MustSpan(0, 3)},
		{Kind: token.Ident, Span: source.MustSpan(4, 5)},
		{Kind: token.EOF, Span: source.EmptySpan(5)},
	}

	var pretty bytes.Buffer
	require.NoError(t, FormatTokensPretty(&pretty, toks, f))
	require.Contains(t, pretty.String(), `"let" at 1:1-1:4`)
	require.Contains(t, pretty.String(), `"x" at 1:5-1:6`)

	var js bytes.Buffer
	require.NoError(t, FormatTokensJSON(&js, toks, f))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	require.Len(t, out, 3)
	require.Equal(t, TokenOutput{Kind: token.Ident.String(), Text: "x", Start: 4, End: 5, Line: 1, Col: 5}, out[1])
	require.Empty(t, out[2].Text)
}
