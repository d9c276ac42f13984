package fix

import (
	"errors"
	"testing"

	"nova/internal/diag"
	"nova/internal/source"
)

func virtualFile(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("test.nova", []byte(content))
	if err != nil {
		t.Fatal(err)
	}
	return fs, id
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	span := source.EmptySpan(0)
	d := diag.NewError(diag.SynExpectSemicolon, 1, span, "missing semicolon").
		WithFixSuggestion(InsertText("insert semicolon", span, ";", WithID("fix-duplicate"))).
		WithFixSuggestion(InsertText("insert semicolon again", span, ";", WithID("fix-duplicate")))

	candidates, skips := gatherCandidates([]diag.Diagnostic{d})
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 || skips[0].Reason != "duplicate fix id" {
		t.Fatalf("unexpected skips %+v", skips)
	}
}

func TestGatherCandidatesSynthesizesIDs(t *testing.T) {
	d := diag.MissingSemicolon(3, source.EmptySpan(9), source.MustSpan(10, 13), "`let`")
	candidates, _ := gatherCandidates([]diag.Diagnostic{d})
	if len(candidates) != 1 || candidates[0].fix.ID != "SYN2012-3-9-0" {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestApplyInsertsMissingSemicolons(t *testing.T) {
	fs, id := virtualFile(t, "let a = 1\nlet b = 2\n")
	diags := []diag.Diagnostic{
		diag.MissingSemicolon(id, source.EmptySpan(19), source.EmptySpan(20), "end of file"),
		diag.MissingSemicolon(id, source.EmptySpan(9), source.MustSpan(10, 13), "`let`"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := string(res.FileChanges[0].Content); got != "let a = 1;\nlet b = 2;\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyOnceTakesFirstBySpan(t *testing.T) {
	fs, id := virtualFile(t, "a b")
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynInfo, id, source.MustSpan(2, 3), "b").
			WithFixSuggestion(ReplaceSpan("rename b", source.MustSpan(2, 3), "y", "b")),
		diag.NewError(diag.SynInfo, id, source.MustSpan(0, 1), "a").
			WithFixSuggestion(ReplaceSpan("rename a", source.MustSpan(0, 1), "x", "a")),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.FileChanges[0].Content); got != "x b" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplySkipsConflictsAndStaleGuards(t *testing.T) {
	fs, id := virtualFile(t, "abcdef")
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynInfo, id, source.MustSpan(0, 3), "first").
			WithFixSuggestion(DeleteSpan("drop abc", source.MustSpan(0, 3), "abc")),
		diag.NewError(diag.SynInfo, id, source.MustSpan(2, 4), "overlapping").
			WithFixSuggestion(ReplaceSpan("replace cd", source.MustSpan(2, 4), "", "cd")),
		diag.NewError(diag.SynInfo, id, source.MustSpan(4, 6), "stale").
			WithFixSuggestion(ReplaceSpan("replace ef", source.MustSpan(4, 6), "", "zz")),
		diag.NewError(diag.SynInfo, id, source.MustSpan(4, 6), "maybe").
			WithFixSuggestion(WrapWith("wrap", source.MustSpan(4, 6), "(", ")")),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 3 {
		t.Fatalf("applied=%+v skipped=%+v", res.Applied, res.Skipped)
	}
	if got := string(res.FileChanges[0].Content); got != "def" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyByID(t *testing.T) {
	fs, id := virtualFile(t, "x")
	d := diag.NewError(diag.SynInfo, id, source.MustSpan(0, 1), "x").
		WithFixSuggestion(WrapWith("parenthesize", source.MustSpan(0, 1), "(", ")", WithID("wrap-x")))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeID, TargetID: "wrap-x"})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.FileChanges[0].Content); got != "(x)" {
		t.Fatalf("content = %q", got)
	}

	_, err = Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
}

func TestSameOffsetReplacementBeforeInsertion(t *testing.T) {
	out := rewrite([]byte("abc"), []pendingEdit{
		{edit: diag.FixEdit{Span: source.EmptySpan(1), NewText: "<"}, order: 0},
		{edit: diag.FixEdit{Span: source.MustSpan(1, 2), NewText: "B"}, order: 1},
		{edit: diag.FixEdit{Span: source.EmptySpan(1), NewText: ">"}, order: 2},
	})
	if string(out) != "a<>Bc" {
		t.Fatalf("got %q", out)
	}
}
