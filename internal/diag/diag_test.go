package diag

import (
	"errors"
	"fmt"
	"testing"

	"nova/internal/source"
)

func sp(start, end uint32) source.Span { return source.MustSpan(start, end) }

func TestBagCapAndCounts(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SynUnexpectedToken, 0, sp(0, 1), "a")) {
		t.Fatalf("first add rejected")
	}
	b.Add(NewWarning(LexIdentNotNFC, 0, sp(1, 2), "b"))
	if b.Add(NewError(SynUnexpectedToken, 0, sp(2, 3), "c")) {
		t.Fatalf("add past cap accepted")
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len = %d, Dropped = %d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() || !b.HasWarnings() || b.Count(SevWarning) != 1 {
		t.Fatalf("counts are off")
	}

	unlimited := NewBag(0)
	for i := range 1000 {
		unlimited.Add(New(SevNote, UnknownCode, 0, sp(0, 0), fmt.Sprint(i)))
	}
	if unlimited.Len() != 1000 || unlimited.HasErrors() {
		t.Fatalf("unlimited bag misbehaves")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(LexIdentNotNFC, 1, sp(0, 1), "w"))
	b.Add(NewError(SynUnexpectedToken, 0, sp(5, 6), "late"))
	b.Add(NewError(SynUnexpectedToken, 0, sp(1, 2), "early"))
	b.Add(NewError(SynUnexpectedToken, 0, sp(1, 2), "early"))
	b.Add(NewWarning(LexIdentNotNFC, 0, sp(1, 2), "same span, lower severity"))
	b.Sort()
	b.Dedup()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"early", "same span, lower severity", "late", "w"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	rb := ReportError(r, SynExpectSemicolon, 0, sp(3, 3), "expected `;`").
		WithSecondary(sp(4, 7), "next statement").
		WithHelp("terminate the statement").
		WithFix("insert semicolon", FixEdit{Span: sp(3, 3), NewText: ";"})
	rb.Emit()
	rb.Emit()
	ReportError(r, SynExpectSemicolon, 0, sp(3, 3), "expected `;`").Emit()

	if b.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", b.Len())
	}
	d := b.Items()[0]
	if len(d.Labels) != 2 || d.Labels[1].Style != LabelSecondary {
		t.Fatalf("labels = %+v", d.Labels)
	}
	if len(d.Notes) != 1 || d.Notes[0].Severity != SevHelp {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ";" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
}

func TestWithHelpersDoNotAlias(t *testing.T) {
	base := NewError(SynUnexpectedToken, 0, sp(0, 1), "x")
	a := base.WithSecondary(sp(2, 3), "a")
	b := base.WithSecondary(sp(4, 5), "b")
	if a.Labels[1].Text != "a" || b.Labels[1].Text != "b" || len(base.Labels) != 1 {
		t.Fatalf("label slices alias each other")
	}
}

func TestMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		code Code
		msg  string
	}{
		{"unexpected", UnexpectedToken(0, sp(0, 1), "`;`", "identifier"), SynUnexpectedToken, "expected `;`, found identifier"},
		{"unclosed", UnclosedDelimiter(SynUnclosedParen, 0, sp(5, 5), sp(0, 1), ")", "end of file"), SynUnclosedParen, "expected `)`, found end of file"},
		{"string", UnterminatedString(0, sp(0, 4)), LexUnterminatedString, "unterminated string literal"},
		{"nul", UnknownChar(0, sp(0, 1), 0, true), LexUnknownChar, "unexpected NUL character"},
		{"hash", UnknownChar(0, sp(0, 1), '#', true), LexUnknownChar, "unknown character '#'"},
		{"utf8", UnknownChar(0, sp(0, 1), 0xff, false), LexUnknownChar, "invalid UTF-8 byte 0xFF"},
		{"empty char", BadCharLiteral(0, sp(0, 2), 0), LexBadCharLiteral, "empty character literal"},
		{"long char", BadCharLiteral(0, sp(0, 4), 2), LexBadCharLiteral, "character literal holds 2 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.d.Code != tt.code || tt.d.Message != tt.msg {
				t.Fatalf("got (%s, %q), want (%s, %q)", tt.d.Code.ID(), tt.d.Message, tt.code.ID(), tt.msg)
			}
			if _, ok := tt.d.Primary(); !ok {
				t.Fatalf("diagnostic without a primary label")
			}
		})
	}
}

func TestLimitErrorMatchesSentinel(t *testing.T) {
	var err error = &LimitError{Kind: ErrNestingTooDeep, Code: LexNestingTooDeep, Span: sp(0, 2), Limit: 256, Actual: 257}
	if !errors.Is(err, ErrNestingTooDeep) || errors.Is(err, ErrSourceTooLarge) {
		t.Fatalf("errors.Is mismatch")
	}
	var le *LimitError
	if !errors.As(fmt.Errorf("lex: %w", err), &le) || le.Actual != 257 {
		t.Fatalf("errors.As failed")
	}
	if d := le.Diagnostic(); d.Code != LexNestingTooDeep || d.Severity != SevError {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	if LexUnknownChar.ID() != "LEX1001" || SynUnexpectedToken.ID() != "SYN2001" || IOLoadFileError.ID() != "IO4001" {
		t.Fatalf("unexpected ids")
	}
	if SynExpectSemicolon.String() != "[SYN2012]: Expect semicolon" {
		t.Fatalf("String = %q", SynExpectSemicolon.String())
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.AddVirtual("testdata/sample.nova", []byte("a\nb\n"))
	if err != nil {
		t.Fatal(err)
	}
	diags := []Diagnostic{
		NewWarning(LexIdentNotNFC, id, sp(2, 3), "another"),
		NewError(SynUnexpectedToken, id, sp(0, 1), "first line\nsecond").WithSecondary(sp(2, 3), "note line"),
	}

	expected := "error SYN2001 testdata/sample.nova:1:1 first line second\n" +
		"warning LEX1007 testdata/sample.nova:2:1 another\n" +
		"note SYN2001 testdata/sample.nova:2:1 note line"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
