package diag

import (
	"nova/internal/source"
)

// LabelStyle distinguishes the cause of a diagnostic from related context.
type LabelStyle uint8

const (
	LabelPrimary LabelStyle = iota
	LabelSecondary
)

// Label points at a span of the diagnostic's file.
type Label struct {
	Span  source.Span
	Style LabelStyle
	Text  string
}

// Note is free-form text attached below the source snippet.
// Severity is SevNote or SevHelp.
type Note struct {
	Severity Severity
	Msg      string
}

// Applicability says whether a fix may be applied without review.
type Applicability uint8

const (
	FixMachineApplicable Applicability = iota
	FixMaybeIncorrect
)

func (a Applicability) String() string {
	switch a {
	case FixMachineApplicable:
		return "machine-applicable"
	case FixMaybeIncorrect:
		return "maybe-incorrect"
	default:
		return "unknown"
	}
}

// FixEdit replaces Span in the diagnostic's file with NewText.
// Непустой OldText служит охранником: правка применяется, только если текст совпал.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	ID            string // стабильный идентификатор, может быть пустым
	Title         string
	Applicability Applicability
	Edits         []FixEdit
}

// Diagnostic is data, not control flow: reporting one never stops a phase.
// Labels[0] is primary for diagnostics built with New.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     source.FileID
	Labels   []Label
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		File:     file,
		Labels:   []Label{{Span: primary, Style: LabelPrimary}},
	}
}

func NewError(code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, file, primary, msg)
}

func NewWarning(code Code, file source.FileID, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, file, primary, msg)
}

// Primary returns the first primary label.
func (d Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Style == LabelPrimary {
			return l, true
		}
	}
	return Label{}, false
}

// PrimarySpan is the primary label's span, or an empty span at 0.
func (d Diagnostic) PrimarySpan() source.Span {
	l, _ := d.Primary()
	return l.Span
}

// WithLabelText sets the text under the primary label.
func (d Diagnostic) WithLabelText(text string) Diagnostic {
	labels := append([]Label(nil), d.Labels...)
	for i := range labels {
		if labels[i].Style == LabelPrimary {
			labels[i].Text = text
			break
		}
	}
	d.Labels = labels
	return d
}

func (d Diagnostic) WithSecondary(sp source.Span, text string) Diagnostic {
	d.Labels = append(append([]Label(nil), d.Labels...), Label{Span: sp, Style: LabelSecondary, Text: text})
	return d
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Severity: SevNote, Msg: msg})
	return d
}

func (d Diagnostic) WithHelp(msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Severity: SevHelp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	return d.WithFixSuggestion(Fix{Title: title, Edits: edits})
}

// WithFixSuggestion attaches a fix built elsewhere (see internal/fix builders).
func (d Diagnostic) WithFixSuggestion(f Fix) Diagnostic {
	d.Fixes = append(append([]Fix(nil), d.Fixes...), f)
	return d
}
