package diag

import "nova/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), NopReporter, MultiReporter (fan-out), DedupReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// MultiReporter forwards each diagnostic to every reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, file, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, file, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, file source.FileID, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, file, primary, msg)
}

// Wrap starts a builder from an already built diagnostic.
func Wrap(r Reporter, d Diagnostic) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: d}
}

func (b *ReportBuilder) WithLabelText(text string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabelText(text)
	return b
}

func (b *ReportBuilder) WithSecondary(sp source.Span, text string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithSecondary(sp, text)
	return b
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(msg)
	return b
}

func (b *ReportBuilder) WithHelp(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithHelp(msg)
	return b
}

// WithFix appends ready-to-use fix with default metadata.
func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithFix(title, edits...)
	return b
}

func (b *ReportBuilder) WithFixSuggestion(f Fix) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithFixSuggestion(f)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
