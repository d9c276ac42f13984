package diag

import (
	"fmt"
	"sort"
	"strings"

	"nova/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files and the CLI short format:
//
//	error SYN2001 path:line:col message
//
// With includeNotes, secondary labels follow as "note" lines.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	f := fs.Get(d.File)
	if f == nil {
		return out
	}
	for _, l := range d.Labels {
		if l.Style == LabelSecondary && !includeNotes {
			continue
		}
		pos, err := f.OffsetToPosition(l.Span.Start())
		if err != nil {
			continue
		}
		g := goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     f.Path,
			Line:     pos.Line,
			Column:   pos.Col,
			Message:  sanitizeMessage(d.Message),
		}
		if l.Style == LabelSecondary {
			g.Severity = SevNote.String()
			g.Message = sanitizeMessage(l.Text)
		}
		out = append(out, g)
	}
	return out
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
