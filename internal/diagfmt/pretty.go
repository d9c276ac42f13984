package diagfmt

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"nova/internal/diag"
	"nova/internal/source"
)

type palette struct {
	err, warn, note, help *color.Color
	primary, secondary    *color.Color
	gutter, bold          *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:       mk(color.FgRed, color.Bold),
		warn:      mk(color.FgYellow, color.Bold),
		note:      mk(color.FgCyan, color.Bold),
		help:      mk(color.FgGreen, color.Bold),
		primary:   mk(color.FgRed, color.Bold),
		secondary: mk(color.FgBlue, color.Bold),
		gutter:    mk(color.FgBlue, color.Bold),
		bold:      mk(color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	case diag.SevHelp:
		return p.help
	default:
		return p.note
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее):
//
//	error[SYN2012]: expected `;`, found `let`
//	  --> main.nova:1:22
//	   |
//	 1 | fn main() { let a = 1 let b = 2; }
//	   |                      ^ insert `;` here
//	   = help: ...
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	r := prettyRenderer{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			r.printf("\n")
		}
		r.diagnostic(d)
	}
	if n := bag.Dropped(); n > 0 {
		r.printf("\n%s %d more diagnostic(s) suppressed by the limit\n", r.pal.note.Sprint("note:"), n)
	}
	return r.err
}

type prettyRenderer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
	err  error
}

func (r *prettyRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

type lineLabel struct {
	line  uint32
	start int // колонка отображения
	width int
	label diag.Label
}

func (r *prettyRenderer) diagnostic(d diag.Diagnostic) {
	sev := r.pal.severity(d.Severity)
	r.printf("%s%s\n", sev.Sprintf("%s[%s]", d.Severity, d.Code.ID()), r.pal.bold.Sprint(": "+d.Message))

	f := r.fs.Get(d.File)
	if f == nil {
		return
	}
	primary := d.PrimarySpan()
	pos, _ := f.OffsetToPosition(primary.Start())
	path := displayPath(f, r.opts.PathMode, r.opts.BaseDir)

	labels := r.collectLabels(f, d)
	gutterWidth := 1
	if len(labels) > 0 {
		gutterWidth = len(strconv.FormatUint(uint64(labels[len(labels)-1].line), 10))
	}
	pad := strings.Repeat(" ", gutterWidth)
	bar := r.pal.gutter.Sprint("|")

	r.printf("%s%s %s:%d:%d\n", pad, r.pal.gutter.Sprint("-->"), path, pos.Line, pos.Col)
	if len(labels) > 0 {
		r.printf("%s %s\n", pad, bar)
	}

	for i := 0; i < len(labels); {
		line := labels[i].line
		text, _ := f.Line(line)
		r.printf("%s %s %s\n", r.pal.gutter.Sprintf("%*d", gutterWidth, line), bar, expandTabs(text, r.opts.TabWidth))
		for ; i < len(labels) && labels[i].line == line; i++ {
			ll := labels[i]
			mark, c := "^", r.pal.primary
			if ll.label.Style == diag.LabelSecondary {
				mark, c = "-", r.pal.secondary
			}
			under := c.Sprint(strings.Repeat(mark, max(ll.width, 1)))
			if ll.label.Text != "" {
				under += " " + c.Sprint(ll.label.Text)
			}
			r.printf("%s %s %s%s\n", pad, bar, strings.Repeat(" ", ll.start), under)
		}
	}

	if r.opts.ShowNotes {
		for _, n := range d.Notes {
			r.printf("%s %s %s %s\n", pad, r.pal.gutter.Sprint("="), r.pal.severity(n.Severity).Sprintf("%s:", n.Severity), n.Msg)
		}
	}
	if r.opts.ShowFixes {
		for _, fix := range d.Fixes {
			r.printf("%s %s %s %s (%s)\n", pad, r.pal.gutter.Sprint("="), r.pal.help.Sprint("fix:"), fix.Title, fix.Applicability)
			if !r.opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				pv, err := buildFixEditPreview(f, edit)
				if err != nil {
					continue
				}
				for _, l := range pv.before {
					r.printf("%s %s %s\n", pad, r.pal.err.Sprint("-"), expandTabs(l, r.opts.TabWidth))
				}
				for _, l := range pv.after {
					r.printf("%s %s %s\n", pad, r.pal.help.Sprint("+"), expandTabs(l, r.opts.TabWidth))
				}
			}
		}
	}
}

// collectLabels: метки по возрастанию строки; многострочный span
// подчёркивается до конца первой строки.
func (r *prettyRenderer) collectLabels(f *source.File, d diag.Diagnostic) []lineLabel {
	out := make([]lineLabel, 0, len(d.Labels))
	for _, l := range d.Labels {
		if l.Span.End() > f.Len() {
			continue
		}
		start, end := f.Resolve(l.Span)
		text, ok := f.Line(start.Line)
		if !ok {
			continue
		}
		startCol := min(int(start.Col-1), len(text))
		endCol := len(text)
		if end.Line == start.Line {
			endCol = min(int(end.Col-1), len(text))
		}
		prefix := displayWidth(text[:startCol], 0, r.opts.TabWidth)
		out = append(out, lineLabel{
			line:  start.Line,
			start: prefix,
			width: displayWidth(text[startCol:endCol], prefix, r.opts.TabWidth),
			label: l,
		})
	}
	slices.SortStableFunc(out, func(a, b lineLabel) int {
		return int(a.line) - int(b.line)
	})
	return out
}

func displayPath(f *source.File, mode PathMode, base string) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	return formatPath(f.Path, mode, base)
}

// Short пишет по строке на диагностику, тот же формат, что и golden-файлы.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
