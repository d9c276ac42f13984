package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nova/internal/diag"
	"nova/internal/source"
)

func virtualFile(t *testing.T, name, content string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.AddVirtual(name, []byte(content))
	require.NoError(t, err)
	return fs, fs.Get(id)
}

func TestPrettyMissingSemicolon(t *testing.T) {
	fs, f := virtualFile(t, "main.nova", "fn main() { let a = 1 let b = 2; }")
	bag := diag.NewBag(0)
	bag.Add(diag.MissingSemicolon(f.ID, source.EmptySpan(21), source.MustSpan(22, 25), "`let`"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true}))

	want := strings.Join([]string{
		"error[SYN2012]: expected `;`, found `let`",
		" --> main.nova:1:22",
		"  |",
		"1 | fn main() { let a = 1 let b = 2; }",
		"  |                      ^ add `;` here",
		"  |                       --- unexpected token",
		"  = fix: insert semicolon (machine-applicable)",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestPrettyFixPreview(t *testing.T) {
	fs, f := virtualFile(t, "main.nova", "let a = 1\nlet b = 2;\n")
	bag := diag.NewBag(0)
	bag.Add(diag.MissingSemicolon(f.ID, source.EmptySpan(9), source.MustSpan(10, 13), "`let`"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true, ShowPreview: true}))
	out := buf.String()
	require.Contains(t, out, "  - let a = 1\n")
	require.Contains(t, out, "  + let a = 1;\n")
}

func TestPrettyGroupsLabelsByLine(t *testing.T) {
	fs, f := virtualFile(t, "a.nova", "fn main() {\n  foo(1, 2\n}\n")
	bag := diag.NewBag(0)
	// `(` на строке 2, ожидаемая `)` на строке 3
	bag.Add(diag.UnclosedDelimiter(diag.SynUnclosedParen, f.ID, source.MustSpan(23, 24), source.MustSpan(17, 18), ")", "`}`"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, " --> a.nova:3:1", lines[1])
	require.Equal(t, "2 |   foo(1, 2", lines[3])
	require.Equal(t, "  |      - unclosed delimiter", lines[4])
	require.Equal(t, "3 | }", lines[5])
	require.Equal(t, "  | ^ expected `)`", lines[6])
}

func TestPrettyWideCharactersAndTabs(t *testing.T) {
	content := "\tlet 日本 = x"
	fs, f := virtualFile(t, "w.nova", content)
	bag := diag.NewBag(0)
	// `x` стоит после таба (4 колонки) и двух широких символов
	off := uint32(strings.Index(content, "x"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, f.ID, source.MustSpan(off, off+1), "boom"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "1 |     let 日本 = x", lines[3])
	// 4 (таб) + "let " 4 + 日本 4 + " = " 3
	require.Equal(t, "  | "+strings.Repeat(" ", 15)+"^", lines[4])
}

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 4, displayWidth("\t", 0, 4))
	require.Equal(t, 2, displayWidth("\t", 2, 4))
	require.Equal(t, 4, displayWidth("日本", 0, 4))
	require.Equal(t, 1, displayWidth("é", 0, 4))
	require.Equal(t, "a   b", expandTabs("a\tb", 4))
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.Add("/home/user/project/src/test.nova", []byte("let x = 1"), 0)
	require.NoError(t, err)
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, id, source.MustSpan(4, 5), "boom"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "--> /home/user/project/src/test.nova:1:5"},
		{PathModeRelative, "--> src/test.nova:1:5"},
		{PathModeBasename, "--> test.nova:1:5"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"}))
		require.Contains(t, buf.String(), tt.want)
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs, f := virtualFile(t, "a.nova", "x")
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, f.ID, source.MustSpan(0, 1), "one"))
	bag.Add(diag.NewError(diag.SynUnexpectedToken, f.ID, source.MustSpan(0, 1), "two"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	require.Contains(t, buf.String(), "1 more diagnostic(s) suppressed")
}

func TestShortMatchesGolden(t *testing.T) {
	fs, f := virtualFile(t, "a.nova", "fn main() { let a = 1 let b = 2; }")
	bag := diag.NewBag(0)
	bag.Add(diag.MissingSemicolon(f.ID, source.EmptySpan(21), source.MustSpan(22, 25), "`let`"))

	var buf bytes.Buffer
	require.NoError(t, Short(&buf, bag, fs, false))
	require.Equal(t, "error SYN2012 a.nova:1:22 expected `;`, found `let`\n", buf.String())
}
