package source

import (
	"errors"
	"testing"
)

func mustFile(t *testing.T, content string) *File {
	t.Helper()
	f, err := NewFile("test.nova", []byte(content))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f
}

func TestLineStarts(t *testing.T) {
	f := mustFile(t, "ab\ncd\r\n\nx")
	want := []uint32{0, 3, 7, 8}
	if len(f.LineStarts) != len(want) {
		t.Fatalf("LineStarts = %v, want %v", f.LineStarts, want)
	}
	for i := range want {
		if f.LineStarts[i] != want[i] {
			t.Fatalf("LineStarts = %v, want %v", f.LineStarts, want)
		}
	}
	if got := mustFile(t, "").LineStarts; len(got) != 1 || got[0] != 0 {
		t.Fatalf("empty file LineStarts = %v", got)
	}
}

func TestOffsetToPosition(t *testing.T) {
	f := mustFile(t, "let x\n  y = 1;\n")
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{4, LineCol{1, 5}},
		{5, LineCol{1, 6}}, // '\n'
		{6, LineCol{2, 1}},
		{8, LineCol{2, 3}},
		{15, LineCol{3, 1}}, // EOF
	}
	for _, tt := range tests {
		got, err := f.OffsetToPosition(tt.off)
		if err != nil {
			t.Fatalf("OffsetToPosition(%d): %v", tt.off, err)
		}
		if got != tt.want {
			t.Errorf("OffsetToPosition(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if _, err := f.OffsetToPosition(16); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for _, src := range []string{"", "a", "a\nb", "fn main() {\r\n\tlet é = 1;\r\n}\n", "\n\n\n"} {
		f := mustFile(t, src)
		for off := uint32(0); off <= f.Len(); off++ {
			pos, err := f.OffsetToPosition(off)
			if err != nil {
				t.Fatalf("%q: OffsetToPosition(%d): %v", src, off, err)
			}
			back, err := f.PositionToOffset(pos)
			if err != nil {
				t.Fatalf("%q: PositionToOffset(%+v): %v", src, pos, err)
			}
			if back != off {
				t.Fatalf("%q: round trip %d -> %+v -> %d", src, off, pos, back)
			}
		}
	}
}

func TestPositionToOffsetRejectsInvalid(t *testing.T) {
	f := mustFile(t, "abc\nde")
	for _, pos := range []LineCol{{0, 1}, {1, 0}, {3, 1}, {1, 5}, {2, 4}} {
		if _, err := f.PositionToOffset(pos); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("PositionToOffset(%+v) = %v, want ErrPositionOutOfRange", pos, err)
		}
	}
}

func TestLine(t *testing.T) {
	f := mustFile(t, "first\r\nsecond\n\nlast")
	tests := []struct {
		n    uint32
		want string
		ok   bool
	}{
		{1, "first", true},
		{2, "second", true},
		{3, "", true},
		{4, "last", true},
		{0, "", false},
		{5, "", false},
	}
	for _, tt := range tests {
		got, ok := f.Line(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Line(%d) = (%q, %v), want (%q, %v)", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSnippet(t *testing.T) {
	f := mustFile(t, "let x = 42;")
	if s, ok := f.Snippet(MustSpan(8, 10)); !ok || s != "42" {
		t.Fatalf("Snippet = (%q, %v)", s, ok)
	}
	if _, ok := f.Snippet(MustSpan(8, 12)); ok {
		t.Fatalf("out of bounds snippet must fail")
	}
}
