package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.nova")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn main() {\r\n}\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn main() {\n}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
}

func TestFileSetLookupAndPaths(t *testing.T) {
	fs := NewFileSet()
	for _, name := range []string{"b.nova", "a.nova", "b.nova"} {
		if _, err := fs.AddVirtual(name, []byte(name)); err != nil {
			t.Fatalf("AddVirtual: %v", err)
		}
	}
	if fs.Len() != 3 {
		t.Fatalf("Len = %d", fs.Len())
	}
	f, ok := fs.Lookup("b.nova")
	if !ok || f.ID != 2 {
		t.Fatalf("Lookup returned %v, %v; want latest id 2", f, ok)
	}
	paths := fs.Paths()
	if len(paths) != 2 || paths[0] != "a.nova" || paths[1] != "b.nova" {
		t.Fatalf("Paths = %v", paths)
	}
	if fs.Get(99) != nil {
		t.Fatalf("unknown id must yield nil")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.InternBytes([]byte("foo"))
	if a != b || a == NoStringID {
		t.Fatalf("ids %d, %d", a, b)
	}
	if s, ok := in.Lookup(a); !ok || s != "foo" {
		t.Fatalf("Lookup = %q, %v", s, ok)
	}
	if _, ok := in.Lookup(42); ok {
		t.Fatalf("unknown id must fail")
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d", in.Len())
	}
}
