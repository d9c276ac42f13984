package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var languageSeeds = []string{
	"",
	"fn main() {}\n",
	"fn main() -> i32 { return 0; }\n",
	"pub struct P { x: i32, y: (bool, [u8; 4]) }\n",
	"enum E<T> { A(T), B { v: &mut T }, C }\n",
	"impl<T: Clone + Eq> Tr for S<T> where T: Copy { fn f(&self) {} }\n",
	"trait T: A + B { fn g(mut self, x: _) -> !; }\n",
	"use a::b::*; type V = Vec<Vec<i32>>; mod m { fn h() {} }\n",
	"fn f() { let (a, _) = (1, -2); a..=b; x.0.1; s?[i](j); }\n",
	"fn f() { match x { 0 => 1, n => { n } } while a < b { a += 1 } }\n",
	"fn f() { if S { a: 1 }.a == 1 {} for i in 0..n { break; } }\n",
	"/* /* nested */ */ // line\n/// doc\nfn f() { 'c'; \"s\\n\"; 0x1F; 1.5e3; }\n",
	"fn f() { let a = 1 let b = 2; }\n",
	"fn f( { )\n",
	"fn f() { a..b..c; a = b = c; }\n",
	"fn f() { match x { ) } }\n",
	"fn A(){ match a { 0) } }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds подмешивает golden-входы парсера.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "parser", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".nova" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
