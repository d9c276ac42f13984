package fuzztests

import (
	"errors"
	"testing"
	"time"

	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/parser"
	"nova/internal/source"
	"nova/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

type parseMode int

const (
	modeFile parseMode = iota
	modeStmts
	modeExpr
)

func parseBytes(input []byte, mode parseMode) (*source.File, *ast.Builder, parser.Result, *diag.Bag, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual("fuzz.nova", input)
	if err != nil {
		return nil, nil, parser.Result{}, nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	opts := parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 128}
	var res parser.Result
	switch mode {
	case modeStmts:
		res, err = parser.ParseStmts(file, b, opts)
	case modeExpr:
		res, err = parser.ParseExpr(file, b, opts)
	default:
		res, err = parser.ParseFile(file, b, opts)
	}
	return file, b, res, bag, err
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, mode := range []parseMode{modeFile, modeStmts} {
			file, b, res, bag, err := parseBytes(input, mode)
			if file == nil {
				t.Skip()
			}
			if err != nil {
				if !errors.Is(err, diag.ErrNestingTooDeep) && !errors.Is(err, diag.ErrSourceTooLarge) {
					t.Fatalf("unexpected error kind: %v", err)
				}
				if bag.Len() != 0 {
					t.Fatalf("fatal parse flushed %d diagnostics", bag.Len())
				}
				continue
			}
			if err := testkit.CheckSpanInvariants(b, res.File, file); err != nil {
				t.Fatalf("mode %d: %v\ninput: %q", mode, err, truncateForLog(input, 200))
			}
			if bag.Count(diag.SevError) > res.Errors {
				t.Fatalf("bag holds %d errors, result counted %d", bag.Count(diag.SevError), res.Errors)
			}
		}
	})
}

func FuzzParserExpr(f *testing.F) {
	for _, s := range []string{"1 + 2 * 3", "a = b = c", "a..b..c", "-x?.y(z)[0]", "(a, b).1", "S { x }"} {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		file, b, res, _, err := parseBytes(clampInput(input), modeExpr)
		if file == nil || err != nil {
			return
		}
		if res.Expr == ast.NoExprID {
			return
		}
		if sp := b.Exprs.Get(res.Expr).Span; sp.End() > file.Len() {
			t.Fatalf("expression span %s past the end (%d bytes)", sp, file.Len())
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for recovery loops
	f.Add([]byte("fn test() { let x: i32 = 1\nlet y: i32 = 2; }")) // missing semicolon
	f.Add([]byte("fn test() { x + y\nlet z: i32 = 3; }"))         // expression without semicolon
	f.Add([]byte("impl<T> X<T>> for { fn }"))                      // stray closer in generics
	f.Add([]byte("{ let x = 1 }"))                                // block at top level
	f.Add([]byte("fn f() { { { { } } } }"))                       // deeply nested blocks
	f.Add([]byte("fn f() { match x { => } }"))                    // arm without pattern
	f.Add([]byte("fn f() { for in {} }"))                         // for without pattern

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _, _, _ = parseBytes(input, modeFile)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
