package testkit

import (
	"fmt"

	"nova/internal/ast"
	"nova/internal/source"
)

// CheckSpanInvariants walks a parsed file and checks the AST span contract:
//  1. the file node spans exactly [0, len)
//  2. every child span is covered by its parent span
//  3. children come in source order (non-decreasing start offsets)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node %d not found", fileID)
	}
	if f.Span.Start() != 0 || f.Span.End() != sf.Len() {
		return fmt.Errorf("file span %s, want 0..%d", f.Span, sf.Len())
	}

	var failure error
	var kids []ast.Node
	ast.Walk(b, b.FileNode(fileID), func(n ast.Node, depth int) bool {
		if failure != nil {
			return false
		}
		kids = b.Children(n, kids[:0])
		var prevStart uint32
		for i, kid := range kids {
			if !n.Span.Covers(kid.Span) {
				failure = fmt.Errorf("%s %d at depth %d: child %s %d span %s escapes parent %s",
					n.Kind, n.ID, depth, kid.Kind, kid.ID, kid.Span, n.Span)
				return false
			}
			if i > 0 && kid.Span.Start() < prevStart {
				failure = fmt.Errorf("%s %d: child %d starts at %d before previous child at %d",
					n.Kind, n.ID, i, kid.Span.Start(), prevStart)
				return false
			}
			prevStart = kid.Span.Start()
		}
		return true
	})
	return failure
}
