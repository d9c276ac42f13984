package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/parser"
)

func parseForDump(t *testing.T, src string) (*ast.Builder, ast.Node, *ast.File) {
	t.Helper()
	_, f := virtualFile(t, "dump.nova", src)
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res, err := parser.ParseFile(f, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	require.Zero(t, bag.Len())
	return b, b.FileNode(res.File), b.Files.Get(res.File)
}

func TestFormatASTTree(t *testing.T) {
	_, f := virtualFile(t, "dump.nova", "fn main() { x + 1 }")
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.ParseFile(f, b, parser.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatASTTree(&buf, b, b.FileNode(res.File), f))
	want := "" +
		"File 1:1-1:20\n" +
		"└─ Item Fn main 1:1-1:20\n" +
		"   └─ Expr Block 1:11-1:20\n" +
		"      └─ Expr Binary + 1:13-1:18\n" +
		"         ├─ Expr Path x 1:13-1:14\n" +
		"         └─ Expr Lit int 1 1:17-1:18\n"
	require.Equal(t, want, buf.String())
}

func TestFormatASTJSONAndYAMLAgree(t *testing.T) {
	b, root, _ := parseForDump(t, "pub struct P { x: i32 } fn f(mut a: &mut P) -> bool { let (q, _) = (1, -2); true }")

	var js bytes.Buffer
	require.NoError(t, FormatASTJSON(&js, b, root))
	var fromJSON ASTNodeOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))

	var ym bytes.Buffer
	require.NoError(t, FormatASTYAML(&ym, b, root))
	var fromYAML ASTNodeOutput
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))

	require.Equal(t, fromJSON, fromYAML)
	require.Equal(t, "File", fromJSON.Node)
	require.Len(t, fromJSON.Children, 2)
	require.Equal(t, "pub P (named)", fromJSON.Children[0].Detail)
	require.Equal(t, "Fn", fromJSON.Children[1].Kind)
}
