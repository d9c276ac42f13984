package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nova/internal/ast"
	"nova/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	require.Nil(t, a.Get(0))
	id := a.Allocate(7)
	require.Equal(t, uint32(1), id)
	require.Equal(t, 7, *a.Get(id))
	require.Nil(t, a.Get(2))
	require.Equal(t, uint32(1), a.Len())
}

func TestTypedAccessorsCheckKind(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	lit := b.Exprs.NewLit(source.MustSpan(0, 1), ast.LitInt, b.Strings.Intern("1"))
	_, ok := b.Exprs.Binary(lit)
	require.False(t, ok)
	data, ok := b.Exprs.Lit(lit)
	require.True(t, ok)
	require.Equal(t, "1", b.Name(data.Value))

	_, ok = b.Exprs.Lit(ast.NoExprID)
	require.False(t, ok)

	require.Panics(t, func() { b.Exprs.NewWrap(ast.ExprLit, source.EmptySpan(0), lit) })
}

// 1 + 2 в блоке: let x = 1 + 2;
func TestWalkVisitsInSourceOrder(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	one := b.Exprs.NewLit(source.MustSpan(8, 9), ast.LitInt, b.Strings.Intern("1"))
	two := b.Exprs.NewLit(source.MustSpan(12, 13), ast.LitInt, b.Strings.Intern("2"))
	sum := b.Exprs.NewBinary(source.MustSpan(8, 13), ast.BinAdd, one, two)
	pat := b.Pats.NewBind(source.MustSpan(4, 5), b.Strings.Intern("x"), false)
	let := b.Stmts.NewLet(source.MustSpan(0, 14), pat, ast.NoTypeID, sum)
	file := b.NewFile(1, source.MustSpan(0, 14))
	b.Files.Get(file).Stmts = append(b.Files.Get(file).Stmts, let)

	type visit struct {
		kind  ast.NodeKind
		depth int
		span  source.Span
	}
	var got []visit
	ast.Walk(b, b.FileNode(file), func(n ast.Node, depth int) bool {
		got = append(got, visit{n.Kind, depth, n.Span})
		return true
	})
	require.Equal(t, []visit{
		{ast.NodeFile, 0, source.MustSpan(0, 14)},
		{ast.NodeStmt, 1, source.MustSpan(0, 14)},
		{ast.NodePat, 2, source.MustSpan(4, 5)},
		{ast.NodeExpr, 2, source.MustSpan(8, 13)},
		{ast.NodeExpr, 3, source.MustSpan(8, 9)},
		{ast.NodeExpr, 3, source.MustSpan(12, 13)},
	}, got)

	count := 0
	ast.Walk(b, b.FileNode(file), func(n ast.Node, _ int) bool {
		count++
		return n.Kind != ast.NodeStmt
	})
	require.Equal(t, 2, count, "returning false must prune the subtree")
}

func TestOpStrings(t *testing.T) {
	require.Equal(t, "<<=", ast.BinShlAssign.String())
	require.Equal(t, "&mut", ast.UnaryRefMut.String())
	require.True(t, ast.BinModAssign.IsAssign())
	require.False(t, ast.BinRange.IsAssign())
	require.True(t, ast.BinGreaterEq.IsComparison())
	require.Equal(t, "TupleIndex", ast.ExprTupleIndex.String())
	require.True(t, ast.ExprMatch.IsBlockLike())
	require.False(t, ast.ExprCall.IsBlockLike())
}

func TestArrayWithoutLengthIsSlice(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	elem := b.Types.NewPath(source.MustSpan(1, 4), []source.StringID{b.Strings.Intern("i32")}, nil)
	slice := b.Types.NewArray(source.MustSpan(0, 5), elem, ast.NoExprID)
	require.Equal(t, ast.TypeSlice, b.Types.Get(slice).Kind)
	_, ok := b.Types.Array(slice)
	require.True(t, ok)
}
