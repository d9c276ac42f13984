package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nova/internal/ast"
	"nova/internal/diag"
	"nova/internal/lexer"
	"nova/internal/parser"
	"nova/internal/source"
	"nova/internal/testkit"
)

type parsed struct {
	b    *ast.Builder
	file *source.File
	res  parser.Result
	bag  *diag.Bag
}

func newFile(t *testing.T, src string) *source.File {
	t.Helper()
	file, err := source.NewFile("test.nova", []byte(src))
	require.NoError(t, err)
	return file
}

func parseFile(t *testing.T, src string, opts parser.Options) parsed {
	t.Helper()
	file := newFile(t, src)
	b := ast.NewBuilder(ast.HintsFor(len(src)), nil)
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res, err := parser.ParseFile(file, b, opts)
	require.NoError(t, err)
	return parsed{b: b, file: file, res: res, bag: bag}
}

func parseStmts(t *testing.T, src string) parsed {
	t.Helper()
	file := newFile(t, src)
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res, err := parser.ParseStmts(file, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	return parsed{b: b, file: file, res: res, bag: bag}
}

func parseExpr(t *testing.T, src string) parsed {
	t.Helper()
	file := newFile(t, src)
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(0)
	res, err := parser.ParseExpr(file, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.NoError(t, err)
	return parsed{b: b, file: file, res: res, bag: bag}
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// sexpr печатает выражение в виде s-выражения, чтобы проверять форму дерева.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := b.Exprs.Lit(id)
		return b.Name(lit.Value)
	case ast.ExprPath:
		path, _ := b.Exprs.Path(id)
		segs := make([]string, len(path.Segments))
		for i, s := range path.Segments {
			segs[i] = b.Name(s)
		}
		return strings.Join(segs, "::")
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", u.Op, sexpr(b, u.Operand))
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op, sexpr(b, bin.Left), sexpr(b, bin.Right))
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		parts := []string{"call", sexpr(b, call.Callee)}
		for _, a := range call.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprIndex:
		idx, _ := b.Exprs.Index(id)
		return fmt.Sprintf("(index %s %s)", sexpr(b, idx.Target), sexpr(b, idx.Index))
	case ast.ExprField:
		f, _ := b.Exprs.Field(id)
		return fmt.Sprintf("(. %s %s)", sexpr(b, f.Target), b.Name(f.Name))
	case ast.ExprTupleIndex:
		ti, _ := b.Exprs.TupleIndex(id)
		return fmt.Sprintf("(.%d %s)", ti.Index, sexpr(b, ti.Target))
	case ast.ExprTry, ast.ExprGroup:
		w, _ := b.Exprs.Wrap(id)
		return fmt.Sprintf("(%s %s)", e.Kind, sexpr(b, w.Inner))
	case ast.ExprTuple, ast.ExprArray:
		list, _ := b.Exprs.List(id)
		parts := []string{e.Kind.String()}
		for _, el := range list.Elems {
			parts = append(parts, sexpr(b, el))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return e.Kind.String()
}

func TestPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a = b = c", "(= a (= b c))"},
		{"a += b -= c", "(+= a (-= b c))"},
		{"a < b < c", "(< (< a b) c)"},
		{"-a * b", "(* (- a) b)"},
		{"!a && b || c", "(|| (&& (! a) b) c)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a & b == c", "(== (& a b) c)"},
		{"x < y | z", "(< x (| y z))"},
		{"a | b && c", "(&& (| a b) c)"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"1 << 2 + 3", "(<< 1 (+ 2 3))"},
		{"a..b + 1", "(.. a (+ b 1))"},
		{"x = a..=b", "(= x (..= a b))"},
		{"(1 + 2) * 3", "(* (Group (+ 1 2)) 3)"},
		{"*p.x", "(* (. p x))"},
		{"&&x", "(& (& x))"},
		{"&mut x", "(&mut x)"},
		{"f(a, b)[i].name?", "(Try (. (index (call f a b) i) name))"},
		{"t.0.1", "(.1 (.0 t))"},
		{"a::b::c(1)", "(call a::b::c 1)"},
		{"(1,)", "(Tuple 1)"},
		{"[1, 2, 3]", "(Array 1 2 3)"},
		{"()", "(Tuple)"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			p := parseExpr(t, tc.src)
			require.Zero(t, p.res.Errors, "diagnostics: %v", p.bag.Items())
			require.Equal(t, tc.want, sexpr(p.b, p.res.Expr))
		})
	}
}

func TestRangeIsNonAssociative(t *testing.T) {
	p := parseExpr(t, "a..b..c")
	require.Equal(t, 1, p.res.Errors)
	require.Equal(t, []diag.Code{diag.SynNonAssociative}, codes(p.bag))
	// разбор продолжается слева направо
	require.Equal(t, "(.. (.. a b) c)", sexpr(p.b, p.res.Expr))
	require.Equal(t, source.MustSpan(4, 6), p.bag.Items()[0].PrimarySpan())
}

func TestTupleIndexSplitSpans(t *testing.T) {
	p := parseExpr(t, "t.0.1")
	outer := p.b.Exprs.Get(p.res.Expr)
	require.Equal(t, source.MustSpan(0, 5), outer.Span)
	ti, ok := p.b.Exprs.TupleIndex(p.res.Expr)
	require.True(t, ok)
	require.Equal(t, source.MustSpan(0, 3), p.b.Exprs.Get(ti.Target).Span)
}

func TestParseExprTrailingTokens(t *testing.T) {
	p := parseExpr(t, "1 2")
	require.Equal(t, []diag.Code{diag.SynUnexpectedToken}, codes(p.bag))
}

func TestStructLiteral(t *testing.T) {
	p := parseExpr(t, "Point { x: 1, y }")
	require.Zero(t, p.res.Errors)
	st, ok := p.b.Exprs.Struct(p.res.Expr)
	require.True(t, ok)
	require.Len(t, st.Fields, 2)
	require.Equal(t, "y", p.b.Name(st.Fields[1].Name))
	require.Equal(t, "y", sexpr(p.b, st.Fields[1].Value))
}

func TestStructLiteralNotInCondition(t *testing.T) {
	p := parseStmts(t, "if p { 1 } else { 2 }")
	require.Zero(t, p.res.Errors, "diagnostics: %v", p.bag.Items())
	f := p.b.Files.Get(p.res.File)
	require.Len(t, f.Stmts, 1)
	es, _ := p.b.Stmts.Expr(f.Stmts[0])
	ifData, ok := p.b.Exprs.If(es.Expr)
	require.True(t, ok)
	require.Equal(t, ast.ExprPath, p.b.Exprs.Get(ifData.Cond).Kind)
	require.True(t, ifData.Else.IsValid())

	p = parseStmts(t, "while x { break } for i in 0..n { continue }")
	require.Zero(t, p.res.Errors, "diagnostics: %v", p.bag.Items())
	require.Len(t, p.b.Files.Get(p.res.File).Stmts, 2)
}

func TestLetStatement(t *testing.T) {
	p := parseStmts(t, "let x = 42;")
	require.Zero(t, p.res.Errors)
	f := p.b.Files.Get(p.res.File)
	require.Len(t, f.Stmts, 1)
	st := p.b.Stmts.Get(f.Stmts[0])
	require.Equal(t, ast.StmtLet, st.Kind)
	require.Equal(t, source.MustSpan(0, 11), st.Span)
	let, _ := p.b.Stmts.Let(f.Stmts[0])
	bind, ok := p.b.Pats.Bind(let.Pat)
	require.True(t, ok)
	require.Equal(t, "x", p.b.Name(bind.Name))
	require.False(t, let.Type.IsValid())
	require.Equal(t, "42", sexpr(p.b, let.Value))
}

func TestStmtsTailAndBlockLike(t *testing.T) {
	p := parseStmts(t, "let a = 1; a + 1")
	require.Zero(t, p.res.Errors)
	f := p.b.Files.Get(p.res.File)
	require.Len(t, f.Stmts, 2)
	tail, ok := p.b.Stmts.Expr(f.Stmts[1])
	require.True(t, ok)
	require.False(t, tail.Semi)
	require.Equal(t, "(+ a 1)", sexpr(p.b, tail.Expr))

	// блочное выражение в позиции оператора заканчивает оператор
	p = parseStmts(t, "if a {} - 1")
	require.Zero(t, p.res.Errors)
	f = p.b.Files.Get(p.res.File)
	require.Len(t, f.Stmts, 2)
	second, _ := p.b.Stmts.Expr(f.Stmts[1])
	require.Equal(t, "(- 1)", sexpr(p.b, second.Expr))
}

func TestMatch(t *testing.T) {
	p := parseStmts(t, "match x { 0 => a, -1 => { b } _ if c => d, (y, _) => y }")
	require.Zero(t, p.res.Errors, "diagnostics: %v", p.bag.Items())
	f := p.b.Files.Get(p.res.File)
	es, _ := p.b.Stmts.Expr(f.Stmts[0])
	m, ok := p.b.Exprs.Match(es.Expr)
	require.True(t, ok)
	require.Len(t, m.Arms, 4)

	lit, ok := p.b.Pats.Lit(m.Arms[1].Pat)
	require.True(t, ok)
	require.True(t, lit.Neg)
	require.Equal(t, ast.PatWild, p.b.Pats.Get(m.Arms[2].Pat).Kind)
	require.True(t, m.Arms[2].Guard.IsValid())
	tup, ok := p.b.Pats.Tuple(m.Arms[3].Pat)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
}

func TestMatchStrayCloserTerminates(t *testing.T) {
	for _, src := range []string{
		"fn f() { match x { ) } }",
		"fn A(){ match a { 0) } }",
		"fn f() { match x { 0 => 1 ] } }",
		"fn f() { match x { 0 => 1; } }",
	} {
		t.Run(src, func(t *testing.T) {
			file := newFile(t, src)
			bag := diag.NewBag(0)
			done := make(chan parser.Result, 1)
			go func() {
				res, _ := parser.ParseFile(file, ast.NewBuilder(ast.Hints{}, nil), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
				done <- res
			}()
			select {
			case res := <-done:
				require.NotZero(t, res.Errors)
				require.Less(t, bag.Len(), 10)
			case <-time.After(2 * time.Second):
				t.Fatal("parser did not terminate")
			}
		})
	}
}

func TestForMissingIn(t *testing.T) {
	p := parseStmts(t, "for i 0..n {}")
	require.Contains(t, codes(p.bag), diag.SynForMissingIn)
}

func TestItems(t *testing.T) {
	src := `pub struct Point { pub x: i32, y: i32 }
struct Pair(i32, i32);
struct Unit;
enum Shape<T> { Empty, Circle(T), Rect { w: T, h: T } }
trait Area: Debug + Clone { fn area(&self) -> f64; }
impl<T: Copy> Area for Shape<T> where T: Into<f64> { fn area(&self) -> f64 { 0.0 } }
use std::io::*;
type Map<K> = HashMap<K, Vec<K>>;
mod inner { fn hidden() {} }
mod outer;
fn generic<T>(mut v: Vec<Vec<T>>, n: [u8; 4]) -> (T, &mut T) { v }
`
	p := parseFile(t, src, parser.Options{})
	require.Zero(t, p.res.Errors, "diagnostics: %v", p.bag.Items())
	f := p.b.Files.Get(p.res.File)

	var kinds []ast.ItemKind
	for _, it := range f.Items {
		kinds = append(kinds, p.b.Items.Get(it).Kind)
	}
	require.Equal(t, []ast.ItemKind{
		ast.ItemStruct, ast.ItemStruct, ast.ItemStruct, ast.ItemEnum, ast.ItemTrait,
		ast.ItemImpl, ast.ItemUse, ast.ItemTypeAlias, ast.ItemMod, ast.ItemMod, ast.ItemFn,
	}, kinds)

	point := p.b.Items.Get(f.Items[0])
	require.True(t, point.Pub)
	require.Equal(t, "Point", p.b.Name(point.Name))
	st, _ := p.b.Items.Struct(f.Items[0])
	require.Equal(t, ast.ShapeNamed, st.Shape)
	require.True(t, st.Fields[0].Pub)
	require.False(t, st.Fields[1].Pub)

	pair, _ := p.b.Items.Struct(f.Items[1])
	require.Equal(t, ast.ShapeTuple, pair.Shape)
	require.Len(t, pair.Fields, 2)
	unit, _ := p.b.Items.Struct(f.Items[2])
	require.Equal(t, ast.ShapeUnit, unit.Shape)

	en, _ := p.b.Items.Enum(f.Items[3])
	require.Len(t, en.Generics, 1)
	require.Equal(t, []ast.StructShape{ast.ShapeUnit, ast.ShapeTuple, ast.ShapeNamed},
		[]ast.StructShape{en.Variants[0].Shape, en.Variants[1].Shape, en.Variants[2].Shape})

	tr, _ := p.b.Items.Trait(f.Items[4])
	require.Len(t, tr.Supers, 2)
	require.Len(t, tr.Items, 1)
	decl, _ := p.b.Items.Fn(tr.Items[0])
	require.False(t, decl.Body.IsValid())
	require.Len(t, decl.Params, 1)
	selfTy, ok := p.b.Types.Ref(decl.Params[0].Type)
	require.True(t, ok)
	require.False(t, selfTy.Mut)

	impl, _ := p.b.Items.Impl(f.Items[5])
	require.True(t, impl.Trait.IsValid())
	require.Len(t, impl.Where, 1)
	require.Len(t, impl.Generics[0].Bounds, 1)
	method, _ := p.b.Items.Fn(impl.Items[0])
	require.True(t, method.Body.IsValid())

	use, _ := p.b.Items.Use(f.Items[6])
	require.True(t, use.Glob)
	require.Len(t, use.Path, 2)

	alias, _ := p.b.Items.TypeAlias(f.Items[7])
	target, _ := p.b.Types.Path(alias.Target)
	require.Len(t, target.Args, 2)
	vec, _ := p.b.Types.Path(target.Args[1])
	require.Len(t, vec.Args, 1)

	inner, _ := p.b.Items.Mod(f.Items[8])
	require.True(t, inner.Inline)
	require.Len(t, inner.Items, 1)
	outer, _ := p.b.Items.Mod(f.Items[9])
	require.False(t, outer.Inline)

	fn, _ := p.b.Items.Fn(f.Items[10])
	require.Len(t, fn.Params, 2)
	outerVec, _ := p.b.Types.Path(fn.Params[0].Type)
	innerVec, _ := p.b.Types.Path(outerVec.Args[0])
	require.Len(t, innerVec.Args, 1)
	arr, _ := p.b.Types.Array(fn.Params[1].Type)
	require.True(t, arr.Len.IsValid())
	result, ok := p.b.Types.Tuple(fn.Result)
	require.True(t, ok)
	require.Len(t, result.Elems, 2)

	require.NoError(t, testkit.CheckSpanInvariants(p.b, p.res.File, p.file))
}

func TestMissingSemicolonCarriesFix(t *testing.T) {
	p := parseFile(t, "fn main() { let a = 1 let b = 2; }", parser.Options{})
	require.Equal(t, 1, p.res.Errors)
	d := p.bag.Items()[0]
	require.Equal(t, diag.SynExpectSemicolon, d.Code)
	require.Len(t, d.Fixes, 1)
	require.Equal(t, []diag.FixEdit{{Span: source.EmptySpan(21), NewText: ";"}}, d.Fixes[0].Edits)

	body, _ := p.b.Items.Fn(p.b.Files.Get(p.res.File).Items[0])
	block, _ := p.b.Exprs.Block(body.Body)
	require.Len(t, block.Stmts, 2)
}

func TestUnclosedDelimiterPointsAtOpener(t *testing.T) {
	p := parseFile(t, "fn main() { foo(1, 2 }", parser.Options{})
	require.Equal(t, 1, p.res.Errors)
	d := p.bag.Items()[0]
	require.Equal(t, diag.SynUnclosedParen, d.Code)
	require.Len(t, d.Labels, 2)
	require.Equal(t, diag.LabelSecondary, d.Labels[1].Style)
	require.Equal(t, source.MustSpan(15, 16), d.Labels[1].Span)
	require.Len(t, p.b.Files.Get(p.res.File).Items, 1)
}

func TestRecoveryContinuesAfterErrors(t *testing.T) {
	p := parseFile(t, "42 fn a() { let = 1; let y = 2; } fn b() {}", parser.Options{})
	require.Equal(t, []diag.Code{diag.SynUnexpectedTopLevel, diag.SynExpectPattern}, codes(p.bag))
	f := p.b.Files.Get(p.res.File)
	require.Len(t, f.Items, 2)
	body, _ := p.b.Items.Fn(f.Items[0])
	block, _ := p.b.Exprs.Block(body.Body)
	require.Len(t, block.Stmts, 1)
	require.NoError(t, testkit.CheckSpanInvariants(p.b, p.res.File, p.file))
}

func TestMemberListRejectsNonFunctions(t *testing.T) {
	p := parseFile(t, "impl S { let x = 1; fn ok() {} }", parser.Options{})
	require.Equal(t, []diag.Code{diag.SynUnexpectedToken}, codes(p.bag))
	impl, _ := p.b.Items.Impl(p.b.Files.Get(p.res.File).Items[0])
	require.Len(t, impl.Items, 1)
}

func TestFnBodyRequiredOutsideTrait(t *testing.T) {
	p := parseFile(t, "fn f();", parser.Options{})
	require.Equal(t, []diag.Code{diag.SynExpectItemBody}, codes(p.bag))
}

func TestMaxErrors(t *testing.T) {
	p := parseFile(t, "fn a() { let = 1; let = 2; let = 3; }", parser.Options{MaxErrors: 1})
	require.Equal(t, 3, p.res.Errors)
	require.Equal(t, 1, p.bag.Len())
}

func TestIncompleteInput(t *testing.T) {
	p := parseStmts(t, "fn f() {")
	require.True(t, p.res.Incomplete)

	p = parseStmts(t, "let a = 1\nlet b = 2;")
	require.Equal(t, 1, p.res.Errors)
	require.False(t, p.res.Incomplete)
}

func TestExpressionDepthLimit(t *testing.T) {
	ok := strings.Repeat("(", 60) + "1" + strings.Repeat(")", 60)
	p := parseExpr(t, ok)
	require.Zero(t, p.res.Errors)

	deep := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100)
	file := newFile(t, deep)
	bag := diag.NewBag(0)
	res, err := parser.ParseExpr(file, ast.NewBuilder(ast.Hints{}, nil), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.True(t, errors.Is(err, diag.ErrNestingTooDeep), "err = %v", err)
	require.Equal(t, parser.Result{}, res)
	require.Zero(t, bag.Len())

	var le *diag.LimitError
	require.True(t, errors.As(err, &le))
	require.Equal(t, uint64(parser.DefaultMaxExprDepth), le.Limit)
	require.Equal(t, diag.SynNestingTooDeep, le.Code)
}

func TestBlockDepthLimit(t *testing.T) {
	src := "fn f() " + strings.Repeat("{", 10) + strings.Repeat("}", 10)
	_, err := parser.ParseFile(newFile(t, src), ast.NewBuilder(ast.Hints{}, nil), parser.Options{MaxBlockDepth: 5})
	require.True(t, errors.Is(err, diag.ErrNestingTooDeep), "err = %v", err)

	_, err = parser.ParseFile(newFile(t, src), ast.NewBuilder(ast.Hints{}, nil), parser.Options{})
	require.NoError(t, err)
}

func TestLexerFatalErrorPropagates(t *testing.T) {
	src := "fn main() {}\n" + strings.Repeat("/*", 3) + strings.Repeat("*/", 3)
	bag := diag.NewBag(0)
	res, err := parser.ParseFile(newFile(t, src), ast.NewBuilder(ast.Hints{}, nil), parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Lexer:    lexer.Options{MaxNestingDepth: 2},
	})
	require.True(t, errors.Is(err, diag.ErrNestingTooDeep), "err = %v", err)
	require.Equal(t, ast.NoFileID, res.File)
	require.Zero(t, bag.Len())
}

func TestLexerDiagnosticsAreForwarded(t *testing.T) {
	p := parseStmts(t, "let s = \"open")
	require.Contains(t, codes(p.bag), diag.LexUnterminatedString)
}

func TestSpanInvariants(t *testing.T) {
	sources := []string{
		"",
		"fn main() { let x = (1 + 2) * f(a, b)[0]; }",
		"fn f(&mut self, x: &&T) -> [i32; 3] { [x; 3] }",
		"struct S { a: (i32, bool) } fn g() { S { a: (1, true) }.a.0 }",
		"fn h() { match v { (a, -2) => a, _ => { 0 } } }",
		"fn broken( { let = ; } fn fine() {}",
		"mod m { pub fn x() { loop_() } } use a::b;",
	}
	for _, src := range sources {
		p := parseFile(t, src, parser.Options{})
		require.NoError(t, testkit.CheckSpanInvariants(p.b, p.res.File, p.file), "source %q", src)
	}
}
