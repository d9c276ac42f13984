package ast

import (
	"nova/internal/source"
)

type NodeKind uint8

const (
	NodeFile NodeKind = iota
	NodeItem
	NodeStmt
	NodeExpr
	NodeType
	NodePat
)

var nodeKindNames = [...]string{
	NodeFile: "File",
	NodeItem: "Item",
	NodeStmt: "Stmt",
	NodeExpr: "Expr",
	NodeType: "Type",
	NodePat:  "Pat",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Node: ссылка на узел любой арены, общая для обхода.
type Node struct {
	Kind NodeKind
	ID   uint32
	Span source.Span
}

func (b *Builder) FileNode(id FileID) Node {
	return Node{Kind: NodeFile, ID: uint32(id), Span: b.Files.Get(id).Span}
}

func (b *Builder) ItemNode(id ItemID) Node {
	return Node{Kind: NodeItem, ID: uint32(id), Span: b.Items.Get(id).Span}
}

func (b *Builder) StmtNode(id StmtID) Node {
	return Node{Kind: NodeStmt, ID: uint32(id), Span: b.Stmts.Get(id).Span}
}

func (b *Builder) ExprNode(id ExprID) Node {
	return Node{Kind: NodeExpr, ID: uint32(id), Span: b.Exprs.Get(id).Span}
}

func (b *Builder) TypeNode(id TypeID) Node {
	return Node{Kind: NodeType, ID: uint32(id), Span: b.Types.Get(id).Span}
}

func (b *Builder) PatNode(id PatID) Node {
	return Node{Kind: NodePat, ID: uint32(id), Span: b.Pats.Get(id).Span}
}

// Walk обходит поддерево в глубину в порядке исходника. Если visit вернул
// false, дети узла пропускаются.
func Walk(b *Builder, root Node, visit func(n Node, depth int) bool) {
	walk(b, root, 0, visit)
}

func walk(b *Builder, n Node, depth int, visit func(Node, int) bool) {
	if !visit(n, depth) {
		return
	}
	for _, child := range b.Children(n, nil) {
		walk(b, child, depth+1, visit)
	}
}

// Children appends the direct children of n to dst in source order.
// Отсутствующие (No*ID) ссылки пропускаются.
func (b *Builder) Children(n Node, dst []Node) []Node {
	c := collector{b: b, out: dst}
	switch n.Kind {
	case NodeFile:
		f := b.Files.Get(FileID(n.ID))
		for _, it := range f.Items {
			c.item(it)
		}
		for _, st := range f.Stmts {
			c.stmt(st)
		}
	case NodeItem:
		c.itemChildren(ItemID(n.ID))
	case NodeStmt:
		c.stmtChildren(StmtID(n.ID))
	case NodeExpr:
		c.exprChildren(ExprID(n.ID))
	case NodeType:
		c.typeChildren(TypeID(n.ID))
	case NodePat:
		if tup, ok := b.Pats.Tuple(PatID(n.ID)); ok {
			for _, el := range tup.Elems {
				c.pat(el)
			}
		}
	}
	return c.out
}

type collector struct {
	b   *Builder
	out []Node
}

func (c *collector) item(id ItemID) {
	if id.IsValid() {
		c.out = append(c.out, c.b.ItemNode(id))
	}
}

func (c *collector) stmt(id StmtID) {
	if id.IsValid() {
		c.out = append(c.out, c.b.StmtNode(id))
	}
}

func (c *collector) expr(id ExprID) {
	if id.IsValid() {
		c.out = append(c.out, c.b.ExprNode(id))
	}
}

func (c *collector) typ(id TypeID) {
	if id.IsValid() {
		c.out = append(c.out, c.b.TypeNode(id))
	}
}

func (c *collector) pat(id PatID) {
	if id.IsValid() {
		c.out = append(c.out, c.b.PatNode(id))
	}
}

func (c *collector) generics(params []GenericParam) {
	for _, gp := range params {
		for _, bound := range gp.Bounds {
			c.typ(bound)
		}
	}
}

func (c *collector) where(preds []WherePred) {
	for _, w := range preds {
		c.typ(w.Type)
		for _, bound := range w.Bounds {
			c.typ(bound)
		}
	}
}

func (c *collector) fields(fields []FieldDecl) {
	for _, f := range fields {
		c.typ(f.Type)
	}
}

func (c *collector) itemChildren(id ItemID) {
	items := c.b.Items
	switch items.Get(id).Kind {
	case ItemFn:
		fn, _ := items.Fn(id)
		c.generics(fn.Generics)
		for _, p := range fn.Params {
			c.pat(p.Pat)
			c.typ(p.Type)
		}
		c.typ(fn.Result)
		c.where(fn.Where)
		c.expr(fn.Body)
	case ItemStruct:
		st, _ := items.Struct(id)
		c.generics(st.Generics)
		c.fields(st.Fields)
	case ItemEnum:
		en, _ := items.Enum(id)
		c.generics(en.Generics)
		for _, v := range en.Variants {
			c.fields(v.Fields)
		}
	case ItemImpl:
		impl, _ := items.Impl(id)
		c.generics(impl.Generics)
		c.typ(impl.Trait)
		c.typ(impl.Self)
		c.where(impl.Where)
		for _, it := range impl.Items {
			c.item(it)
		}
	case ItemTrait:
		tr, _ := items.Trait(id)
		c.generics(tr.Generics)
		for _, s := range tr.Supers {
			c.typ(s)
		}
		for _, it := range tr.Items {
			c.item(it)
		}
	case ItemTypeAlias:
		alias, _ := items.TypeAlias(id)
		c.generics(alias.Generics)
		c.typ(alias.Target)
	case ItemMod:
		mod, _ := items.Mod(id)
		for _, it := range mod.Items {
			c.item(it)
		}
	case ItemUse:
	}
}

func (c *collector) stmtChildren(id StmtID) {
	stmts := c.b.Stmts
	switch stmts.Get(id).Kind {
	case StmtLet:
		let, _ := stmts.Let(id)
		c.pat(let.Pat)
		c.typ(let.Type)
		c.expr(let.Value)
	case StmtExpr:
		es, _ := stmts.Expr(id)
		c.expr(es.Expr)
	case StmtItem:
		is, _ := stmts.Item(id)
		c.item(is.Item)
	case StmtEmpty:
	}
}

func (c *collector) exprChildren(id ExprID) {
	exprs := c.b.Exprs
	switch exprs.Get(id).Kind {
	case ExprUnary:
		u, _ := exprs.Unary(id)
		c.expr(u.Operand)
	case ExprBinary:
		bin, _ := exprs.Binary(id)
		c.expr(bin.Left)
		c.expr(bin.Right)
	case ExprCall:
		call, _ := exprs.Call(id)
		c.expr(call.Callee)
		for _, a := range call.Args {
			c.expr(a)
		}
	case ExprIndex:
		idx, _ := exprs.Index(id)
		c.expr(idx.Target)
		c.expr(idx.Index)
	case ExprField:
		f, _ := exprs.Field(id)
		c.expr(f.Target)
	case ExprTupleIndex:
		ti, _ := exprs.TupleIndex(id)
		c.expr(ti.Target)
	case ExprTry, ExprGroup, ExprReturn, ExprBreak:
		w, _ := exprs.Wrap(id)
		c.expr(w.Inner)
	case ExprTuple, ExprArray:
		l, _ := exprs.List(id)
		for _, el := range l.Elems {
			c.expr(el)
		}
	case ExprRepeat:
		r, _ := exprs.Repeat(id)
		c.expr(r.Elem)
		c.expr(r.Count)
	case ExprStruct:
		st, _ := exprs.Struct(id)
		c.expr(st.Path)
		for _, f := range st.Fields {
			c.expr(f.Value)
		}
	case ExprBlock:
		blk, _ := exprs.Block(id)
		for _, s := range blk.Stmts {
			c.stmt(s)
		}
		c.expr(blk.Tail)
	case ExprIf:
		ifx, _ := exprs.If(id)
		c.expr(ifx.Cond)
		c.expr(ifx.Then)
		c.expr(ifx.Else)
	case ExprMatch:
		m, _ := exprs.Match(id)
		c.expr(m.Scrutinee)
		for _, arm := range m.Arms {
			c.pat(arm.Pat)
			c.expr(arm.Guard)
			c.expr(arm.Body)
		}
	case ExprWhile:
		w, _ := exprs.While(id)
		c.expr(w.Cond)
		c.expr(w.Body)
	case ExprFor:
		f, _ := exprs.For(id)
		c.pat(f.Pat)
		c.expr(f.Iter)
		c.expr(f.Body)
	case ExprInvalid, ExprLit, ExprPath, ExprContinue:
	}
}

func (c *collector) typeChildren(id TypeID) {
	types := c.b.Types
	switch types.Get(id).Kind {
	case TypePath:
		p, _ := types.Path(id)
		for _, a := range p.Args {
			c.typ(a)
		}
	case TypeRef:
		r, _ := types.Ref(id)
		c.typ(r.Elem)
	case TypeSlice, TypeArray:
		a, _ := types.Array(id)
		c.typ(a.Elem)
		c.expr(a.Len)
	case TypeTuple:
		t, _ := types.Tuple(id)
		for _, el := range t.Elems {
			c.typ(el)
		}
	case TypeInvalid, TypeNever:
	}
}
