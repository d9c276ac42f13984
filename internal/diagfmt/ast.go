package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"nova/internal/ast"
	"nova/internal/source"
)

// ASTNodeOutput: общий вид узла для JSON и YAML дампов.
type ASTNodeOutput struct {
	Node     string          `json:"node" yaml:"node"`
	Kind     string          `json:"kind" yaml:"kind"`
	Detail   string          `json:"detail,omitempty" yaml:"detail,omitempty"`
	Start    uint32          `json:"start" yaml:"start"`
	End      uint32          `json:"end" yaml:"end"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildASTOutput converts the subtree under root. Children are taken from
// ast.Builder.Children, so the dump follows source order.
func BuildASTOutput(b *ast.Builder, root ast.Node) ASTNodeOutput {
	kind, detail := describeNode(b, root)
	out := ASTNodeOutput{
		Node:   root.Kind.String(),
		Kind:   kind,
		Detail: detail,
		Start:  root.Span.Start(),
		End:    root.Span.End(),
	}
	for _, child := range b.Children(root, nil) {
		out.Children = append(out.Children, BuildASTOutput(b, child))
	}
	return out
}

// FormatASTTree печатает дерево с псевдографикой:
//
//	File 1:1-1:13
//	└─ Item Fn main 1:1-1:13
//	   └─ Expr Block 1:11-1:13
func FormatASTTree(w io.Writer, b *ast.Builder, root ast.Node, f *source.File) error {
	var sb strings.Builder
	writeTreeNode(&sb, b, root, f, "", "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeNode(sb *strings.Builder, b *ast.Builder, n ast.Node, f *source.File, head, branch, indent string) {
	kind, detail := describeNode(b, n)
	sb.WriteString(head)
	sb.WriteString(branch)
	sb.WriteString(n.Kind.String())
	if kind != "" && n.Kind != ast.NodeFile {
		sb.WriteString(" " + kind)
	}
	if detail != "" {
		sb.WriteString(" " + detail)
	}
	sb.WriteString(" " + formatSpan(n.Span, f))
	sb.WriteByte('\n')

	children := b.Children(n, nil)
	for i, child := range children {
		if i == len(children)-1 {
			writeTreeNode(sb, b, child, f, indent, "└─ ", indent+"   ")
		} else {
			writeTreeNode(sb, b, child, f, indent, "├─ ", indent+"│  ")
		}
	}
}

func FormatASTJSON(w io.Writer, b *ast.Builder, root ast.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(b, root))
}

func FormatASTYAML(w io.Writer, b *ast.Builder, root ast.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildASTOutput(b, root)); err != nil {
		return err
	}
	return enc.Close()
}

func formatSpan(span source.Span, f *source.File) string {
	if f != nil && span.End() <= f.Len() {
		start, end := f.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start(), span.End())
}

// describeNode возвращает вид узла и короткую подпись: имя, оператор, литерал.
func describeNode(b *ast.Builder, n ast.Node) (kind, detail string) {
	switch n.Kind {
	case ast.NodeFile:
		return "File", ""
	case ast.NodeItem:
		return describeItem(b, ast.ItemID(n.ID))
	case ast.NodeStmt:
		return describeStmt(b, ast.StmtID(n.ID))
	case ast.NodeExpr:
		return describeExpr(b, ast.ExprID(n.ID))
	case ast.NodeType:
		return describeType(b, ast.TypeID(n.ID))
	case ast.NodePat:
		return describePat(b, ast.PatID(n.ID))
	}
	return "?", ""
}

func describeItem(b *ast.Builder, id ast.ItemID) (string, string) {
	item := b.Items.Get(id)
	var parts []string
	if item.Pub {
		parts = append(parts, "pub")
	}
	if name := b.Name(item.Name); name != "" {
		parts = append(parts, name)
	}
	switch item.Kind {
	case ast.ItemStruct:
		if st, ok := b.Items.Struct(id); ok {
			parts = append(parts, "("+st.Shape.String()+")")
		}
	case ast.ItemUse:
		if use, ok := b.Items.Use(id); ok {
			path := joinNames(b, use.Path, "::")
			if use.Glob {
				path += "::*"
			}
			parts = append(parts, path)
		}
	case ast.ItemImpl:
		if impl, ok := b.Items.Impl(id); ok && impl.Trait != ast.NoTypeID {
			parts = append(parts, "(trait)")
		}
	case ast.ItemMod:
		if mod, ok := b.Items.Mod(id); ok && !mod.Inline {
			parts = append(parts, "(external)")
		}
	}
	return item.Kind.String(), strings.Join(parts, " ")
}

func describeStmt(b *ast.Builder, id ast.StmtID) (string, string) {
	st := b.Stmts.Get(id)
	if es, ok := b.Stmts.Expr(id); ok && es.Semi {
		return st.Kind.String(), ";"
	}
	return st.Kind.String(), ""
}

func describeExpr(b *ast.Builder, id ast.ExprID) (string, string) {
	e := b.Exprs.Get(id)
	kind := e.Kind.String()
	switch e.Kind {
	case ast.ExprLit:
		if lit, ok := b.Exprs.Lit(id); ok {
			if lit.Kind == ast.LitTrue || lit.Kind == ast.LitFalse {
				return kind, lit.Kind.String()
			}
			return kind, lit.Kind.String() + " " + b.Name(lit.Value)
		}
	case ast.ExprPath:
		if p, ok := b.Exprs.Path(id); ok {
			return kind, joinNames(b, p.Segments, "::")
		}
	case ast.ExprUnary:
		if u, ok := b.Exprs.Unary(id); ok {
			return kind, u.Op.String()
		}
	case ast.ExprBinary:
		if bin, ok := b.Exprs.Binary(id); ok {
			return kind, bin.Op.String()
		}
	case ast.ExprField:
		if fd, ok := b.Exprs.Field(id); ok {
			return kind, "." + b.Name(fd.Name)
		}
	case ast.ExprTupleIndex:
		if ti, ok := b.Exprs.TupleIndex(id); ok {
			return kind, fmt.Sprintf(".%d", ti.Index)
		}
	case ast.ExprStruct:
		if st, ok := b.Exprs.Struct(id); ok {
			names := make([]source.StringID, 0, len(st.Fields))
			for _, fi := range st.Fields {
				names = append(names, fi.Name)
			}
			return kind, "{" + joinNames(b, names, ", ") + "}"
		}
	}
	return kind, ""
}

func describeType(b *ast.Builder, id ast.TypeID) (string, string) {
	t := b.Types.Get(id)
	kind := t.Kind.String()
	switch t.Kind {
	case ast.TypePath:
		if p, ok := b.Types.Path(id); ok {
			return kind, joinNames(b, p.Segments, "::")
		}
	case ast.TypeRef:
		if r, ok := b.Types.Ref(id); ok && r.Mut {
			return kind, "mut"
		}
	}
	return kind, ""
}

func describePat(b *ast.Builder, id ast.PatID) (string, string) {
	p := b.Pats.Get(id)
	kind := p.Kind.String()
	switch p.Kind {
	case ast.PatBind:
		if bind, ok := b.Pats.Bind(id); ok {
			if bind.Mut {
				return kind, "mut " + b.Name(bind.Name)
			}
			return kind, b.Name(bind.Name)
		}
	case ast.PatLit:
		if lit, ok := b.Pats.Lit(id); ok {
			v := b.Name(lit.Value)
			if lit.Neg {
				v = "-" + v
			}
			return kind, lit.Kind.String() + " " + v
		}
	}
	return kind, ""
}

func joinNames(b *ast.Builder, ids []source.StringID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = b.Name(id)
	}
	return strings.Join(parts, sep)
}
