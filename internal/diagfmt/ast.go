package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lintel/internal/ast"
	"lintel/internal/source"
)

// ASTNodeOutput is the JSON form of one AST node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Detail   string          `json:"detail,omitempty"`
	Span     string          `json:"span"`
	Flags    []string        `json:"flags,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

var flagNames = []struct {
	flag ast.NodeFlags
	name string
}{
	{ast.FlagHasSemicolon, "semicolon"},
	{ast.FlagNeedsSemicolon, "needs-semicolon"},
	{ast.FlagHasError, "error"},
	{ast.FlagDirective, "directive"},
	{ast.FlagOptional, "optional"},
	{ast.FlagComputed, "computed"},
	{ast.FlagExported, "exported"},
	{ast.FlagParenthesized, "parenthesized"},
}

func nodeFlags(n *ast.Node) []string {
	var out []string
	for _, f := range flagNames {
		if n.Has(f.flag) {
			out = append(out, f.name)
		}
	}
	return out
}

// nodeDetail is the one-line summary printed after the node type.
func nodeDetail(b *ast.Builder, id ast.NodeID) string {
	nodes := b.Nodes
	switch n := nodes.Get(id); n.Kind {
	case ast.KindIdent, ast.KindMetaProperty:
		return b.Name(id)
	case ast.KindLiteral:
		if lit, ok := nodes.Literal(id); ok {
			return lit.Raw
		}
	case ast.KindTemplate:
		if tpl, ok := nodes.Template(id); ok {
			return fmt.Sprintf("quasis=%d exprs=%d", len(tpl.Quasis), len(tpl.Exprs))
		}
	case ast.KindBinary, ast.KindLogical, ast.KindAssign:
		if bin, ok := nodes.Binary(id); ok {
			return bin.Op.String()
		}
	case ast.KindUnary, ast.KindUpdate:
		if un, ok := nodes.Unary(id); ok {
			if n.Kind == ast.KindUpdate && !un.Prefix {
				return "postfix " + un.Op.String()
			}
			return un.Op.String()
		}
	case ast.KindVarDecl:
		if vd, ok := nodes.VarDecl(id); ok {
			return vd.Kind.String()
		}
	case ast.KindFuncDecl, ast.KindFuncExpr, ast.KindArrow:
		if fn, ok := nodes.Function(id); ok {
			var parts []string
			if fn.Async {
				parts = append(parts, "async")
			}
			if fn.Generator {
				parts = append(parts, "generator")
			}
			if fn.Name.IsValid() {
				parts = append(parts, b.Name(fn.Name))
			}
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// formatSpan formats a span as "line:col-line:col", or by offsets without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func nodeLabel(b *ast.Builder, id ast.NodeID, fs *source.FileSet) string {
	n := b.Nodes.Get(id)
	label := n.Kind.String()
	if d := nodeDetail(b, id); d != "" {
		label += " " + d
	}
	label += " (" + formatSpan(n.Span, fs) + ")"
	if flags := nodeFlags(n); len(flags) > 0 {
		label += " [" + strings.Join(flags, ",") + "]"
	}
	return label
}

// FormatASTPretty prints the tree under root with box-drawing guides.
func FormatASTPretty(w io.Writer, b *ast.Builder, root ast.NodeID, fs *source.FileSet) error {
	if b.Nodes.Get(root) == nil {
		return fmt.Errorf("node %d not found", root)
	}
	if _, err := fmt.Fprintln(w, nodeLabel(b, root, fs)); err != nil {
		return err
	}
	writeChildren(w, b, root, fs, "")
	return nil
}

func writeChildren(w io.Writer, b *ast.Builder, id ast.NodeID, fs *source.FileSet, prefix string) {
	children := b.Nodes.Children(id)
	for i, child := range children {
		if b.Nodes.Get(child) == nil {
			continue
		}
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(b, child, fs))
		writeChildren(w, b, child, fs, prefix+next)
	}
}

// BuildASTOutput converts the tree under root into its JSON form.
func BuildASTOutput(b *ast.Builder, root ast.NodeID, fs *source.FileSet) ASTNodeOutput {
	n := b.Nodes.Get(root)
	if n == nil {
		return ASTNodeOutput{Type: "Invalid"}
	}
	out := ASTNodeOutput{
		Type:   n.Kind.String(),
		Detail: nodeDetail(b, root),
		Span:   formatSpan(n.Span, fs),
		Flags:  nodeFlags(n),
	}
	for _, child := range b.Nodes.Children(root) {
		if b.Nodes.Get(child) != nil {
			out.Children = append(out.Children, BuildASTOutput(b, child, fs))
		}
	}
	return out
}

func FormatASTJSON(w io.Writer, b *ast.Builder, root ast.NodeID, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(b, root, fs))
}
