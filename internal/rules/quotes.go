package rules

import (
	"lintel/internal/ast"
	"lintel/internal/diag"
)

// Quotes enforces one string delimiter. Template literals that use no
// template feature count as strings in "single" and "double" mode.
var Quotes = &Rule{
	ID:              "quotes",
	DefaultSeverity: diag.SevWarning,
	DefaultOption:   "single",
	Doc:             "Enforce the consistent use of either backticks, double, or single quotes",
	CheckOption:     oneOf("single", "double", "backtick"),
	Run:             runQuotes,
}

var quoteStyles = map[string]struct {
	quote       byte
	description string
}{
	"single":   {'\'', "singlequote"},
	"double":   {'"', "doublequote"},
	"backtick": {'`', "backtick"},
}

func runQuotes(p *Pass) {
	mode := p.StringOption("single")
	style, ok := quoteStyles[mode]
	if !ok {
		style = quoteStyles["single"]
		mode = "single"
	}
	nodes := p.Nodes()
	nodes.Inspect(p.Unit.Program, func(id ast.NodeID, n *ast.Node) bool {
		switch n.Kind {
		case ast.KindLiteral:
			lit, _ := nodes.Literal(id)
			if lit.Kind != ast.LitString || lit.Quote == style.quote {
				return true
			}
			if mode == "backtick" && allowedAsNonBacktick(p, id, n) {
				return true
			}
			p.Reportf(n.Span, "Strings must use %s.", style.description)
		case ast.KindTemplate:
			if mode == "backtick" {
				return true
			}
			tpl, _ := nodes.Template(id)
			if len(tpl.Exprs) > 0 || tpl.Multiline {
				return true
			}
			p.Reportf(n.Span, "Strings must use %s.", style.description)
		}
		return true
	})
}

// allowedAsNonBacktick lists the places where the grammar forbids a template:
// directives, property keys and module specifiers.
func allowedAsNonBacktick(p *Pass, id ast.NodeID, n *ast.Node) bool {
	nodes := p.Nodes()
	parentID := n.Parent
	parent := nodes.Get(parentID)
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case ast.KindExprStmt:
		return parent.Has(ast.FlagDirective) && !n.Has(ast.FlagParenthesized)
	case ast.KindProperty, ast.KindMethod, ast.KindField:
		prop, _ := nodes.Property(parentID)
		return prop.Key == id && !parent.Has(ast.FlagComputed)
	case ast.KindImport:
		imp, _ := nodes.Import(parentID)
		return imp.Source == id
	case ast.KindExportNamed, ast.KindExportAll:
		exp, _ := nodes.Export(parentID)
		return exp.Source == id || exp.Exported == id
	case ast.KindImportSpec, ast.KindExportSpec:
		return true
	}
	return false
}
