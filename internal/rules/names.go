package rules

import (
	"strings"

	"lintel/internal/ast"
)

// functionNameWithKind describes a function the way ESLint messages do:
// "function 'f'", "arrow function", "static async method 'm'", "getter 'x'".
func functionNameWithKind(p *Pass, id ast.NodeID) string {
	nodes := p.Nodes()
	node := nodes.Get(id)
	fn, ok := nodes.Function(id)
	if node == nil || !ok {
		return "function"
	}
	parentID := node.Parent
	parent := nodes.Get(parentID)
	prop, inProp := nodes.Property(parentID)
	if inProp && prop.Value != id {
		inProp = false // функция в ключе или в чём-то ещё
	}

	var words []string
	private := false
	if inProp && parent.Kind != ast.KindProperty {
		if prop.Static {
			words = append(words, "static")
		}
		if !parent.Has(ast.FlagComputed) && strings.HasPrefix(p.Name(prop.Key), "#") {
			private = true
			words = append(words, "private")
		}
	}
	if fn.Async {
		words = append(words, "async")
	}
	if fn.Generator {
		words = append(words, "generator")
	}

	switch {
	case inProp && parent.Kind != ast.KindField:
		switch prop.Kind {
		case ast.PropConstructor:
			return "constructor"
		case ast.PropGet:
			words = append(words, "getter")
		case ast.PropSet:
			words = append(words, "setter")
		default:
			words = append(words, "method")
		}
	case inProp:
		words = append(words, "method")
	default:
		if node.Kind == ast.KindArrow {
			words = append(words, "arrow")
		}
		words = append(words, "function")
	}

	switch {
	case inProp && private:
		words = append(words, p.Name(prop.Key))
	case inProp:
		if name, ok := staticPropertyName(p, parentID, prop); ok {
			words = append(words, "'"+name+"'")
		} else if fn.Name.IsValid() {
			words = append(words, "'"+p.Name(fn.Name)+"'")
		}
	case fn.Name.IsValid():
		words = append(words, "'"+p.Name(fn.Name)+"'")
	}
	return strings.Join(words, " ")
}

// staticPropertyName returns the key of a property when it is known without
// evaluation: identifiers, string/number literals and plain templates.
func staticPropertyName(p *Pass, propID ast.NodeID, prop *ast.PropertyData) (string, bool) {
	nodes := p.Nodes()
	computed := nodes.Get(propID).Has(ast.FlagComputed)
	key := prop.Key
	switch nodes.Kind(key) {
	case ast.KindIdent:
		if computed {
			return "", false
		}
		return p.Name(key), true
	case ast.KindLiteral:
		lit, _ := nodes.Literal(key)
		switch lit.Kind {
		case ast.LitString:
			return lit.Value, true
		case ast.LitRegexp, ast.LitBigInt:
			return lit.Raw, true
		case ast.LitNull:
			return "null", true
		default:
			return lit.Raw, true
		}
	case ast.KindTemplate:
		tpl, _ := nodes.Template(key)
		if computed && len(tpl.Exprs) == 0 && len(tpl.Quasis) == 1 {
			return tpl.Quasis[0].Cooked, true
		}
	}
	return "", false
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
