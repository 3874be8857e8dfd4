package rules

import (
	"fmt"

	"lintel/internal/ast"
	"lintel/internal/diag"
)

const defaultMaxComplexity = 10

// Complexity bounds the cyclomatic complexity of every function.
var Complexity = &Rule{
	ID:              "complexity",
	DefaultSeverity: diag.SevWarning,
	DefaultOption:   defaultMaxComplexity,
	Doc:             "Enforce a maximum cyclomatic complexity allowed in a program",
	CheckOption: func(opt any) error {
		if n, ok := toInt(opt); !ok || n < 0 {
			return fmt.Errorf("option must be a non-negative integer, got %v", opt)
		}
		return nil
	},
	Run: runComplexity,
}

type complexityFrame struct {
	node  ast.NodeID
	count int
	// field: initializer of a class field, measured on its own
	field bool
}

type complexityVisitor struct {
	p      *Pass
	max    int
	frames []complexityFrame
}

func runComplexity(p *Pass) {
	v := &complexityVisitor{p: p, max: p.IntOption(defaultMaxComplexity)}
	p.Nodes().Walk(p.Unit.Program, v)
}

// fieldInit reports whether id is the initializer of a class field.
func (v *complexityVisitor) fieldInit(id ast.NodeID, n *ast.Node) bool {
	nodes := v.p.Nodes()
	if nodes.Kind(n.Parent) != ast.KindField {
		return false
	}
	prop, _ := nodes.Property(n.Parent)
	return prop.Value == id
}

func (v *complexityVisitor) Enter(id ast.NodeID, n *ast.Node) bool {
	if v.fieldInit(id, n) {
		v.frames = append(v.frames, complexityFrame{node: id, count: 1, field: true})
	}
	if n.Kind.IsFunction() {
		v.frames = append(v.frames, complexityFrame{node: id, count: 1})
	}
	if len(v.frames) > 0 && v.increments(id, n) {
		v.frames[len(v.frames)-1].count++
	}
	return true
}

func (v *complexityVisitor) Leave(id ast.NodeID, n *ast.Node) {
	for len(v.frames) > 0 && v.frames[len(v.frames)-1].node == id {
		top := v.frames[len(v.frames)-1]
		v.frames = v.frames[:len(v.frames)-1]
		if top.count <= v.max {
			continue
		}
		name := "class field initializer"
		if !top.field {
			name = functionNameWithKind(v.p, id)
		}
		v.p.Reportf(n.Span, "%s has a complexity of %d. Maximum allowed is %d.", upperFirst(name), top.count, v.max)
	}
}

func (v *complexityVisitor) increments(id ast.NodeID, n *ast.Node) bool {
	nodes := v.p.Nodes()
	switch n.Kind {
	case ast.KindIf, ast.KindConditional, ast.KindLogical, ast.KindCatch,
		ast.KindFor, ast.KindForIn, ast.KindForOf, ast.KindWhile, ast.KindDoWhile:
		return true
	case ast.KindCase:
		c, _ := nodes.Case(id)
		return c.Test.IsValid()
	case ast.KindAssign:
		a, _ := nodes.Binary(id)
		return a.Op.IsLogicalAssign()
	}
	return false
}
