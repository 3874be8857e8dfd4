package ast

// Children returns the direct children of id in source order. Absent optional
// children (NoNodeID) are skipped, array holes included.
func (n *Nodes) Children(id NodeID) []NodeID {
	node := n.Get(id)
	if node == nil {
		return nil
	}
	out := make([]NodeID, 0, 4)
	add := func(ids ...NodeID) {
		for _, c := range ids {
			if c.IsValid() {
				out = append(out, c)
			}
		}
	}
	switch payloadClassOf[node.Kind] {
	case pcList:
		d, _ := n.List(id)
		add(d.Items...)
	case pcTemplate:
		d, _ := n.Template(id)
		add(d.Tag)
		add(d.Exprs...)
	case pcBinary:
		d, _ := n.Binary(id)
		add(d.Left, d.Right)
	case pcUnary:
		d, _ := n.Unary(id)
		add(d.Operand)
	case pcCall:
		d, _ := n.Call(id)
		add(d.Callee)
		add(d.Args...)
	case pcMember:
		d, _ := n.Member(id)
		add(d.Object, d.Property)
	case pcCond:
		d, _ := n.Cond(id)
		add(d.Test, d.Cons, d.Alt)
	case pcProperty:
		d, _ := n.Property(id)
		if d.Shorthand && d.Key == d.Value {
			add(d.Key)
		} else {
			add(d.Key, d.Value)
		}
	case pcFunction:
		d, _ := n.Function(id)
		add(d.Name)
		add(d.Params...)
		add(d.Body)
	case pcVarDecl:
		d, _ := n.VarDecl(id)
		add(d.Decls...)
	case pcDeclarator:
		d, _ := n.Declarator(id)
		add(d.Target, d.Init)
	case pcFor:
		d, _ := n.For(id)
		add(d.Init, d.Test, d.Update, d.Body)
	case pcForIn:
		d, _ := n.ForIn(id)
		add(d.Left, d.Right, d.Body)
	case pcWhile:
		d, _ := n.While(id)
		if node.Kind == KindDoWhile {
			add(d.Body, d.Test)
		} else {
			add(d.Test, d.Body)
		}
	case pcWrap:
		d, _ := n.Wrap(id)
		add(d.Expr)
	case pcSwitch:
		d, _ := n.Switch(id)
		add(d.Disc)
		add(d.Cases...)
	case pcCase:
		d, _ := n.Case(id)
		add(d.Test)
		add(d.Body...)
	case pcTry:
		d, _ := n.Try(id)
		add(d.Block, d.Handler, d.Finalizer)
	case pcCatch:
		d, _ := n.Catch(id)
		add(d.Param, d.Body)
	case pcClass:
		d, _ := n.Class(id)
		add(d.Name, d.Super)
		add(d.Members...)
	case pcImport:
		d, _ := n.Import(id)
		add(d.Specs...)
		add(d.Source)
	case pcSpec:
		d, _ := n.Spec(id)
		add(specChildren(n, node.Kind, d)...)
	case pcExport:
		d, _ := n.Export(id)
		add(d.Exported, d.Decl)
		add(d.Specs...)
		add(d.Source)
	case pcJump:
		d, _ := n.Jump(id)
		add(d.Label)
	case pcLabeled:
		d, _ := n.Labeled(id)
		add(d.Label, d.Body)
	}
	return out
}

// import {remote as local} / export {local as remote}
func specChildren(n *Nodes, kind NodeKind, d *SpecData) []NodeID {
	if !d.Remote.IsValid() || d.Remote == d.Local {
		return []NodeID{d.Local}
	}
	if kind == KindExportSpec {
		return []NodeID{d.Local, d.Remote}
	}
	return []NodeID{d.Remote, d.Local}
}

// Visitor receives Enter before the children of a node and Leave after them.
// Returning false from Enter skips the subtree (Leave is still called).
type Visitor interface {
	Enter(id NodeID, node *Node) bool
	Leave(id NodeID, node *Node)
}

// Walk traverses the subtree rooted at id depth-first in source order.
func (n *Nodes) Walk(id NodeID, v Visitor) {
	node := n.Get(id)
	if node == nil {
		return
	}
	if v.Enter(id, node) {
		for _, c := range n.Children(id) {
			n.Walk(c, v)
		}
	}
	v.Leave(id, node)
}

type inspector func(NodeID, *Node) bool

func (f inspector) Enter(id NodeID, node *Node) bool { return f(id, node) }
func (f inspector) Leave(NodeID, *Node)              {}

// Inspect calls fn for every node of the subtree in pre-order; returning
// false stops descent into that node's children.
func (n *Nodes) Inspect(id NodeID, fn func(NodeID, *Node) bool) {
	n.Walk(id, inspector(fn))
}

// Ancestor returns the closest ancestor of id (exclusive) for which match
// returns true, or NoNodeID.
func (n *Nodes) Ancestor(id NodeID, match func(*Node) bool) NodeID {
	node := n.Get(id)
	for node != nil && node.Parent.IsValid() {
		id = node.Parent
		node = n.Get(id)
		if node != nil && match(node) {
			return id
		}
	}
	return NoNodeID
}
