package ast

import (
	"fmt"

	"lintel/internal/source"
	"lintel/internal/token"
)

// Nodes manages allocation of nodes and their payloads.
type Nodes struct {
	Arena       *Arena[Node]
	Lists       *Arena[ListData]
	Idents      *Arena[IdentData]
	Literals    *Arena[LiteralData]
	Templates   *Arena[TemplateData]
	Binaries    *Arena[BinaryData]
	Unaries     *Arena[UnaryData]
	Calls       *Arena[CallData]
	Members     *Arena[MemberData]
	Conds       *Arena[CondData]
	Properties  *Arena[PropertyData]
	Functions   *Arena[FunctionData]
	VarDecls    *Arena[VarDeclData]
	Declarators *Arena[DeclaratorData]
	Fors        *Arena[ForData]
	ForIns      *Arena[ForInData]
	Whiles      *Arena[WhileData]
	Wraps       *Arena[WrapData]
	Switches    *Arena[SwitchData]
	Cases       *Arena[CaseData]
	Tries       *Arena[TryData]
	Catches     *Arena[CatchData]
	Classes     *Arena[ClassData]
	Imports     *Arena[ImportData]
	Specs       *Arena[SpecData]
	Exports     *Arena[ExportData]
	Jumps       *Arena[JumpData]
	Labeleds    *Arena[LabeledData]
}

// NewNodes creates a new Nodes with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used. Rare payloads get a
// smaller share.
func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Nodes{
		Arena:       NewArena[Node](capHint),
		Lists:       NewArena[ListData](capHint / 4),
		Idents:      NewArena[IdentData](capHint / 2),
		Literals:    NewArena[LiteralData](capHint / 4),
		Templates:   NewArena[TemplateData](small),
		Binaries:    NewArena[BinaryData](capHint / 4),
		Unaries:     NewArena[UnaryData](small),
		Calls:       NewArena[CallData](capHint / 4),
		Members:     NewArena[MemberData](capHint / 4),
		Conds:       NewArena[CondData](small),
		Properties:  NewArena[PropertyData](small),
		Functions:   NewArena[FunctionData](small),
		VarDecls:    NewArena[VarDeclData](small),
		Declarators: NewArena[DeclaratorData](small),
		Fors:        NewArena[ForData](small),
		ForIns:      NewArena[ForInData](small),
		Whiles:      NewArena[WhileData](small),
		Wraps:       NewArena[WrapData](capHint / 4),
		Switches:    NewArena[SwitchData](small),
		Cases:       NewArena[CaseData](small),
		Tries:       NewArena[TryData](small),
		Catches:     NewArena[CatchData](small),
		Classes:     NewArena[ClassData](small),
		Imports:     NewArena[ImportData](small),
		Specs:       NewArena[SpecData](small),
		Exports:     NewArena[ExportData](small),
		Jumps:       NewArena[JumpData](small),
		Labeleds:    NewArena[LabeledData](small),
	}
}

func (n *Nodes) new(kind NodeKind, class payloadClass, span source.Span, payload uint32) NodeID {
	if payloadClassOf[kind] != class {
		panic(fmt.Errorf("ast: node kind %s does not take this payload", kind))
	}
	id := NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
	// дети создаются раньше родителя, проставляем обратные ссылки
	for _, child := range n.Children(id) {
		n.Get(child).Parent = id
	}
	return id
}

// Get returns the node with the given ID or nil.
func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid for absent nodes.
func (n *Nodes) Kind(id NodeID) NodeKind {
	if node := n.Get(id); node != nil {
		return node.Kind
	}
	return KindInvalid
}

// SetKind reinterprets a node as another kind with the same payload shape
// (e.g. an ObjectExpression re-read as an ObjectPattern).
func (n *Nodes) SetKind(id NodeID, kind NodeKind) bool {
	node := n.Get(id)
	if node == nil || payloadClassOf[node.Kind] != payloadClassOf[kind] {
		return false
	}
	node.Kind = kind
	return true
}

// SetFlag sets f on id.
func (n *Nodes) SetFlag(id NodeID, f NodeFlags) {
	if node := n.Get(id); node != nil {
		node.Flags |= f
	}
}

// SetSpan replaces the span of id.
func (n *Nodes) SetSpan(id NodeID, sp source.Span) {
	if node := n.Get(id); node != nil {
		node.Span = sp
	}
}

func payloadOf[T any](n *Nodes, arena *Arena[T], id NodeID, class payloadClass) (*T, bool) {
	node := n.Get(id)
	if node == nil || payloadClassOf[node.Kind] != class {
		return nil, false
	}
	return arena.Get(uint32(node.Payload)), true
}

// NewLeaf creates a node without payload: Invalid, Empty, Debugger, This, Super.
func (n *Nodes) NewLeaf(kind NodeKind, span source.Span) NodeID {
	return n.new(kind, pcNone, span, 0)
}

// NewList creates a node whose children are an ordered list.
func (n *Nodes) NewList(kind NodeKind, span source.Span, items []NodeID) NodeID {
	p := n.Lists.Allocate(ListData{Items: append([]NodeID(nil), items...)})
	return n.new(kind, pcList, span, p)
}

// List returns the list data for the given node ID.
func (n *Nodes) List(id NodeID) (*ListData, bool) { return payloadOf(n, n.Lists, id, pcList) }

// NewIdent creates a new identifier.
func (n *Nodes) NewIdent(span source.Span, name source.StringID) NodeID {
	p := n.Idents.Allocate(IdentData{Name: name})
	return n.new(KindIdent, pcIdent, span, p)
}

// NewMetaProperty creates new.target / import.meta.
func (n *Nodes) NewMetaProperty(span source.Span, name source.StringID) NodeID {
	p := n.Idents.Allocate(IdentData{Name: name})
	return n.new(KindMetaProperty, pcIdent, span, p)
}

// Ident returns the identifier data for the given node ID.
func (n *Nodes) Ident(id NodeID) (*IdentData, bool) { return payloadOf(n, n.Idents, id, pcIdent) }

// NewLiteral creates a new literal.
func (n *Nodes) NewLiteral(span source.Span, data LiteralData) NodeID {
	p := n.Literals.Allocate(data)
	return n.new(KindLiteral, pcLiteral, span, p)
}

// Literal returns the literal data for the given node ID.
func (n *Nodes) Literal(id NodeID) (*LiteralData, bool) {
	return payloadOf(n, n.Literals, id, pcLiteral)
}

// NewTemplate creates a template literal (tag == NoNodeID) or a tagged template.
func (n *Nodes) NewTemplate(span source.Span, tag NodeID, quasis []TemplateQuasi, exprs []NodeID, multiline bool) NodeID {
	kind := KindTemplate
	if tag.IsValid() {
		kind = KindTaggedTemplate
	}
	p := n.Templates.Allocate(TemplateData{
		Tag:       tag,
		Quasis:    append([]TemplateQuasi(nil), quasis...),
		Exprs:     append([]NodeID(nil), exprs...),
		Multiline: multiline,
	})
	return n.new(kind, pcTemplate, span, p)
}

// Template returns the template data for the given node ID.
func (n *Nodes) Template(id NodeID) (*TemplateData, bool) {
	return payloadOf(n, n.Templates, id, pcTemplate)
}

// NewBinary creates Binary, Logical, Assign or AssignPattern.
func (n *Nodes) NewBinary(kind NodeKind, span source.Span, op token.Kind, left, right NodeID) NodeID {
	p := n.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return n.new(kind, pcBinary, span, p)
}

// Binary returns the binary data for the given node ID.
func (n *Nodes) Binary(id NodeID) (*BinaryData, bool) {
	return payloadOf(n, n.Binaries, id, pcBinary)
}

// NewUnary creates Unary, Update, Await, Yield, Spread, Rest or ImportCall.
func (n *Nodes) NewUnary(kind NodeKind, span source.Span, op token.Kind, operand NodeID, prefix bool) NodeID {
	p := n.Unaries.Allocate(UnaryData{Op: op, Operand: operand, Prefix: prefix})
	return n.new(kind, pcUnary, span, p)
}

// Unary returns the unary data for the given node ID.
func (n *Nodes) Unary(id NodeID) (*UnaryData, bool) {
	return payloadOf(n, n.Unaries, id, pcUnary)
}

// NewCall creates Call or New.
func (n *Nodes) NewCall(kind NodeKind, span source.Span, callee NodeID, args []NodeID) NodeID {
	p := n.Calls.Allocate(CallData{Callee: callee, Args: append([]NodeID(nil), args...)})
	return n.new(kind, pcCall, span, p)
}

// Call returns the call data for the given node ID.
func (n *Nodes) Call(id NodeID) (*CallData, bool) { return payloadOf(n, n.Calls, id, pcCall) }

// NewMember creates a member access; computed/optional go to flags.
func (n *Nodes) NewMember(span source.Span, object, property NodeID) NodeID {
	p := n.Members.Allocate(MemberData{Object: object, Property: property})
	return n.new(KindMember, pcMember, span, p)
}

// Member returns the member data for the given node ID.
func (n *Nodes) Member(id NodeID) (*MemberData, bool) {
	return payloadOf(n, n.Members, id, pcMember)
}

// NewCond creates If or Conditional.
func (n *Nodes) NewCond(kind NodeKind, span source.Span, test, cons, alt NodeID) NodeID {
	p := n.Conds.Allocate(CondData{Test: test, Cons: cons, Alt: alt})
	return n.new(kind, pcCond, span, p)
}

// Cond returns the if/conditional data for the given node ID.
func (n *Nodes) Cond(id NodeID) (*CondData, bool) { return payloadOf(n, n.Conds, id, pcCond) }

// NewProperty creates Property, Method or Field.
func (n *Nodes) NewProperty(kind NodeKind, span source.Span, data PropertyData) NodeID {
	p := n.Properties.Allocate(data)
	return n.new(kind, pcProperty, span, p)
}

// Property returns the property data for the given node ID.
func (n *Nodes) Property(id NodeID) (*PropertyData, bool) {
	return payloadOf(n, n.Properties, id, pcProperty)
}

// NewFunction creates FuncDecl, FuncExpr or Arrow.
func (n *Nodes) NewFunction(kind NodeKind, span source.Span, data FunctionData) NodeID {
	data.Params = append([]NodeID(nil), data.Params...)
	p := n.Functions.Allocate(data)
	return n.new(kind, pcFunction, span, p)
}

// Function returns the function data for the given node ID.
func (n *Nodes) Function(id NodeID) (*FunctionData, bool) {
	return payloadOf(n, n.Functions, id, pcFunction)
}

func (n *Nodes) NewVarDecl(span source.Span, kind VarKind, decls []NodeID) NodeID {
	p := n.VarDecls.Allocate(VarDeclData{Kind: kind, Decls: append([]NodeID(nil), decls...)})
	return n.new(KindVarDecl, pcVarDecl, span, p)
}

func (n *Nodes) VarDecl(id NodeID) (*VarDeclData, bool) {
	return payloadOf(n, n.VarDecls, id, pcVarDecl)
}

func (n *Nodes) NewDeclarator(span source.Span, target, init NodeID) NodeID {
	p := n.Declarators.Allocate(DeclaratorData{Target: target, Init: init})
	return n.new(KindDeclarator, pcDeclarator, span, p)
}

func (n *Nodes) Declarator(id NodeID) (*DeclaratorData, bool) {
	return payloadOf(n, n.Declarators, id, pcDeclarator)
}

func (n *Nodes) NewFor(span source.Span, data ForData) NodeID {
	p := n.Fors.Allocate(data)
	return n.new(KindFor, pcFor, span, p)
}

func (n *Nodes) For(id NodeID) (*ForData, bool) { return payloadOf(n, n.Fors, id, pcFor) }

// NewForIn creates ForIn or ForOf.
func (n *Nodes) NewForIn(kind NodeKind, span source.Span, data ForInData) NodeID {
	p := n.ForIns.Allocate(data)
	return n.new(kind, pcForIn, span, p)
}

func (n *Nodes) ForIn(id NodeID) (*ForInData, bool) { return payloadOf(n, n.ForIns, id, pcForIn) }

// NewWhile creates While, DoWhile or With.
func (n *Nodes) NewWhile(kind NodeKind, span source.Span, test, body NodeID) NodeID {
	p := n.Whiles.Allocate(WhileData{Test: test, Body: body})
	return n.new(kind, pcWhile, span, p)
}

func (n *Nodes) While(id NodeID) (*WhileData, bool) { return payloadOf(n, n.Whiles, id, pcWhile) }

// NewWrap creates ExprStmt, Return or Throw.
func (n *Nodes) NewWrap(kind NodeKind, span source.Span, expr NodeID) NodeID {
	p := n.Wraps.Allocate(WrapData{Expr: expr})
	return n.new(kind, pcWrap, span, p)
}

func (n *Nodes) Wrap(id NodeID) (*WrapData, bool) { return payloadOf(n, n.Wraps, id, pcWrap) }

func (n *Nodes) NewSwitch(span source.Span, disc NodeID, cases []NodeID) NodeID {
	p := n.Switches.Allocate(SwitchData{Disc: disc, Cases: append([]NodeID(nil), cases...)})
	return n.new(KindSwitch, pcSwitch, span, p)
}

func (n *Nodes) Switch(id NodeID) (*SwitchData, bool) {
	return payloadOf(n, n.Switches, id, pcSwitch)
}

func (n *Nodes) NewCase(span source.Span, test NodeID, body []NodeID) NodeID {
	p := n.Cases.Allocate(CaseData{Test: test, Body: append([]NodeID(nil), body...)})
	return n.new(KindCase, pcCase, span, p)
}

func (n *Nodes) Case(id NodeID) (*CaseData, bool) { return payloadOf(n, n.Cases, id, pcCase) }

func (n *Nodes) NewTry(span source.Span, block, handler, finalizer NodeID) NodeID {
	p := n.Tries.Allocate(TryData{Block: block, Handler: handler, Finalizer: finalizer})
	return n.new(KindTry, pcTry, span, p)
}

func (n *Nodes) Try(id NodeID) (*TryData, bool) { return payloadOf(n, n.Tries, id, pcTry) }

func (n *Nodes) NewCatch(span source.Span, param, body NodeID) NodeID {
	p := n.Catches.Allocate(CatchData{Param: param, Body: body})
	return n.new(KindCatch, pcCatch, span, p)
}

func (n *Nodes) Catch(id NodeID) (*CatchData, bool) { return payloadOf(n, n.Catches, id, pcCatch) }

// NewClass creates ClassDecl or ClassExpr.
func (n *Nodes) NewClass(kind NodeKind, span source.Span, name, super NodeID, members []NodeID) NodeID {
	p := n.Classes.Allocate(ClassData{Name: name, Super: super, Members: append([]NodeID(nil), members...)})
	return n.new(kind, pcClass, span, p)
}

func (n *Nodes) Class(id NodeID) (*ClassData, bool) { return payloadOf(n, n.Classes, id, pcClass) }

func (n *Nodes) NewImport(span source.Span, specs []NodeID, src NodeID) NodeID {
	p := n.Imports.Allocate(ImportData{Specs: append([]NodeID(nil), specs...), Source: src})
	return n.new(KindImport, pcImport, span, p)
}

func (n *Nodes) Import(id NodeID) (*ImportData, bool) {
	return payloadOf(n, n.Imports, id, pcImport)
}

// NewSpec creates ImportDefault, ImportNamespace, ImportSpec or ExportSpec.
func (n *Nodes) NewSpec(kind NodeKind, span source.Span, local, remote NodeID) NodeID {
	p := n.Specs.Allocate(SpecData{Local: local, Remote: remote})
	return n.new(kind, pcSpec, span, p)
}

func (n *Nodes) Spec(id NodeID) (*SpecData, bool) { return payloadOf(n, n.Specs, id, pcSpec) }

// NewExport creates ExportNamed, ExportDefault or ExportAll.
func (n *Nodes) NewExport(kind NodeKind, span source.Span, data ExportData) NodeID {
	data.Specs = append([]NodeID(nil), data.Specs...)
	p := n.Exports.Allocate(data)
	return n.new(kind, pcExport, span, p)
}

func (n *Nodes) Export(id NodeID) (*ExportData, bool) {
	return payloadOf(n, n.Exports, id, pcExport)
}

// NewJump creates Break or Continue.
func (n *Nodes) NewJump(kind NodeKind, span source.Span, label NodeID) NodeID {
	p := n.Jumps.Allocate(JumpData{Label: label})
	return n.new(kind, pcJump, span, p)
}

func (n *Nodes) Jump(id NodeID) (*JumpData, bool) { return payloadOf(n, n.Jumps, id, pcJump) }

func (n *Nodes) NewLabeled(span source.Span, label, body NodeID) NodeID {
	p := n.Labeleds.Allocate(LabeledData{Label: label, Body: body})
	return n.new(KindLabeled, pcLabeled, span, p)
}

func (n *Nodes) Labeled(id NodeID) (*LabeledData, bool) {
	return payloadOf(n, n.Labeleds, id, pcLabeled)
}
