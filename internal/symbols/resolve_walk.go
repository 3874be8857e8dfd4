package symbols

import (
	"strings"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

// биты в Scope.marks, повторяют проверки повторного объявления acorn
const (
	markLexical uint8 = 1 << iota
	markFunction
	markVar
	markSimpleCatch
)

type selfAssign struct {
	name   source.StringID
	depth  int
	active bool
}

type resolver struct {
	nodes     *ast.Nodes
	strings   *source.Interner
	res       *Result
	reporter  diag.Reporter
	globals   GlobalSet
	module    bool
	arguments source.StringID

	scope   ScopeID
	fnDepth int
	self    selfAssign
}

func (r *resolver) enter(kind ScopeKind, node ast.NodeID) ScopeID {
	var span source.Span
	if n := r.nodes.Get(node); n != nil {
		span = n.Span
	}
	id := r.res.Scopes.New(kind, r.scope, node, span)
	r.res.scopeOf[node] = id
	r.scope = id
	return id
}

func (r *resolver) statements(items []ast.NodeID) {
	for _, id := range items {
		r.visit(id)
	}
}

func (r *resolver) visit(id ast.NodeID) {
	node := r.nodes.Get(id)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.KindInvalid, ast.KindLiteral, ast.KindThis, ast.KindSuper, ast.KindMetaProperty,
		ast.KindBreak, ast.KindContinue, ast.KindEmpty, ast.KindDebugger, ast.KindExportAll:
		return
	case ast.KindIdent:
		r.reference(id, RefRead)
	case ast.KindVarDecl:
		r.varDecl(id, node, false)
	case ast.KindFuncDecl:
		if fn, ok := r.nodes.Function(id); ok && fn.Name.IsValid() {
			r.declare(fn.Name, BindingFunction, id, exportedFlag(node))
		}
		r.function(id, node)
	case ast.KindFuncExpr, ast.KindArrow:
		r.function(id, node)
	case ast.KindClassDecl, ast.KindClassExpr:
		r.class(id, node)
	case ast.KindBlock:
		saved := r.scope
		r.enter(ScopeBlock, id)
		if list, ok := r.nodes.List(id); ok {
			r.statements(list.Items)
		}
		r.scope = saved
	case ast.KindFor:
		r.forStmt(id)
	case ast.KindForIn, ast.KindForOf:
		r.forIn(id)
	case ast.KindSwitch:
		r.switchStmt(id)
	case ast.KindCatch:
		r.catchClause(id)
	case ast.KindLabeled:
		if l, ok := r.nodes.Labeled(id); ok {
			r.visit(l.Body)
		}
	case ast.KindMember:
		m, _ := r.nodes.Member(id)
		r.visit(m.Object)
		if node.Has(ast.FlagComputed) {
			r.visit(m.Property)
		}
	case ast.KindProperty, ast.KindMethod, ast.KindField:
		p, _ := r.nodes.Property(id)
		if node.Has(ast.FlagComputed) {
			r.visit(p.Key)
		}
		r.visit(p.Value)
	case ast.KindAssign:
		r.assign(id)
	case ast.KindUpdate:
		u, _ := r.nodes.Unary(id)
		if r.nodes.Kind(u.Operand) == ast.KindIdent {
			flags := RefRead | RefWrite
			if r.unusedValue(id) {
				flags |= RefSelfUpdate
			}
			r.reference(u.Operand, flags)
		} else {
			r.visit(u.Operand)
		}
	case ast.KindUnary:
		u, _ := r.nodes.Unary(id)
		if u.Op == token.KwTypeof && r.nodes.Kind(u.Operand) == ast.KindIdent {
			r.reference(u.Operand, RefRead|RefTypeof)
		} else {
			r.visit(u.Operand)
		}
	case ast.KindObjectPattern, ast.KindArrayPattern, ast.KindAssignPattern, ast.KindRest:
		r.assignTarget(id)
	case ast.KindImport:
		r.importDecl(id)
	case ast.KindExportNamed:
		r.exportNamed(id)
	default:
		// ExportDefault, выражения, if/while/try/...: обычный обход детей
		for _, c := range r.nodes.Children(id) {
			r.visit(c)
		}
	}
}

func exportedFlag(node *ast.Node) BindingFlags {
	if node.Has(ast.FlagExported) {
		return BindingExported
	}
	return 0
}

func (r *resolver) function(id ast.NodeID, node *ast.Node) {
	fn, ok := r.nodes.Function(id)
	if !ok {
		return
	}
	savedScope, savedSelf := r.scope, r.self
	if node.Kind == ast.KindFuncExpr && fn.Name.IsValid() {
		r.enter(ScopeFunctionName, id)
		r.declare(fn.Name, BindingFunction, id, BindingSelfName)
	}
	scope := r.enter(ScopeFunction, id)
	r.res.Scopes.Get(scope).Arguments = node.Kind != ast.KindArrow
	r.fnDepth++
	r.self = selfAssign{}

	for _, param := range fn.Params {
		r.bindPattern(param, BindingParam, id, 0, 0)
	}
	if fn.ExprBody {
		r.visit(fn.Body)
	} else if list, ok := r.nodes.List(fn.Body); ok {
		r.res.scopeOf[fn.Body] = scope
		r.statements(list.Items)
	}

	r.fnDepth--
	r.scope, r.self = savedScope, savedSelf
}

func (r *resolver) class(id ast.NodeID, node *ast.Node) {
	c, ok := r.nodes.Class(id)
	if !ok {
		return
	}
	if node.Kind == ast.KindClassDecl && c.Name.IsValid() {
		r.declare(c.Name, BindingClass, id, exportedFlag(node))
	}
	r.visit(c.Super)
	saved := r.scope
	r.enter(ScopeClass, id)
	if node.Kind == ast.KindClassExpr && c.Name.IsValid() {
		r.declare(c.Name, BindingClass, id, BindingSelfName)
	}
	r.statements(c.Members)
	r.scope = saved
}

func varBindingKind(k ast.VarKind) BindingKind {
	switch k {
	case ast.VarLet:
		return BindingLet
	case ast.VarConst:
		return BindingConst
	default:
		return BindingVar
	}
}

func (r *resolver) varDecl(id ast.NodeID, node *ast.Node, loopHead bool) {
	d, ok := r.nodes.VarDecl(id)
	if !ok {
		return
	}
	kind := varBindingKind(d.Kind)
	flags := exportedFlag(node)
	for _, declID := range d.Decls {
		decl, ok := r.nodes.Declarator(declID)
		if !ok {
			continue
		}
		var write RefFlags
		switch {
		case decl.Init.IsValid():
			write = RefWrite | RefInit
		case loopHead:
			write = RefWrite
		}
		r.bindPattern(decl.Target, kind, declID, flags, write)
		r.visit(decl.Init)
	}
}

func (r *resolver) isLexicalDecl(id ast.NodeID) bool {
	d, ok := r.nodes.VarDecl(id)
	return ok && d.Kind != ast.VarVar
}

func (r *resolver) forStmt(id ast.NodeID) {
	f, ok := r.nodes.For(id)
	if !ok {
		return
	}
	saved := r.scope
	if r.isLexicalDecl(f.Init) {
		r.enter(ScopeFor, id)
	}
	r.visit(f.Init)
	r.visit(f.Test)
	r.visit(f.Update)
	r.visit(f.Body)
	r.scope = saved
}

func (r *resolver) forIn(id ast.NodeID) {
	f, ok := r.nodes.ForIn(id)
	if !ok {
		return
	}
	saved := r.scope
	if r.isLexicalDecl(f.Left) {
		r.enter(ScopeFor, id)
	}
	if left := r.nodes.Get(f.Left); left != nil && left.Kind == ast.KindVarDecl {
		r.varDecl(f.Left, left, true)
	} else {
		r.assignTarget(f.Left)
	}
	r.visit(f.Right)
	r.visit(f.Body)
	r.scope = saved
}

func (r *resolver) switchStmt(id ast.NodeID) {
	s, ok := r.nodes.Switch(id)
	if !ok {
		return
	}
	r.visit(s.Disc)
	saved := r.scope
	r.enter(ScopeSwitch, id)
	for _, caseID := range s.Cases {
		c, ok := r.nodes.Case(caseID)
		if !ok {
			continue
		}
		r.visit(c.Test)
		r.statements(c.Body)
	}
	r.scope = saved
}

func (r *resolver) catchClause(id ast.NodeID) {
	c, ok := r.nodes.Catch(id)
	if !ok {
		return
	}
	saved := r.scope
	scope := r.enter(ScopeCatch, id)
	if c.Param.IsValid() {
		r.bindPattern(c.Param, BindingCatchParam, id, 0, 0)
	}
	// тело catch делит scope с параметром
	if list, ok := r.nodes.List(c.Body); ok {
		r.res.scopeOf[c.Body] = scope
		r.statements(list.Items)
	}
	r.scope = saved
}

func (r *resolver) importDecl(id ast.NodeID) {
	imp, ok := r.nodes.Import(id)
	if !ok {
		return
	}
	for _, specID := range imp.Specs {
		if spec, ok := r.nodes.Spec(specID); ok {
			r.declare(spec.Local, BindingImport, specID, 0)
		}
	}
}

func (r *resolver) exportNamed(id ast.NodeID) {
	exp, ok := r.nodes.Export(id)
	if !ok {
		return
	}
	if exp.Decl.IsValid() {
		r.visit(exp.Decl)
		return
	}
	if exp.Source.IsValid() {
		return // re-export: имена из чужого модуля
	}
	for _, specID := range exp.Specs {
		if spec, ok := r.nodes.Spec(specID); ok && r.nodes.Kind(spec.Local) == ast.KindIdent {
			r.reference(spec.Local, RefRead)
		}
	}
}

func (r *resolver) assign(id ast.NodeID) {
	a, ok := r.nodes.Binary(id)
	if !ok {
		return
	}
	leftIsIdent := r.nodes.Kind(a.Left) == ast.KindIdent
	if a.Op != token.Assign {
		if leftIsIdent {
			flags := RefRead | RefWrite
			if !a.Op.IsLogicalAssign() && r.unusedValue(id) {
				flags |= RefSelfUpdate
			}
			r.reference(a.Left, flags)
		} else {
			r.visit(a.Left)
		}
		r.visit(a.Right)
		return
	}

	r.assignTarget(a.Left)
	if !leftIsIdent || !r.unusedValue(id) || r.inLoop(id) {
		r.visit(a.Right)
		return
	}
	saved := r.self
	if ident, ok := r.nodes.Ident(a.Left); ok {
		r.self = selfAssign{name: ident.Name, depth: r.fnDepth, active: true}
	}
	r.visit(a.Right)
	r.self = saved
}

func (r *resolver) assignTarget(id ast.NodeID) {
	r.eachTarget(id, func(ident ast.NodeID) {
		r.reference(ident, RefWrite)
	})
}

// bindPattern declares every identifier of a binding pattern; write adds a
// reference with those flags for each of them (initializers, loop heads).
func (r *resolver) bindPattern(id ast.NodeID, kind BindingKind, decl ast.NodeID, flags BindingFlags, write RefFlags) {
	simpleCatch := kind == BindingCatchParam && r.nodes.Kind(id) == ast.KindIdent
	r.eachTarget(id, func(ident ast.NodeID) {
		r.declareWith(ident, kind, decl, flags, simpleCatch)
		if write != 0 {
			r.reference(ident, write)
		}
	})
}

// eachTarget calls fn for every identifier a pattern binds or assigns, and
// visits the expressions embedded in it (defaults, computed keys, members).
func (r *resolver) eachTarget(id ast.NodeID, fn func(ident ast.NodeID)) {
	node := r.nodes.Get(id)
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.KindIdent:
		fn(id)
	case ast.KindObjectPattern, ast.KindArrayPattern:
		list, _ := r.nodes.List(id)
		for _, item := range list.Items {
			r.eachTarget(item, fn)
		}
	case ast.KindProperty:
		p, _ := r.nodes.Property(id)
		if node.Has(ast.FlagComputed) {
			r.visit(p.Key)
		}
		r.eachTarget(p.Value, fn)
	case ast.KindAssignPattern:
		a, _ := r.nodes.Binary(id)
		r.eachTarget(a.Left, fn)
		r.visit(a.Right)
	case ast.KindRest:
		u, _ := r.nodes.Unary(id)
		r.eachTarget(u.Operand, fn)
	default:
		r.visit(id)
	}
}

// unusedValue reports whether the value of expression id is discarded:
// it is an expression statement or a non-final element of a sequence.
func (r *resolver) unusedValue(id ast.NodeID) bool {
	for {
		node := r.nodes.Get(id)
		if node == nil {
			return false
		}
		parent := r.nodes.Get(node.Parent)
		if parent == nil {
			return false
		}
		switch parent.Kind {
		case ast.KindExprStmt:
			return true
		case ast.KindSequence:
			seq, _ := r.nodes.List(node.Parent)
			if len(seq.Items) > 0 && seq.Items[len(seq.Items)-1] != id {
				return true
			}
			id = node.Parent
		default:
			return false
		}
	}
}

// inLoop reports whether id sits inside a loop of the same function.
func (r *resolver) inLoop(id ast.NodeID) bool {
	for node := r.nodes.Get(id); node != nil && node.Parent.IsValid(); {
		node = r.nodes.Get(node.Parent)
		if node == nil || node.Kind.IsFunction() {
			return false
		}
		if node.Kind.IsLoop() {
			return true
		}
	}
	return false
}

func (r *resolver) reference(ident ast.NodeID, flags RefFlags) {
	data, ok := r.nodes.Ident(ident)
	if !ok || r.nodes.Kind(ident) != ast.KindIdent {
		return
	}
	if name, _ := r.strings.Lookup(data.Name); name == "" || strings.HasPrefix(name, "#") {
		return
	}
	ref := Reference{
		Name:  data.Name,
		Ident: ident,
		Span:  r.nodes.Get(ident).Span,
		Scope: r.scope,
		Flags: flags,
	}
	if r.self.active && r.self.name == data.Name && r.self.depth == r.fnDepth && flags&RefRead != 0 {
		ref.Flags |= RefSelfUpdate
		ref.rhsSelf = true
	}
	r.res.refOf[ident] = r.res.Refs.New(ref)
}

func (r *resolver) declare(ident ast.NodeID, kind BindingKind, decl ast.NodeID, flags BindingFlags) {
	r.declareWith(ident, kind, decl, flags, false)
}

func (r *resolver) functionsAsVar(s *Scope) bool {
	return s.Kind == ScopeFunction || (!r.module && s.Kind == ScopeGlobal)
}

func (r *resolver) declareWith(ident ast.NodeID, kind BindingKind, decl ast.NodeID, flags BindingFlags, simpleCatch bool) {
	data, ok := r.nodes.Ident(ident)
	if !ok || data.Name == source.NoStringID {
		return
	}
	name := data.Name
	target := r.scope
	if kind == BindingVar {
		target = r.res.Scopes.Get(r.scope).VarScope
	}

	if flags&BindingSelfName == 0 && r.redeclared(name, kind, target, simpleCatch) {
		r.reportRedeclared(ident, name)
	}

	scope := r.res.Scopes.Get(target)
	if existing, ok := scope.NameIndex[name]; ok {
		r.res.bindingOf[ident] = existing
		return
	}
	id := r.res.Bindings.New(Binding{
		Name:  name,
		Kind:  kind,
		Flags: flags,
		Scope: target,
		Ident: ident,
		Decl:  decl,
	})
	scope.NameIndex[name] = id
	scope.Bindings = append(scope.Bindings, id)
	r.res.bindingOf[ident] = id
}

// redeclared applies the early-error rules for duplicate declarations and
// records the name in the marks of the scopes it occupies.
func (r *resolver) redeclared(name source.StringID, kind BindingKind, target ScopeID, simpleCatch bool) bool {
	cur := r.res.Scopes.Get(r.scope)
	asVar := kind == BindingVar || kind == BindingParam
	if kind == BindingFunction && r.module {
		// модульный код строгий: функция ведёт себя как var только на верхнем уровне функции
		if r.functionsAsVar(cur) {
			asVar = true
		} else {
			kind = BindingLet
		}
	}
	switch {
	case asVar:
		for id := r.scope; ; {
			s := r.res.Scopes.Get(id)
			m := s.marks[name]
			if m&markLexical != 0 && m&markSimpleCatch == 0 || m&markFunction != 0 && !r.functionsAsVar(s) {
				return true
			}
			mark(s, name, markVar)
			if id == target || !s.Parent.IsValid() {
				return false
			}
			id = s.Parent
		}
	case kind == BindingFunction:
		conflict := cur.marks[name]&markLexical != 0
		if !r.functionsAsVar(cur) {
			conflict = cur.marks[name]&(markLexical|markVar) != 0
		}
		mark(cur, name, markFunction)
		return conflict
	case simpleCatch:
		mark(cur, name, markLexical|markSimpleCatch)
		return false
	default:
		conflict := cur.marks[name] != 0
		mark(cur, name, markLexical)
		return conflict
	}
}

func mark(s *Scope, name source.StringID, bits uint8) {
	if s.marks == nil {
		s.marks = make(map[source.StringID]uint8)
	}
	s.marks[name] |= bits
}

func (r *resolver) reportRedeclared(ident ast.NodeID, name source.StringID) {
	if r.reporter == nil {
		return
	}
	text, _ := r.strings.Lookup(name)
	diag.ReportError(r.reporter, diag.SynRedeclared, r.nodes.Get(ident).Span,
		diag.ParsingErrorPrefix+"Identifier '"+text+"' has already been declared").Emit()
}

// bind resolves every reference against the finished scope tree.
func (r *resolver) bind() {
	res := r.res
	for i := 1; i <= res.Refs.Len(); i++ {
		refID := RefID(i)
		ref := res.Refs.Get(refID)
		for s := res.Scopes.Get(ref.Scope); s != nil; s = res.Scopes.Get(s.Parent) {
			if b, ok := s.NameIndex[ref.Name]; ok {
				ref.Binding = b
				break
			}
			if s.Arguments && ref.Name == r.arguments {
				ref.Implicit = true
				break
			}
		}
		if ref.Binding.IsValid() {
			binding := res.Bindings.Get(ref.Binding)
			binding.Refs = append(binding.Refs, refID)
			if ref.rhsSelf && res.VarScopeOf(ref.Scope) != res.VarScopeOf(binding.Scope) {
				ref.Flags &^= RefSelfUpdate
			}
			continue
		}
		ref.Flags &^= RefSelfUpdate
		if !ref.Implicit && r.globals.Has(res.Name(ref.Name)) {
			ref.Implicit = true
		}
		if !ref.Implicit {
			res.Unresolved = append(res.Unresolved, refID)
		}
	}
}
