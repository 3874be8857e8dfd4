package symbols

import (
	"fmt"
	"strings"
	"testing"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/source"
)

type resolved struct {
	res *Result
	b   *ast.Builder
	bag *diag.Bag
	fs  *source.FileSet
}

func resolveSource(t *testing.T, src string, script bool) resolved {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	sourceType := parser.SourceModule
	if script {
		sourceType = parser.SourceScript
	}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep, Strict: !script})
	b := ast.NewBuilder(ast.Hints{}, nil)
	pr := parser.ParseFile(file, toks, b, parser.Options{SourceType: sourceType, Reporter: rep})
	res := Resolve(b, pr.Program, Options{Script: script, Reporter: rep})
	return resolved{res: res, b: b, bag: bag, fs: fs}
}

func resolveOK(t *testing.T, src string) resolved {
	t.Helper()
	r := resolveSource(t, src, false)
	if r.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, r.bag.Items())
	}
	return r
}

func (r resolved) names(ids []RefID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.res.Name(r.res.Ref(id).Name))
	}
	return out
}

// allRefs renders every reference as name[:flags] in source order.
func (r resolved) allRefs() string {
	parts := make([]string, 0, r.res.Refs.Len())
	for i := 1; i <= r.res.Refs.Len(); i++ {
		ref := r.res.Ref(RefID(i))
		s := r.res.Name(ref.Name) + ":"
		if ref.IsRead() {
			s += "r"
		}
		if ref.IsWrite() {
			s += "w"
		}
		if ref.Has(RefInit) {
			s += "i"
		}
		if ref.Has(RefTypeof) {
			s += "t"
		}
		if ref.Has(RefSelfUpdate) {
			s += "s"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (r resolved) binding(t *testing.T, scope ScopeID, name string) *Binding {
	t.Helper()
	id, ok := r.res.Lookup(scope, name)
	if !ok {
		t.Fatalf("binding %q not found", name)
	}
	return r.res.Binding(id)
}

func TestHoisting(t *testing.T) {
	r := resolveOK(t, "f(x);\nfunction f() {}\nvar x = 1;\n")
	if len(r.res.Unresolved) != 0 {
		t.Fatalf("unexpected unresolved: %v", r.names(r.res.Unresolved))
	}
	if got := len(r.binding(t, r.res.Root, "f").Refs); got != 1 {
		t.Fatalf("f refs = %d, want 1", got)
	}
	if got := len(r.binding(t, r.res.Root, "x").Refs); got != 2 {
		t.Fatalf("x refs = %d, want 2", got)
	}
}

func TestUnresolvedAndGlobals(t *testing.T) {
	r := resolveOK(t, "y();\nconsole.log(window, process, undefined, globalThis);\ntypeof z;\nfetch(require);\n")
	got := strings.Join(r.names(r.res.Unresolved), ",")
	if got != "y,z" {
		t.Fatalf("unresolved = %s, want y,z", got)
	}
	last := r.res.Ref(r.res.Unresolved[1])
	if !last.Has(RefTypeof) {
		t.Fatalf("typeof operand not flagged")
	}
	for i := 1; i <= r.res.Refs.Len(); i++ {
		ref := r.res.Ref(RefID(i))
		if name := r.res.Name(ref.Name); name != "y" && name != "z" && !ref.Implicit {
			t.Fatalf("%s should resolve to an environment global", name)
		}
	}
}

func TestEnvironmentSelection(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("env.js", []byte("window; process; Map;\n")))
	b := ast.NewBuilder(ast.Hints{}, nil)
	pr := parser.ParseFile(file, lexer.Tokenize(file, lexer.Options{}), b, parser.Options{})
	res := Resolve(b, pr.Program, Options{Envs: EnvES2021 | EnvNode})
	if len(res.Unresolved) != 1 || res.Name(res.Ref(res.Unresolved[0]).Name) != "window" {
		t.Fatalf("only window should be unresolved without the browser env")
	}

	env, err := ParseEnvs("browser, node")
	if err != nil || env != EnvBrowser|EnvNode {
		t.Fatalf("ParseEnvs = %v, %v", env, err)
	}
	if _, err := ParseEnvs("jquery"); err == nil {
		t.Fatalf("unknown environment accepted")
	}
}

func TestBlockScoping(t *testing.T) {
	r := resolveOK(t, "{ let a = 1; var b = 2; }\na; b;\nfor (let i = 0; i < 1; i++) {}\ni;\n")
	got := strings.Join(r.names(r.res.Unresolved), ",")
	if got != "a,i" {
		t.Fatalf("unresolved = %s, want a,i", got)
	}
}

func TestShadowedGlobal(t *testing.T) {
	r := resolveOK(t, "function g(eval) { eval('x'); }\neval('y');\n")
	var shadowed, global int
	for i := 1; i <= r.res.Refs.Len(); i++ {
		ref := r.res.Ref(RefID(i))
		if r.res.Name(ref.Name) != "eval" {
			continue
		}
		if ref.Resolved() {
			shadowed++
		} else if ref.Implicit {
			global++
		}
	}
	if shadowed != 1 || global != 1 {
		t.Fatalf("shadowed=%d global=%d, want 1 and 1", shadowed, global)
	}
}

func TestArguments(t *testing.T) {
	r := resolveOK(t, "function f() { return arguments; }\nconst g = () => arguments;\n")
	got := strings.Join(r.names(r.res.Unresolved), ",")
	if got != "arguments" {
		t.Fatalf("unresolved = %q, want only the arrow's arguments", got)
	}
}

func TestReferenceFlags(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let x = 0; x++;", "x:wi x:rws"},
		{"let x = 0; x += 1;", "x:wi x:rws"},
		{"let x = 0; x ||= 1;", "x:wi x:rw"},
		{"let x = 0; f(x++);", "x:wi f:r x:rw"},
		{"let x = 0; x = x + 1;", "x:wi x:w x:rs"},
		{"let x = 0; while (c) { x = x + 1; }", "x:wi c:r x:w x:r"},
		{"let x = 0; x = () => x;", "x:wi x:w x:r"},
		{"typeof q;", "q:rt"},
		{"let a, b; [a, b] = [b, a];", "a:w b:w b:r a:r"},
		{"for (const k in o) {}", "k:w o:r"},
		{"let o = {}; o.p = 1;", "o:wi o:r"},
		{"let x = 0; x++, y;", "x:wi x:rws y:r"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			r := resolveSource(t, tt.src, false)
			if got := r.allRefs(); got != tt.want {
				t.Fatalf("refs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNonReferences(t *testing.T) {
	src := "o.p;\n({ k: v, [c]: 1, s });\nlabel: for (;;) { break label; }\nclass C { #f = 1; m() { return this.#f; } static n = 2; }\nimport.meta;\nexport { s as t };\nexport { u } from 'mod';\n"
	r := resolveSource(t, src, false)
	if got := r.allRefs(); got != "o:r v:r c:r s:r s:r" {
		t.Fatalf("refs = %q", got)
	}
}

func TestImportsAndExports(t *testing.T) {
	r := resolveOK(t, "import d, { a as b } from 'm';\nimport * as ns from 'n';\nexport const e = 1;\nexport function f() {}\nexport default class K {}\nlet local;\n")
	for _, tt := range []struct {
		name     string
		kind     BindingKind
		exported bool
	}{
		{"d", BindingImport, false},
		{"b", BindingImport, false},
		{"ns", BindingImport, false},
		{"e", BindingConst, true},
		{"f", BindingFunction, true},
		{"K", BindingClass, true},
		{"local", BindingLet, false},
	} {
		b := r.binding(t, r.res.Root, tt.name)
		if b.Kind != tt.kind || b.Has(BindingExported) != tt.exported {
			t.Fatalf("%s: kind=%s exported=%v", tt.name, b.Kind, b.Has(BindingExported))
		}
	}
	if _, ok := r.res.Lookup(r.res.Root, "a"); ok {
		t.Fatalf("imported remote name must not be bound")
	}
}

func TestScopeTree(t *testing.T) {
	r := resolveOK(t, "function f(a) { let b; try {} catch (e) {} }\nconst g = function h() {};\nswitch (g) { case 1: let c; }\n")
	want := strings.Join([]string{
		"global",
		"  module f:function/0 g:const/2",
		"    function a:param/0 b:let/0",
		"      block",
		"      catch e:catch/0",
		"    function-expression-name h:function/0",
		"      function",
		"    switch c:let/0",
		"",
	}, "\n")
	if got := r.res.Dump(); got != want {
		t.Fatalf("scope tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestScriptHasNoModuleScope(t *testing.T) {
	r := resolveSource(t, "var a = 1;\nfunction f() {}\nfunction f() {}\n", true)
	if r.bag.Len() != 0 {
		t.Fatalf("script allows duplicate top-level functions: %v", r.bag.Items())
	}
	if r.res.Root != r.res.Global {
		t.Fatalf("script root must be the global scope")
	}
	if r.res.Scope(r.res.Global).Kind != ScopeGlobal {
		t.Fatalf("unexpected root kind")
	}
}

func TestRedeclaration(t *testing.T) {
	tests := []struct {
		src  string
		want string // "" означает без ошибок
	}{
		{"let a; let a;", "1:12"},
		{"const a = 1; var a;", "1:18"},
		{"var a; let a;", "1:12"},
		{"var a; var a;", ""},
		{"let a; { var a; }", "1:14"},
		{"{ let a; } var a;", ""},
		{"try {} catch (e) { let e; }", "1:24"},
		{"try {} catch (e) { var e; }", ""},
		{"try {} catch ([e]) { var e; }", "1:26"},
		{"function f(a) { let a; }", "1:21"},
		{"function f(a) { var a; }", ""},
		{"function f() {} function f() {}", "1:26"},
		{"function g() { function f() {} function f() {} }", ""},
		{"let f; function f() {}", "1:17"},
		{"class C {} class C {}", "1:18"},
		{"import a from 'x'; let a;", "1:24"},
		{"switch (x) { case 1: let a; case 2: let a; }", "1:41"},
		{"const g = function g() {};", ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			r := resolveSource(t, tt.src, false)
			var got []string
			for _, d := range r.bag.Items() {
				if d.Code != diag.SynRedeclared {
					t.Fatalf("unexpected diagnostic %s: %s", d.Code.ID(), d.Message)
				}
				pos := r.fs.Position(d.Primary)
				got = append(got, fmt.Sprintf("%d:%d", pos.Line, pos.Col))
				if !strings.HasPrefix(d.Message, "Parsing error: Identifier '") || !strings.HasSuffix(d.Message, "' has already been declared") {
					t.Fatalf("message = %q", d.Message)
				}
			}
			if strings.Join(got, ",") != tt.want {
				t.Fatalf("redeclarations at %v, want %q", got, tt.want)
			}
		})
	}
}

func TestRefAtAndDeclaredAt(t *testing.T) {
	r := resolveOK(t, "let v = 1;\nv;\n")
	b := r.binding(t, r.res.Root, "v")
	if id, ok := r.res.DeclaredAt(b.Ident); !ok || r.res.Binding(id) != b {
		t.Fatalf("DeclaredAt mismatch")
	}
	last := b.Refs[len(b.Refs)-1]
	ref, ok := r.res.RefAt(r.res.Ref(last).Ident)
	if !ok || ref.Binding == NoBindingID || !ref.IsRead() {
		t.Fatalf("RefAt mismatch: %+v", ref)
	}
	if got := r.fs.Position(ref.Span); got.Line != 2 || got.Col != 1 {
		t.Fatalf("ref position = %v", got)
	}
}
