package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/diag"
)

func TestRegistryOrderAndDefaults(t *testing.T) {
	assert.Equal(t, []string{"no-unused-vars", "no-undef", "semi", "quotes", "complexity", "no-eval", "no-useless-concat"}, IDs())

	want := map[string]diag.Severity{
		"no-unused-vars":    diag.SevWarning,
		"no-undef":          diag.SevError,
		"semi":              diag.SevError,
		"quotes":            diag.SevWarning,
		"complexity":        diag.SevWarning,
		"no-eval":           diag.SevError,
		"no-useless-concat": diag.SevError,
	}
	for _, r := range Registry() {
		assert.Equal(t, want[r.ID], r.DefaultSeverity, r.ID)
		assert.NotEmpty(t, r.Doc, r.ID)
		assert.NotNil(t, r.Run, r.ID)
		assert.Equal(t, r.ID == "no-useless-concat", r.DefaultOff, r.ID)
	}

	r, ok := Lookup("semi")
	require.True(t, ok)
	assert.Same(t, Semi, r)
	_, ok = Lookup("no-console")
	assert.False(t, ok)
}

func TestCheckOption(t *testing.T) {
	assert.NoError(t, Semi.CheckOption("never"))
	assert.Error(t, Semi.CheckOption("sometimes"))
	assert.NoError(t, Quotes.CheckOption("backtick"))
	assert.Error(t, Quotes.CheckOption(1))
	assert.NoError(t, Complexity.CheckOption(int64(5)))
	assert.NoError(t, Complexity.CheckOption(float64(5)))
	assert.NoError(t, Complexity.CheckOption(map[string]any{"max": 3}))
	assert.Error(t, Complexity.CheckOption(2.5))
	assert.Error(t, Complexity.CheckOption("ten"))
	assert.Nil(t, NoEval.CheckOption)
}

func TestNoUndef(t *testing.T) {
	runCases(t, NoUndef, []ruleCase{
		{src: "y();", want: []string{"1:1 'y' is not defined."}},
		{src: "typeof x === 'undefined';"},
		{src: "let a = 1; a; b = 2;", want: []string{"1:15 'b' is not defined."}},
		{src: "function f() { return arguments.length + c; }", want: []string{"1:42 'c' is not defined."}},
		{src: "console.log(window.document, process.env, Promise);"},
		{src: "g();\ng();", want: []string{"1:1 'g' is not defined.", "2:1 'g' is not defined."}},
		{src: "let caf\u00e9 = 1; cafe\u0301;", want: []string{"1:15 'cafe\u0301' is not defined."}},
		{src: "let \u212a = 1; K;", want: []string{"1:12 'K' is not defined."}},
	})
}

func TestNoUnusedVars(t *testing.T) {
	runCases(t, NoUnusedVars, []ruleCase{
		{src: "var x;", want: []string{"1:5 'x' is defined but never used."}},
		{src: "let x = 1; x = 2;", want: []string{"1:12 'x' is assigned a value but never used."}},
		{src: "let x = 0; x++;", want: []string{"1:12 'x' is assigned a value but never used."}},
		{src: "let s = 1; s = s + 1;", want: []string{"1:12 's' is assigned a value but never used."}},
		{src: "let n = 0; f(n++);\nfunction f() {}\n"},
		{src: "function f(a, b) { return b; }\nf();"},
		{src: "function f(a, b) { return a; }\nf();", want: []string{"1:15 'b' is defined but never used."}},
		{src: "function fact(n) { return n ? n * fact(n - 1) : 1; }", want: []string{"1:10 'fact' is defined but never used."}},
		{src: "const loop = () => loop();", want: []string{"1:7 'loop' is assigned a value but never used."}},
		{src: "try { work(); } catch (e) {}"},
		{src: "export const a = 1;\nexport function f() {}\nexport default class K {}\n"},
		{src: "const b = 2;\nexport { b };"},
		{src: "const obj = { set v(val) {} };\nobj.v = 1;"},
		{src: "import x from 'm';", want: []string{"1:8 'x' is defined but never used."}},
		{src: "function h(o) { for (const k in o) { return true; } }\nh();"},
		{src: "const g = function self() {};\ng();"},
		{src: "class A {}", want: []string{"1:7 'A' is defined but never used."}},
		{
			src:  "function outer() { let v; function inner() { v = 1; } inner(); }\nouter();",
			want: []string{"1:24 'v' is assigned a value but never used."},
		},
		{src: "const {a, ...rest} = obj; rest;", want: []string{"1:8 'a' is assigned a value but never used."}},
		{src: "function d({ p }) {}\nd();", want: []string{"1:14 'p' is defined but never used."}},
		{src: "for (let i = 0; i < 3; i++) {}"},
	})
}

func TestSemi(t *testing.T) {
	runCases(t, Semi, []ruleCase{
		{src: "let a = 1", want: []string{"1:10 Missing semicolon."}},
		{src: "let a = 1;"},
		{src: "foo()\nbar()\n", want: []string{"1:6 Missing semicolon.", "2:6 Missing semicolon."}},
		{src: "function f() { return }", want: []string{"1:22 Missing semicolon."}},
		{src: "for (let i = 0; i < 1; i++) {}"},
		{src: "do {} while (x)", want: []string{"1:16 Missing semicolon."}},
		{src: "class C { x = 1 }", want: []string{"1:16 Missing semicolon."}},
		{src: "if (a) b()", want: []string{"1:11 Missing semicolon."}},
		{src: "import a from 'm'\nexport { a }", want: []string{"1:18 Missing semicolon.", "2:13 Missing semicolon."}},
		{src: "function g() {}\nclass D {}\n{ x; }"},
		{src: "let a = ;\n"},
		{src: "let a = 1;\nlet b = 2", opt: "never", want: []string{"1:10 Extra semicolon."}},
		{src: "a = 1;\n[b] = c;", opt: "never", want: []string{"2:8 Extra semicolon."}},
		{src: "a(); b()", opt: "never"},
		{src: "{ a(); }", opt: "never", want: []string{"1:5 Extra semicolon."}},
	})
}

func TestQuotes(t *testing.T) {
	runCases(t, Quotes, []ruleCase{
		{src: "let s = \"x\";", want: []string{"1:9 Strings must use singlequote."}},
		{src: "let s = 'x';"},
		{src: "let t = `x`;", want: []string{"1:9 Strings must use singlequote."}},
		{src: "let t = `a${b}`;"},
		{src: "let t = tag`x`;"},
		{src: "let t = `a\nb`;"},
		{src: "let s = 'x';", opt: "double", want: []string{"1:9 Strings must use doublequote."}},
		{src: "let s = \"it's\";", opt: "double"},
		{
			src:  "'use strict';\nimport a from 'm';\nconst o = { 'k': 1, v: 'x' };\n",
			opt:  "backtick",
			want: []string{"3:24 Strings must use backtick."},
		},
		{
			src:  "'use strict';\nconst o = { 'k': 1 };\n",
			want: []string{},
		},
		{
			src:  "\"use strict\";\nimport a from \"m\";\n",
			want: []string{"1:1 Strings must use singlequote.", "2:15 Strings must use singlequote."},
		},
	})
}

func branches(n int) string {
	var b strings.Builder
	b.WriteString("function f(a) {\n")
	for range n {
		b.WriteString("  if (a) {}\n")
	}
	b.WriteString("}\nf();\n")
	return b.String()
}

func TestComplexity(t *testing.T) {
	runCases(t, Complexity, []ruleCase{
		{src: branches(9)},
		{src: branches(10), want: []string{"1:1 Function 'f' has a complexity of 11. Maximum allowed is 10."}},
		{src: branches(3), opt: map[string]any{"max": 3}, want: []string{"1:1 Function 'f' has a complexity of 4. Maximum allowed is 3."}},
		{
			src:  "const g = (a) => a && b || c ? 1 : 2;",
			opt:  2,
			want: []string{"1:11 Arrow function has a complexity of 4. Maximum allowed is 2."},
		},
		{
			src:  "class K { static async m() { if (a) {} } }",
			opt:  1,
			want: []string{"1:25 Static async method 'm' has a complexity of 2. Maximum allowed is 1."},
		},
		{
			src:  "const o = { get x() { return a ?? b; } };",
			opt:  1,
			want: []string{"1:18 Getter 'x' has a complexity of 2. Maximum allowed is 1."},
		},
		{
			src:  "function s(x) { switch (x) { case 1: break; case 2: break; default: } }",
			opt:  2,
			want: []string{"1:1 Function 's' has a complexity of 3. Maximum allowed is 2."},
		},
		{
			src:  "function outer() { if (a) {} function inner() { if (b) {} if (c) {} } }",
			opt:  2,
			want: []string{"1:30 Function 'inner' has a complexity of 3. Maximum allowed is 2."},
		},
		{
			src:  "function f() { a ||= b; try {} catch { } while (c) {} }",
			opt:  int64(3),
			want: []string{"1:1 Function 'f' has a complexity of 4. Maximum allowed is 3."},
		},
		{src: "if (a) {} for (;;) {} while (b) {}", opt: 0},
	})
}

func TestNoEval(t *testing.T) {
	runCases(t, NoEval, []ruleCase{
		{src: "eval('x');", want: []string{"1:1 eval can be harmful."}},
		{src: "function f(eval) { eval('x'); }"},
		{src: "window.eval('x'); globalThis['eval']('y');", want: []string{"1:8 eval can be harmful.", "1:30 eval can be harmful."}},
		{src: "const e = eval; a.eval();", want: []string{"1:11 eval can be harmful."}},
		{src: "let window = {}; window.eval();"},
		{src: "window.window.eval('z');", want: []string{"1:15 eval can be harmful."}},
	})
}

func TestNoUselessConcat(t *testing.T) {
	runCases(t, NoUselessConcat, []ruleCase{
		{src: "let s = 'a' + 'b';", want: []string{"1:13 Unexpected string concatenation of literals."}},
		{src: "let s = 'a' + `b`;", want: []string{"1:13 Unexpected string concatenation of literals."}},
		{src: "let s = `a${x}` + \"b\";", want: []string{"1:17 Unexpected string concatenation of literals."}},
		{src: "let s = 'a' + 1;"},
		{src: "let s = 1 + 2;"},
		{src: "let s = x + 'a' + 'b';", want: []string{"1:17 Unexpected string concatenation of literals."}},
		{src: "let s = 'a' + x + 'b';"},
		{src: "let s = 'a' + ('b' + 'c');", want: []string{"1:13 Unexpected string concatenation of literals.", "1:20 Unexpected string concatenation of literals."}},
		{src: "let s = ('a') + 'b';", want: []string{"1:15 Unexpected string concatenation of literals."}},
		{src: "let s = 'a' +\n  'b';"},
		{src: "let s = 'a'\n  + 'b';"},
		{src: "let s = tag`a` + 'b';"},
		{src: "let s = 'a' - 'b';"},
		{src: "s += 'a' + x;"},
	})
}
