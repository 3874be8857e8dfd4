package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/diag"
	"lintel/internal/observ"
	"lintel/internal/source"
)

// render prints diagnostics as "line:col rule SEVERITY message"; syntax
// diagnostics carry their code instead of a rule id.
func render(res Result) []string {
	return diag.GoldenLines(res.Diagnostics, res.FileSet, diag.GoldenOptions{})
}

func byRule(res Result, id string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range res.Diagnostics {
		if d.RuleID == id {
			out = append(out, d)
		}
	}
	return out
}

func requireSorted(t *testing.T, res Result) {
	t.Helper()
	var prev source.LineCol
	for i, d := range res.Diagnostics {
		pos := res.FileSet.Position(d.Primary)
		if i > 0 {
			require.True(t, pos.Line > prev.Line || (pos.Line == prev.Line && pos.Col >= prev.Col),
				"diagnostic %d at %d:%d precedes %d:%d", i, pos.Line, pos.Col, prev.Line, prev.Col)
		}
		prev = pos
	}
}

var garbage = []string{
	"",
	"}",
	"function (",
	"let let = ;",
	"'unterminated\nx;",
	"/* open",
	"a ? b :",
	"class { }",
	"`${",
	"if (a) { else }",
	"for (let i = 0; i <",
	"x = {a: 1,, b};",
	"@#$%^",
	"import from;",
	"export default",
	"\x00\xff\xfe",
	"((((((((((((((((((((",
	"return 1;",
	"switch (x) { default: default: }",
	"async () => await",
	"let { a, ...b, c } = o;",
	"var ",
}

func TestAnalyzeNeverPanicsAndSorts(t *testing.T) {
	for _, src := range garbage {
		t.Run(src, func(t *testing.T) {
			var res Result
			require.NotPanics(t, func() { res = Analyze(src, DefaultConfig()) })
			requireSorted(t, res)
			for _, d := range res.Diagnostics {
				pos := res.FileSet.Position(d.Primary)
				assert.GreaterOrEqual(t, pos.Line, uint32(1))
				assert.LessOrEqual(t, pos.Line, res.File.LineCount())
				assert.NotEqual(t, diag.RuleDefect, d.Code, d.Message)
			}
		})
	}
}

func TestUnusedVar(t *testing.T) {
	res := Analyze("var x;", DefaultConfig())
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "no-unused-vars", d.RuleID)
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.Equal(t, []string{"1:5 no-unused-vars WARNING 'x' is defined but never used."}, render(res))
}

func TestUndefinedCall(t *testing.T) {
	res := Analyze("y();", DefaultConfig())
	assert.Equal(t, []string{"1:1 no-undef ERROR 'y' is not defined."}, render(res))
}

func TestMissingSemicolon(t *testing.T) {
	cfg, err := DefaultConfig().Override("semi", "error")
	require.NoError(t, err)
	res := Analyze("let a = 1", cfg)
	assert.Equal(t, []string{
		"1:5 no-unused-vars WARNING 'a' is assigned a value but never used.",
		"1:10 semi ERROR Missing semicolon.",
	}, render(res))
}

func TestQuotesSingle(t *testing.T) {
	cfg, err := DefaultConfig().Override("quotes", []any{"warn", "single"})
	require.NoError(t, err)

	res := Analyze(`let s = "x"; s;`, cfg)
	quotes := byRule(res, "quotes")
	require.Len(t, quotes, 1)
	assert.Equal(t, source.LineCol{Line: 1, Col: 9}, res.FileSet.Position(quotes[0].Primary))
	assert.Equal(t, diag.SevWarning, quotes[0].Severity)

	res = Analyze(`let s = 'x'; s;`, cfg)
	assert.Empty(t, byRule(res, "quotes"))
	assert.Empty(t, res.Diagnostics)
}

func functionWithBranches(n int) string {
	var sb strings.Builder
	sb.WriteString("export function f(a) {\n")
	for range n {
		sb.WriteString("  if (a) { a--; }\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func TestComplexityBoundary(t *testing.T) {
	// 1 + 9 = 10: at the threshold
	res := Analyze(functionWithBranches(9), DefaultConfig())
	assert.Empty(t, res.Diagnostics)

	// 1 + 10 = 11
	res = Analyze(functionWithBranches(10), DefaultConfig())
	assert.Equal(t, []string{
		"1:8 complexity WARNING Function 'f' has a complexity of 11. Maximum allowed is 10.",
	}, render(res))

	cfg, err := DefaultConfig().Override("complexity", []any{"error", 20})
	require.NoError(t, err)
	assert.Empty(t, Analyze(functionWithBranches(10), cfg).Diagnostics)
}

// noisy trips every rule at least once.
const noisy = `var unused;
let s = "double";
y();
eval('1');
let a = 1
export function f(x) {
  if (x) {} if (x) {} if (x) {} if (x) {} if (x) {}
  if (x) {} if (x) {} if (x) {} if (x) {} if (x) {}
  return s + a;
}
`

func TestNoisyInput(t *testing.T) {
	res := Analyze(noisy, DefaultConfig())
	assert.Equal(t, []string{
		"1:5 no-unused-vars WARNING 'unused' is defined but never used.",
		"2:9 quotes WARNING Strings must use singlequote.",
		"3:1 no-undef ERROR 'y' is not defined.",
		"4:1 no-eval ERROR eval can be harmful.",
		"5:10 semi ERROR Missing semicolon.",
		"6:8 complexity WARNING Function 'f' has a complexity of 11. Maximum allowed is 10.",
	}, render(res))
}

func TestDeterminism(t *testing.T) {
	seq := DefaultConfig()
	par := DefaultConfig()
	par.Parallel = true
	par.Jobs = 3

	first := Analyze(noisy, seq)
	for range 5 {
		again := Analyze(noisy, seq)
		assert.Equal(t, render(first), render(again))
		assert.Equal(t, first.Diagnostics, again.Diagnostics)

		parallel := Analyze(noisy, par)
		assert.Equal(t, first.Diagnostics, parallel.Diagnostics)
	}
}

func TestDisablingRemovesOnlyThatRule(t *testing.T) {
	full := Analyze(noisy, DefaultConfig())
	for _, id := range []string{"no-unused-vars", "no-undef", "semi", "quotes", "complexity", "no-eval"} {
		t.Run(id, func(t *testing.T) {
			cfg, err := DefaultConfig().Override(id, "off")
			require.NoError(t, err)
			got := Analyze(noisy, cfg)

			var want []diag.Diagnostic
			for _, d := range full.Diagnostics {
				if d.RuleID != id {
					want = append(want, d)
				}
			}
			require.NotEqual(t, len(full.Diagnostics), len(want), "fixture must trigger %s", id)
			assert.Equal(t, want, got.Diagnostics)
		})
	}
}

func TestUnknownOverrideIgnored(t *testing.T) {
	base := DefaultConfig()
	cfg, err := base.WithOverrides(map[string]any{
		"no-console":       "error",
		"react/jsx-indent": []any{"warn", 2},
	})
	require.NoError(t, err)
	assert.Equal(t, base.Fingerprint(), cfg.Fingerprint())
	assert.Equal(t, render(Analyze(noisy, base)), render(Analyze(noisy, cfg)))
}

func TestSeverityOverride(t *testing.T) {
	cfg, err := DefaultConfig().WithOverrides(map[string]any{
		"no-undef":       1,
		"no-unused-vars": "error",
	})
	require.NoError(t, err)
	res := Analyze("var x; y();", cfg)
	assert.Equal(t, []string{
		"1:5 no-unused-vars ERROR 'x' is defined but never used.",
		"1:8 no-undef WARNING 'y' is not defined.",
	}, render(res))
}

func TestUselessConcatOptIn(t *testing.T) {
	const src = "export const s = 'a' + 'b';\n"
	assert.Empty(t, render(Analyze(src, DefaultConfig())))

	cfg, err := DefaultConfig().Override("no-useless-concat", "warn")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1:22 no-useless-concat WARNING Unexpected string concatenation of literals.",
	}, render(Analyze(src, cfg)))
}

func TestSyntaxErrorsInterleave(t *testing.T) {
	res := Analyze("y();\nlet a = ;\nz();", DefaultConfig())
	requireSorted(t, res)
	require.GreaterOrEqual(t, len(res.Diagnostics), 3)
	assert.Positive(t, res.SyntaxErrors)

	first := res.Diagnostics[0]
	last := res.Diagnostics[len(res.Diagnostics)-1]
	assert.Equal(t, "no-undef", first.RuleID)
	assert.Equal(t, "no-undef", last.RuleID)
	assert.Equal(t, uint32(3), res.FileSet.Position(last.Primary).Line)

	var syntax []diag.Diagnostic
	for _, d := range res.Diagnostics {
		if d.IsSyntax() {
			syntax = append(syntax, d)
		}
	}
	require.NotEmpty(t, syntax)
	assert.Equal(t, uint32(2), res.FileSet.Position(syntax[0].Primary).Line)
	assert.True(t, strings.HasPrefix(syntax[0].Message, diag.ParsingErrorPrefix), syntax[0].Message)
	assert.Equal(t, diag.SevError, syntax[0].Severity)
}

func TestReservedWordReferenceInModule(t *testing.T) {
	res := Analyze("let = ;", DefaultConfig())
	assert.Empty(t, byRule(res, "no-undef"))
	lines := render(res)
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "1:1 "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "ERROR Parsing error: The keyword 'let' is reserved"), lines[0])

	cfg := DefaultConfig()
	cfg.SourceType, _ = ParseSourceType("script")
	res = Analyze("let = 1;", cfg)
	assert.Zero(t, res.SyntaxErrors)
	assert.Len(t, byRule(res, "no-undef"), 1)
}

func TestRulesRunOnBrokenFile(t *testing.T) {
	res := Analyze("eval(1);\nfunction (", DefaultConfig())
	assert.NotEmpty(t, byRule(res, "no-eval"))
	assert.Positive(t, res.SyntaxErrors)
}

func TestScriptSourceType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceType, _ = ParseSourceType("script")
	res := Analyze("import a from 'm';", cfg)
	assert.Positive(t, res.SyntaxErrors)

	// top-level declarations of a script are globals but still unused
	res = Analyze("var x = 1;", cfg)
	assert.Len(t, byRule(res, "no-unused-vars"), 1)
}

func TestTimingsRecorded(t *testing.T) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.js", []byte("var x;")))
	AnalyzeFile(fs, file, DefaultConfig(), timer)

	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"lex", "parse", "resolve", "rules", "aggregate"}, names)
}

func TestLineTerminatorPositions(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"let a = 1\rlet b = a\rb;", []string{
			"1:10 semi ERROR Missing semicolon.",
			"2:10 semi ERROR Missing semicolon.",
		}},
		{"x;\u2028y;", []string{
			"1:1 no-undef ERROR 'x' is not defined.",
			"2:1 no-undef ERROR 'y' is not defined.",
		}},
		{"x;\u2029y;", []string{
			"1:1 no-undef ERROR 'x' is not defined.",
			"2:1 no-undef ERROR 'y' is not defined.",
		}},
		{"x;\ry;", []string{
			"1:1 no-undef ERROR 'x' is not defined.",
			"2:1 no-undef ERROR 'y' is not defined.",
		}},
		{"x;\r\n\r\ny;", []string{
			"1:1 no-undef ERROR 'x' is not defined.",
			"3:1 no-undef ERROR 'y' is not defined.",
		}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, render(Analyze(tc.src, DefaultConfig())), "%q", tc.src)
	}
}

func TestUndefinedNormalizationNote(t *testing.T) {
	res := Analyze("let caf\u00e9 = 1;\ncafe\u0301;", DefaultConfig())
	assert.Equal(t, []string{
		"1:5 no-unused-vars WARNING 'caf\u00e9' is assigned a value but never used.",
		"2:1 no-undef ERROR 'cafe\u0301' is not defined.",
		"  note 1:5 'caf\u00e9' is declared here with a different Unicode normalization",
	}, diag.GoldenLines(res.Diagnostics, res.FileSet, diag.GoldenOptions{Notes: true}))
}
