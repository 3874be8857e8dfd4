package lint

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/diag"
	"lintel/internal/rules"
	"lintel/internal/source"
)

var boom = &rules.Rule{
	ID:              "boom",
	DefaultSeverity: diag.SevWarning,
	Doc:             "always crashes",
	Run: func(p *rules.Pass) {
		p.Report(source.Span{File: p.Unit.File.ID}, "partial")
		var m map[string]int
		m["x"]++ // nil map write
	},
}

func unitFor(t *testing.T, src string, cfg Config) *rules.Unit {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("engine.js", []byte(src)))
	u, _, _ := buildUnit(fs, file, cfg, nil)
	return u
}

func withRule(cfg Config, id string, s RuleSetting) Config {
	cfg.rules = maps.Clone(cfg.rules)
	cfg.rules[id] = s
	return cfg
}

func TestRulePanicIsIsolated(t *testing.T) {
	engine := newEngineWith([]*rules.Rule{rules.NoUndef, boom, rules.NoEval})
	for _, parallel := range []bool{false, true} {
		cfg := withRule(DefaultConfig(), "boom", RuleSetting{Level: LevelWarn})
		cfg.Parallel = parallel

		u := unitFor(t, "y(); eval('1');", cfg)
		out := engine.Evaluate(u, cfg)

		require.Len(t, out, 3, "parallel=%v", parallel)
		assert.Equal(t, "no-undef", out[0].RuleID)

		defect := out[1]
		assert.Equal(t, "boom", defect.RuleID)
		assert.Equal(t, diag.RuleDefect, defect.Code)
		assert.Equal(t, diag.SevError, defect.Severity)
		assert.Contains(t, defect.Message, `Rule "boom" failed`)
		assert.Contains(t, defect.Message, "nil map")

		assert.Equal(t, "no-eval", out[2].RuleID)
		for _, d := range out {
			assert.NotEqual(t, "partial", d.Message)
		}
	}
}

func TestEvaluateOrderAndTags(t *testing.T) {
	cfg := DefaultConfig()
	cfg, err := cfg.Override("no-eval", 1)
	require.NoError(t, err)
	u := unitFor(t, "eval(x);\nvar v", cfg)

	out := NewEngine().Evaluate(u, cfg)
	var ids []string
	for _, d := range out {
		ids = append(ids, d.RuleID)
		assert.Equal(t, diag.RuleFinding, d.Code)
		assert.Equal(t, cfg.Rule(d.RuleID).Level.Severity(), d.Severity)
	}
	// registration order, not source order
	assert.Equal(t, []string{"no-unused-vars", "no-undef", "semi", "no-eval"}, ids)
}

func TestParallelJobsLimit(t *testing.T) {
	seq := DefaultConfig()
	u := unitFor(t, noisy, seq)
	want := NewEngine().Evaluate(u, seq)

	for _, jobs := range []int{0, 1, 2, 16} {
		par := seq
		par.Parallel = true
		par.Jobs = jobs
		assert.Equal(t, want, NewEngine().Evaluate(u, par), "jobs=%d", jobs)
	}
}
