package lint

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"lintel/internal/diag"
	"lintel/internal/rules"
	"lintel/internal/source"
)

// Engine runs a fixed list of rules over one unit.
type Engine struct {
	registry []*rules.Rule
}

// NewEngine returns an engine over the built-in registry.
func NewEngine() *Engine {
	return &Engine{registry: rules.Registry()}
}

// newEngineWith is used by tests to run extra rules (for example one that
// panics) through the same machinery.
func newEngineWith(registry []*rules.Rule) *Engine {
	return &Engine{registry: registry}
}

// Evaluate runs every rule enabled in cfg, in registration order, and tags
// each finding with the rule id and the configured severity. Each rule fills
// a private buffer; buffers are concatenated in registration order, so the
// parallel run returns exactly what the sequential one does.
func (e *Engine) Evaluate(u *rules.Unit, cfg Config) []diag.Diagnostic {
	type job struct {
		rule    *rules.Rule
		setting RuleSetting
	}
	var jobs []job
	for _, r := range e.registry {
		if s := cfg.rules[r.ID]; s.Level != LevelOff {
			jobs = append(jobs, job{rule: r, setting: s})
		}
	}
	buffers := make([][]diag.Diagnostic, len(jobs))

	if cfg.Parallel && len(jobs) > 1 {
		var g errgroup.Group
		if cfg.Jobs > 0 {
			g.SetLimit(cfg.Jobs)
		}
		for i, j := range jobs {
			g.Go(func() error {
				buffers[i] = runRule(u, j.rule, j.setting)
				return nil
			})
		}
		_ = g.Wait() // runRule never fails
	} else {
		for i, j := range jobs {
			buffers[i] = runRule(u, j.rule, j.setting)
		}
	}

	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	out := make([]diag.Diagnostic, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// runRule evaluates one rule. A panic is contained here: the rule's partial
// output is dropped and replaced by a single error diagnostic carrying the
// rule id, so the remaining rules are unaffected.
func runRule(u *rules.Unit, r *rules.Rule, s RuleSetting) (out []diag.Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []diag.Diagnostic{ruleDefect(u, r, rec)}
		}
	}()
	p := rules.NewPass(u, r, s.Option)
	r.Run(p)
	out = p.Findings()
	sev := s.Level.Severity()
	for i := range out {
		out[i].Severity = sev
		out[i].RuleID = r.ID
	}
	return out
}

func ruleDefect(u *rules.Unit, r *rules.Rule, rec any) diag.Diagnostic {
	var at source.Span
	if u != nil && u.File != nil {
		at = source.Span{File: u.File.ID}
	}
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.RuleDefect,
		RuleID:   r.ID,
		Message:  fmt.Sprintf("Rule %q failed: %v", r.ID, rec),
		Primary:  at,
	}
}
