package lint

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"lintel/internal/diag"
	"lintel/internal/parser"
	"lintel/internal/rules"
	"lintel/internal/symbols"
)

// Level is the configured state of a rule.
type Level uint8

const (
	LevelOff Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "off"
}

// Severity maps an enabled level onto a diagnostic severity.
func (l Level) Severity() diag.Severity {
	if l == LevelError {
		return diag.SevError
	}
	return diag.SevWarning
}

// DefaultLevel is the level a rule gets when no configuration names it.
func DefaultLevel(r *rules.Rule) Level {
	if r.DefaultOff {
		return LevelOff
	}
	return LevelFor(r.DefaultSeverity)
}

// LevelFor returns the level that reports with sev.
func LevelFor(sev diag.Severity) Level {
	switch sev {
	case diag.SevError:
		return LevelError
	case diag.SevWarning:
		return LevelWarn
	}
	return LevelOff
}

// ParseLevel accepts "off"/"warn"/"error" and the numeric forms 0/1/2.
// Numbers may arrive as any of the types config decoders produce.
func ParseLevel(v any) (Level, error) {
	switch x := v.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "off", "0":
			return LevelOff, nil
		case "warn", "warning", "1":
			return LevelWarn, nil
		case "error", "2":
			return LevelError, nil
		}
	case int:
		return numericLevel(int64(x), v)
	case int64:
		return numericLevel(x, v)
	case uint64:
		if x <= 2 {
			return Level(x), nil
		}
	case float64:
		if x == float64(int64(x)) {
			return numericLevel(int64(x), v)
		}
	}
	return LevelOff, fmt.Errorf("invalid severity %v: expected off, warn, error or 0, 1, 2", v)
}

func numericLevel(n int64, raw any) (Level, error) {
	if n < 0 || n > 2 {
		return LevelOff, fmt.Errorf("invalid severity %v: expected off, warn, error or 0, 1, 2", raw)
	}
	return Level(n), nil
}

// RuleSetting is the level and option of one rule.
type RuleSetting struct {
	Level  Level
	Option any
}

// Config is an immutable analysis configuration. Methods that change it
// return a modified copy; a Config can be shared between goroutines.
type Config struct {
	rules map[string]RuleSetting

	SourceType parser.SourceType
	Envs       symbols.Env
	// MaxErrors caps syntax errors per file; zero means no cap.
	MaxErrors uint
	// Parallel runs the enabled rules concurrently, at most Jobs at a time
	// (Jobs <= 0 means one per rule).
	Parallel bool
	Jobs     int
}

// DefaultConfig mirrors the validator setup: module source, browser + node +
// es2021 globals and every registered rule at its default severity and option.
// Rules marked DefaultOff are registered but disabled.
func DefaultConfig() Config {
	cfg := Config{
		rules:      make(map[string]RuleSetting, len(rules.Registry())),
		SourceType: parser.SourceModule,
		Envs:       symbols.DefaultEnvs,
	}
	for _, r := range rules.Registry() {
		cfg.rules[r.ID] = RuleSetting{Level: DefaultLevel(r), Option: r.DefaultOption}
	}
	return cfg
}

// Rule returns the setting of a rule. A rule omitted from the configuration
// is reported as off.
func (c Config) Rule(id string) RuleSetting {
	return c.rules[id]
}

// Enabled lists the rules that run, in registration order.
func (c Config) Enabled() []*rules.Rule {
	var out []*rules.Rule
	for _, r := range rules.Registry() {
		if c.rules[r.ID].Level != LevelOff {
			out = append(out, r)
		}
	}
	return out
}

// Override applies one configuration entry. raw is a level ("warn", 1) or a
// list [level, option] as in ESLint configs. An id that names no registered
// rule is ignored. A level without an option keeps the current option.
func (c Config) Override(id string, raw any) (Config, error) {
	r, ok := rules.Lookup(id)
	if !ok {
		return c, nil
	}
	setting := c.rules[id]
	if setting.Option == nil {
		setting.Option = r.DefaultOption
	}

	levelRaw := raw
	var option any
	hasOption := false
	switch list := raw.(type) {
	case []any:
		if len(list) == 0 {
			return c, fmt.Errorf("rule %q: empty setting", id)
		}
		levelRaw = list[0]
		if len(list) > 1 {
			option, hasOption = list[1], true
		}
		if len(list) > 2 {
			return c, fmt.Errorf("rule %q: at most one option is supported", id)
		}
	case []string:
		if len(list) == 0 {
			return c, fmt.Errorf("rule %q: empty setting", id)
		}
		levelRaw = list[0]
		if len(list) > 1 {
			option, hasOption = list[1], true
		}
	}

	level, err := ParseLevel(levelRaw)
	if err != nil {
		return c, fmt.Errorf("rule %q: %w", id, err)
	}
	setting.Level = level
	if hasOption {
		if r.CheckOption == nil {
			return c, fmt.Errorf("rule %q takes no option", id)
		}
		if err := r.CheckOption(option); err != nil {
			return c, fmt.Errorf("rule %q: %w", id, err)
		}
		setting.Option = option
	}

	out := c
	out.rules = maps.Clone(c.rules)
	if out.rules == nil {
		out.rules = make(map[string]RuleSetting, 1)
	}
	out.rules[id] = setting
	return out, nil
}

// WithOverrides applies a whole rules block. Entries are applied in sorted id
// order so the first reported error does not depend on map iteration.
func (c Config) WithOverrides(m map[string]any) (Config, error) {
	out := c
	for _, id := range slices.Sorted(maps.Keys(m)) {
		var err error
		if out, err = out.Override(id, m[id]); err != nil {
			return c, err
		}
	}
	return out, nil
}

// ParseRuleFlag splits a command line override "id=level[:option]". A numeric
// option is converted to an integer so that "complexity=warn:5" works.
func ParseRuleFlag(s string) (string, any, error) {
	id, rest, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" || rest == "" {
		return "", nil, fmt.Errorf("invalid rule override %q: expected id=level[:option]", s)
	}
	level, opt, hasOpt := strings.Cut(rest, ":")
	if !hasOpt {
		return id, level, nil
	}
	var option any = opt
	if n, err := strconv.Atoi(opt); err == nil {
		option = n
	}
	return id, []any{level, option}, nil
}

// Fingerprint is a stable textual form of the configuration, used as part
// of cache keys.
func (c Config) Fingerprint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source=%s;env=%s;max=%d", c.SourceType, c.Envs, c.MaxErrors)
	for _, id := range slices.Sorted(maps.Keys(c.rules)) {
		s := c.rules[id]
		fmt.Fprintf(&sb, ";%s=%s:%v", id, s.Level, s.Option)
	}
	return sb.String()
}
