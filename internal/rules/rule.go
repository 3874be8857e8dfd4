// Package rules holds the fixed registry of lint rules. A rule reads a Unit
// (tokens, AST, scope tree) and reports findings through its Pass; it never
// mutates the unit and never chooses its own severity.
package rules

import (
	"fmt"

	"lintel/internal/diag"
)

// Rule describes one check.
type Rule struct {
	ID              string
	DefaultSeverity diag.Severity
	// DefaultOff rules stay off until a configuration turns them on.
	DefaultOff bool
	// DefaultOption is used when the configuration gives only a severity.
	DefaultOption any
	Doc           string
	// CheckOption validates a configured option; nil means the rule takes none.
	CheckOption func(opt any) error
	Run         func(p *Pass)
}

// registry is ordered like the rules block of the validator configuration.
var registry = []*Rule{
	NoUnusedVars,
	NoUndef,
	Semi,
	Quotes,
	Complexity,
	NoEval,
	NoUselessConcat,
}

// Registry returns every rule in registration order. The slice is shared;
// callers must not modify it.
func Registry() []*Rule { return registry }

// Lookup finds a rule by id.
func Lookup(id string) (*Rule, bool) {
	for _, r := range registry {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// IDs returns the rule ids in registration order.
func IDs() []string {
	out := make([]string, len(registry))
	for i, r := range registry {
		out[i] = r.ID
	}
	return out
}

func oneOf(values ...string) func(any) error {
	return func(opt any) error {
		s, ok := opt.(string)
		if ok {
			for _, v := range values {
				if s == v {
					return nil
				}
			}
		}
		return fmt.Errorf("option must be one of %q, got %v", values, opt)
	}
}
