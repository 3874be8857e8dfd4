package lint

import (
	"sort"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Aggregate merges the lexer, parser and rule diagnostics of one file into a
// single list ordered by (line, column). The sort is stable, so diagnostics at
// the same position keep the order of the groups and, inside the rule group,
// registration order. Nothing is deduplicated.
func Aggregate(fs *source.FileSet, groups ...[]diag.Diagnostic) []diag.Diagnostic {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	type keyed struct {
		pos source.LineCol
		d   diag.Diagnostic
	}
	items := make([]keyed, 0, total)
	for _, g := range groups {
		for _, d := range g {
			items = append(items, keyed{pos: position(fs, d.Primary), d: d})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].pos, items[j].pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
	out := make([]diag.Diagnostic, len(items))
	for i := range items {
		out[i] = items[i].d
	}
	return out
}

func position(fs *source.FileSet, sp source.Span) source.LineCol {
	if fs == nil {
		return source.LineCol{}
	}
	return fs.Position(sp)
}
