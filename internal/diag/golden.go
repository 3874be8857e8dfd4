package diag

import (
	"fmt"
	"strings"

	"lintel/internal/source"
)

// GoldenOptions controls Golden.
type GoldenOptions struct {
	// Paths prefixes every position with the file path relative to the
	// FileSet base directory.
	Paths bool
	// Notes adds one indented line per note under its diagnostic.
	Notes bool
}

// Golden renders diagnostics one per line in input order, for test
// expectations and debug dumps:
//
//	1:1 no-undef ERROR 'y' is not defined.
//	  note 1:5 'y' is declared here with a different Unicode normalization
//	2:5 SYN2001 ERROR Parsing error: Unexpected token )
//
// Messages are folded onto one line. The result has no trailing newline and
// is empty for no diagnostics.
func Golden(diags []Diagnostic, fs *source.FileSet, opts GoldenOptions) string {
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", goldenPos(fs, d.Primary, opts.Paths), d.Label(), d.Severity, oneLine(d.Message))
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\n  note %s %s", goldenPos(fs, n.Span, opts.Paths), oneLine(n.Msg))
		}
	}
	return b.String()
}

// GoldenLines is Golden split into lines; no diagnostics give an empty slice.
func GoldenLines(diags []Diagnostic, fs *source.FileSet, opts GoldenOptions) []string {
	if len(diags) == 0 {
		return []string{}
	}
	return strings.Split(Golden(diags, fs, opts), "\n")
}

// Label is the short identifier of a diagnostic: the rule id when present,
// the numeric code otherwise.
func (d Diagnostic) Label() string {
	if d.RuleID != "" {
		return d.RuleID
	}
	return d.Code.ID()
}

func goldenPos(fs *source.FileSet, span source.Span, withPath bool) string {
	pos := fs.Position(span)
	if !withPath {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
	}
	path := fs.Get(span.File).FormatPath("relative", fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", strings.TrimPrefix(path, "./"), pos.Line, pos.Col)
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
