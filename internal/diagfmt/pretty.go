package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lintel/internal/diag"
	"lintel/internal/source"
)

type palette struct {
	on      bool
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	path    *color.Color
	rule    *color.Color
	gutter  *color.Color
	caret   *color.Color
	summary *color.Color
}

func newPalette(on bool) palette {
	p := palette{
		on:      on,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
		path:    color.New(color.Bold),
		rule:    color.New(color.Faint),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgMagenta, color.Bold),
		summary: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.rule, p.gutter, p.caret, p.summary} {
		if on {
			// цвет решает вызывающий (--color), а не детект терминала в fatih/color
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty prints diagnostics for people:
//
//	path:line:col: error: message [rule]
//	   3 | let s = "x";
//	     |         ^~~
//
// followed by notes when enabled and a problem summary.
func Pretty(w io.Writer, reports []FileReport, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	totalErr, totalWarn := 0, 0
	for i := range reports {
		r := &reports[i]
		e, wn := r.Counts()
		totalErr += e
		totalWarn += wn
		path := formatPath(r, opts.PathMode)
		if r.Failure != nil {
			fmt.Fprintf(w, "%s: %s %s\n", pal.path.Sprint(path), pal.err.Sprint("error:"), r.Failure.Error())
			continue
		}
		for _, d := range r.Diagnostics {
			prettyOne(w, pal, r, path, d, opts)
		}
	}
	if !opts.Summary {
		return
	}
	total := totalErr + totalWarn
	if total == 0 {
		return
	}
	line := fmt.Sprintf("%d %s (%d %s, %d %s)", total, plural(total, "problem"),
		totalErr, plural(totalErr, "error"), totalWarn, plural(totalWarn, "warning"))
	if totalErr == 0 {
		fmt.Fprintf(w, "\n%s\n", pal.warn.Sprint(line))
		return
	}
	fmt.Fprintf(w, "\n%s\n", pal.summary.Sprint(line))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func prettyOne(w io.Writer, pal palette, r *FileReport, path string, d diag.Diagnostic, opts PrettyOpts) {
	start, end := r.FileSet.Resolve(d.Primary)
	sevColor := pal.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s %s",
		pal.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sevColor.Sprint(severityWord(d.Severity)+":"),
		d.Message)
	if d.RuleID != "" {
		fmt.Fprintf(w, " %s", pal.rule.Sprintf("[%s]", d.RuleID))
	} else {
		fmt.Fprintf(w, " %s", pal.rule.Sprintf("[%s]", d.Code.ID()))
	}
	fmt.Fprintln(w)

	writeSnippet(w, pal, r.File, start, end, int(opts.Context))
	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns := r.FileSet.Position(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.info.Sprint("note:"), path, ns.Line, ns.Col, n.Msg)
		}
	}
}

// writeSnippet prints the primary line with a caret underline, plus context
// lines above it. Widths go through runewidth so wide characters line up.
func writeSnippet(w io.Writer, pal palette, f *source.File, start, end source.LineCol, context int) {
	if f == nil || start.Line == 0 {
		return
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	from := int(start.Line) - context
	if from < 1 {
		from = 1
	}
	for ln := from; ln <= int(start.Line); ln++ {
		text := f.GetLine(uint32(ln))
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(text))
	}

	text := expandTabs(f.GetLine(start.Line))
	prefix := utf16Prefix(f.GetLine(start.Line), int(start.Col)-1)
	pad := runewidth.StringWidth(expandTabs(prefix))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		span := utf16Prefix(f.GetLine(start.Line), int(end.Col)-1)[len(prefix):]
		width = max(runewidth.StringWidth(expandTabs(span)), 1)
	} else if end.Line > start.Line {
		width = max(runewidth.StringWidth(text)-pad, 1)
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
}

// utf16Prefix returns the leading part of line that is units UTF-16 code
// units long (columns are counted in UTF-16).
func utf16Prefix(line string, units int) string {
	n := 0
	for i, r := range line {
		if n >= units {
			return line[:i]
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return line
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// Short prints one line per diagnostic: path:line:col: severity: message (rule).
func Short(w io.Writer, reports []FileReport, pathMode PathMode) {
	for i := range reports {
		r := &reports[i]
		path := formatPath(r, pathMode)
		if r.Failure != nil {
			fmt.Fprintf(w, "%s:0:0: error: %s (%s)\n", path, r.Failure.Error(), SentinelRuleID)
			continue
		}
		for _, d := range r.Diagnostics {
			pos := r.FileSet.Position(d.Primary)
			id := d.RuleID
			if id == "" {
				id = d.Code.ID()
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n", path, pos.Line, pos.Col, severityWord(d.Severity), d.Message, id)
		}
	}
}
