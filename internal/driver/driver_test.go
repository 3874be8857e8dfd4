package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/lint"
	"lintel/internal/source"
	"lintel/internal/version"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func ruleIDs(r FileResult) []string {
	var out []string
	for _, d := range r.Report.Diagnostics {
		out = append(out, d.RuleID)
	}
	return out
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "var x;\ny();\n")

	res := LintFile(p, Options{Config: lint.DefaultConfig()})
	require.NoError(t, res.Report.Failure)
	assert.Equal(t, []string{"no-unused-vars", "no-undef"}, ruleIDs(res))
	assert.True(t, res.HasErrors())
	assert.False(t, res.Cached)
	assert.Equal(t, p, res.Report.Path)
}

func TestLintFileMissingIsSentinel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.js")
	res := LintFile(p, Options{Config: lint.DefaultConfig()})
	require.Error(t, res.Report.Failure)
	assert.Empty(t, res.Report.Diagnostics)
	assert.True(t, res.HasErrors())

	var buf bytes.Buffer
	require.NoError(t, diagfmt.ValidatorJSON(&buf, &res.Report))
	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "error", msgs[0]["ruleId"])
	assert.EqualValues(t, 0, msgs[0]["line"])
	assert.EqualValues(t, 0, msgs[0]["column"])
	assert.Contains(t, msgs[0]["message"], "missing.js")
}

func TestFilter(t *testing.T) {
	diags := []diag.Diagnostic{
		{Severity: diag.SevWarning, RuleID: "quotes"},
		{Severity: diag.SevError, RuleID: "no-undef"},
		{Severity: diag.SevWarning, RuleID: "no-unused-vars"},
	}
	assert.Len(t, Filter(diags, Options{}), 3)

	kept := Filter(diags, Options{IgnoreWarnings: true})
	require.Len(t, kept, 1)
	assert.Equal(t, "no-undef", kept[0].RuleID)

	promoted := Filter(diags, Options{WarningsAsErrors: true})
	for _, d := range promoted {
		assert.Equal(t, diag.SevError, d.Severity)
	}
	// исходный срез не меняется
	assert.Equal(t, diag.SevWarning, diags[0].Severity)

	assert.Len(t, Filter(diags, Options{MaxDiagnostics: 2}), 2)
}

func TestListSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/main.js", "x;")
	writeFile(t, dir, "src/lib/util.mjs", "x;")
	writeFile(t, dir, "src/readme.md", "# hi")
	writeFile(t, dir, "node_modules/dep/index.js", "x;")
	writeFile(t, dir, ".hidden/secret.js", "x;")
	writeFile(t, dir, "generated/out.js", "x;")
	writeFile(t, dir, "src/skip.min.js", "x;")
	writeFile(t, dir, ".gitignore", "generated\n*.min.js\n")
	explicit := writeFile(t, dir, "notes.txt", "x;")

	files, err := ListSources([]string{dir, explicit, filepath.Join(dir, "src", "main.js")})
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"notes.txt", "src/lib/util.mjs", "src/main.js"}, rel)
}

func TestListSourcesMissingArgKept(t *testing.T) {
	files, err := ListSources([]string{"does/not/exist.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean("does/not/exist.js")}, files)
}

func TestLintPathsOrderAndEvents(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.js", "a.js", "b.js"} {
		paths = append(paths, writeFile(t, dir, name, "let "+strings.TrimSuffix(name, ".js")+" = 1;\n"))
	}
	paths = append(paths, filepath.Join(dir, "gone.js"))

	var (
		mu     sync.Mutex
		events []Event
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})
	results, err := LintPaths(context.Background(), paths, Options{Config: lint.DefaultConfig(), Jobs: 2, Sink: sink})
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results[:3] {
		assert.Equal(t, paths[i], r.Report.Path)
		assert.Equal(t, []string{"no-unused-vars"}, ruleIDs(r))
	}
	assert.Error(t, results[3].Report.Failure)

	final := map[string]Status{}
	for _, ev := range events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[ev.File] = ev.Status
		}
	}
	assert.Equal(t, StatusError, final[paths[3]])
	assert.Equal(t, StatusDone, final[paths[0]])
	assert.Len(t, final, 4)
}

func TestLintPathsCancelled(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "x;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LintPaths(ctx, []string{p}, Options{Config: lint.DefaultConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCache("lintel", t.TempDir())
	require.NoError(t, err)

	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "var x\nfoo()\n")
	opts := Options{Config: lint.DefaultConfig(), Cache: cache, EnableTimings: true}

	first := LintFile(p, opts)
	require.NoError(t, first.Report.Failure)
	assert.False(t, first.Cached)

	second := LintFile(p, opts)
	assert.True(t, second.Cached)
	assert.Equal(t, ruleIDs(first), ruleIDs(second))
	for i := range first.Report.Diagnostics {
		a, b := first.Report.Diagnostics[i], second.Report.Diagnostics[i]
		assert.Equal(t, a.Message, b.Message)
		assert.Equal(t, first.Report.FileSet.Position(a.Primary), second.Report.FileSet.Position(b.Primary))
	}

	// другой конфиг: другой ключ
	cfg, err := lint.DefaultConfig().Override("semi", "off")
	require.NoError(t, err)
	third := LintFile(p, Options{Config: cfg, Cache: cache})
	assert.False(t, third.Cached)
	assert.NotContains(t, ruleIDs(third), "semi")

	require.NoError(t, cache.DropAll())
	fourth := LintFile(p, opts)
	assert.False(t, fourth.Cached)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey([]byte("x;"), "f1")
	assert.Equal(t, a, CacheKey([]byte("x;"), "f1"))
	assert.NotEqual(t, a, CacheKey([]byte("x;"), "f2"))
	assert.NotEqual(t, a, CacheKey([]byte("y;"), "f1"))

	saved := version.Version
	t.Cleanup(func() { version.Version = saved })
	version.Version = saved + "+next"
	assert.NotEqual(t, a, CacheKey([]byte("x;"), "f1"))
}

func TestCachePayloadRoundTrip(t *testing.T) {
	diags := []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.RuleFinding,
		RuleID:   "quotes",
		Message:  "Strings must use singlequote.",
		Primary:  source.Span{File: 3, Start: 4, End: 7},
		Notes:    []diag.Note{{Span: source.Span{File: 3, Start: 1, End: 2}, Msg: "here"}},
	}}
	back := fromDiskPayload(toDiskPayload(diags, 0, "fp"), 0)
	require.Len(t, back, 1)
	assert.Equal(t, source.Span{File: 0, Start: 4, End: 7}, back[0].Primary)
	assert.Equal(t, "here", back[0].Notes[0].Msg)
	assert.Equal(t, diag.RuleFinding, back[0].Code)
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "// hi\nlet a = 'x';\n")

	tr, err := Tokenize(p, lint.DefaultConfig(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, tr.Tokens)
	assert.Equal(t, "Comment", tr.Tokens[0].Kind.Class().String())
	assert.Zero(t, tr.Bag.Len())

	pr, err := Parse(p, lint.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, pr.Diagnostics)
	assert.Len(t, pr.Unit.Comments, 1)

	_, err = Parse(filepath.Join(dir, "nope.js"), lint.DefaultConfig())
	assert.Error(t, err)
}

func TestWriteTimings(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.js", "x;\n")
	res := LintFile(p, Options{Config: lint.DefaultConfig(), EnableTimings: true})

	var buf bytes.Buffer
	require.NoError(t, WriteTimings(&buf, []FileResult{res}, true))
	var payload TimingPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, 1, payload.Files)
	var names []string
	for _, ph := range payload.Phases {
		names = append(names, ph.Name)
	}
	assert.Equal(t, []string{"read", "lex", "parse", "resolve", "rules", "aggregate"}, names)

	buf.Reset()
	require.NoError(t, WriteTimings(&buf, []FileResult{res}, false))
	assert.Contains(t, buf.String(), "timings (lint): 1 files, 0 cached")
}
