package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/rules"
	"lintel/internal/source"
)

const sample = "var s = \"x\";\nfoo();\n"

// sampleReport: предупреждение quotes на 1:9 и ошибка no-undef на 2:1.
func sampleReport(t *testing.T) FileReport {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(sample))
	return FileReport{
		Path:    "test.js",
		FileSet: fs,
		File:    fs.Get(id),
		Diagnostics: []diag.Diagnostic{
			{
				Severity: diag.SevWarning,
				Code:     diag.RuleFinding,
				RuleID:   "quotes",
				Message:  "Strings must use singlequote.",
				Primary:  source.Span{File: id, Start: 8, End: 11},
			},
			{
				Severity: diag.SevError,
				Code:     diag.RuleFinding,
				RuleID:   "no-undef",
				Message:  "'foo' is not defined.",
				Primary:  source.Span{File: id, Start: 13, End: 16},
			},
		},
	}
}

func TestValidatorJSON(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	if err := ValidatorJSON(&buf, &r); err != nil {
		t.Fatalf("ValidatorJSON() error: %v", err)
	}
	want := `[{"message":"Strings must use singlequote.","line":1,"column":9,"ruleId":"quotes"},` +
		`{"message":"'foo' is not defined.","line":2,"column":1,"ruleId":"no-undef"}]` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("ValidatorJSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestValidatorJSONSyntaxAndEmpty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.js", []byte("let = <a>;"))
	r := FileReport{FileSet: fs, File: fs.Get(id)}

	var buf bytes.Buffer
	if err := ValidatorJSON(&buf, &r); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("empty report = %q, want %q", buf.String(), "[]\n")
	}

	r.Diagnostics = []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  diag.ParsingErrorPrefix + "Unexpected token <a>",
		Primary:  source.Span{File: id, Start: 6, End: 7},
	}}
	buf.Reset()
	if err := ValidatorJSON(&buf, &r); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `"ruleId":null`) {
		t.Errorf("syntax error must carry a null ruleId: %s", got)
	}
	// без HTML-экранирования
	if !strings.Contains(got, "<a>") {
		t.Errorf("message must not be HTML-escaped: %s", got)
	}
	if !strings.Contains(got, `"line":1,"column":7`) {
		t.Errorf("unexpected position: %s", got)
	}
}

func TestSentinel(t *testing.T) {
	r := FileReport{Path: "missing.js", Failure: errors.New("ENOENT: no such file")}
	var buf bytes.Buffer
	if err := ValidatorJSON(&buf, &r); err != nil {
		t.Fatal(err)
	}
	want := `[{"message":"ENOENT: no such file","line":0,"column":0,"ruleId":"error"}]` + "\n"
	if buf.String() != want {
		t.Errorf("sentinel = %q, want %q", buf.String(), want)
	}

	msgs := Sentinel(errors.New("x"))
	if len(msgs) != 1 || *msgs[0].RuleID != SentinelRuleID {
		t.Errorf("Sentinel() = %+v", msgs)
	}
}

func TestESLintJSON(t *testing.T) {
	reports := []FileReport{sampleReport(t), {Path: "gone.js", Failure: errors.New("cannot read")}}
	var buf bytes.Buffer
	if err := ESLintJSON(&buf, reports, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	var out []struct {
		FilePath string `json:"filePath"`
		Messages []struct {
			RuleID   *string `json:"ruleId"`
			Severity int     `json:"severity"`
			Line     int     `json:"line"`
			EndCol   int     `json:"endColumn"`
			Fatal    bool    `json:"fatal"`
		} `json:"messages"`
		ErrorCount   int `json:"errorCount"`
		WarningCount int `json:"warningCount"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != 2 {
		t.Fatalf("got %d files, want 2", len(out))
	}
	if out[0].FilePath != "test.js" || out[0].ErrorCount != 1 || out[0].WarningCount != 1 {
		t.Errorf("first file = %+v", out[0])
	}
	if m := out[0].Messages[0]; m.Severity != 1 || m.EndCol != 12 || *m.RuleID != "quotes" {
		t.Errorf("quotes message = %+v", m)
	}
	if m := out[1].Messages[0]; !m.Fatal || *m.RuleID != SentinelRuleID || out[1].FilePath != "gone.js" {
		t.Errorf("failure entry = %+v", out[1])
	}
}

func TestPrettyNoColor(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	Pretty(&buf, []FileReport{r}, PrettyOpts{PathMode: PathModeBasename, Summary: true})
	got := buf.String()

	for _, want := range []string{
		"test.js:1:9: warning: Strings must use singlequote. [quotes]\n",
		"1 | var s = \"x\";\n",
		"  |         ^~~\n",
		"test.js:2:1: error: 'foo' is not defined. [no-undef]\n",
		"2 problems (1 error, 1 warning)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("color codes in colorless output:\n%s", got)
	}
}

func TestPrettyColor(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	Pretty(&buf, []FileReport{r}, PrettyOpts{Color: true, PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI codes:\n%s", buf.String())
	}
}

func TestPrettyWideChars(t *testing.T) {
	fs := source.NewFileSet()
	src := "let 名前 = \"x\";\n"
	id := fs.AddVirtual("wide.js", []byte(src))
	start := uint32(strings.Index(src, "\""))
	r := FileReport{FileSet: fs, File: fs.Get(id), Diagnostics: []diag.Diagnostic{{
		Severity: diag.SevWarning,
		RuleID:   "quotes",
		Message:  "Strings must use singlequote.",
		Primary:  source.Span{File: id, Start: start, End: start + 3},
	}}}
	var buf bytes.Buffer
	Pretty(&buf, []FileReport{r}, PrettyOpts{PathMode: PathModeBasename})
	// "let " + два широких символа + " = " даёт ширину 11
	if !strings.Contains(buf.String(), "  |"+strings.Repeat(" ", 12)+"^~~\n") {
		t.Errorf("caret misaligned:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	reports := []FileReport{sampleReport(t), {Path: "gone.js", Failure: errors.New("cannot read")}}
	var buf bytes.Buffer
	Short(&buf, reports, PathModeBasename)
	want := "test.js:1:9: warning: Strings must use singlequote. (quotes)\n" +
		"test.js:2:1: error: 'foo' is not defined. (no-undef)\n" +
		"gone.js:0:0: error: cannot read (error)\n"
	if buf.String() != want {
		t.Errorf("Short() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("/home/user/project/src/test.js", []byte("x;\n"), 0)
	fs.SetBaseDir("/home/user/project")
	r := FileReport{FileSet: fs, File: fs.Get(id)}

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.js"},
		{"Relative path", PathModeRelative, "src/test.js"},
		{"Basename only", PathModeBasename, "test.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(&r, tt.mode); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	r := sampleReport(t)
	out := BuildDiagnosticsOutput([]FileReport{r}, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if out.Count != 2 || len(out.Files) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	f := out.Files[0]
	if f.Errors != 1 || f.Warnings != 1 {
		t.Errorf("counts = %d/%d", f.Errors, f.Warnings)
	}
	d := f.Diagnostics[1]
	if d.Severity != "ERROR" || d.RuleID != "no-undef" || d.Code != diag.RuleFinding.ID() {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 || d.Location.EndCol != 4 {
		t.Errorf("location = %+v", d.Location)
	}

	limited := BuildDiagnosticsOutput([]FileReport{r}, JSONOpts{Max: 1})
	if limited.Count != 1 || limited.Files[0].Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("Max/positions not honored: %+v", limited)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, []FileReport{r}, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("decoded count = %d", decoded.Count)
	}
}

func TestSarif(t *testing.T) {
	reports := []FileReport{sampleReport(t), {Path: "gone.js", Failure: errors.New("cannot read")}}
	report, err := BuildSarif(reports, SarifRunMeta{ToolVersion: "1.2.3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Runs) != 1 {
		t.Fatalf("runs = %d", len(report.Runs))
	}
	run := report.Runs[0]
	if got, want := len(run.Tool.Driver.Rules), len(rules.Registry())+2; got != want {
		t.Errorf("declared rules = %d, want %d", got, want)
	}
	if len(run.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(run.Results))
	}
	if *run.Results[0].RuleID != "quotes" || *run.Results[0].Level != "warning" {
		t.Errorf("first result = %s/%s", *run.Results[0].RuleID, *run.Results[0].Level)
	}
	if *run.Results[2].RuleID != SentinelRuleID {
		t.Errorf("failure result rule = %s", *run.Results[2].RuleID)
	}

	var buf bytes.Buffer
	if err := Sarif(&buf, reports, SarifRunMeta{}); err != nil {
		t.Fatal(err)
	}
	var generic map[string]any
	if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if generic["version"] != "2.1.0" {
		t.Errorf("version = %v", generic["version"])
	}
}

func parseSample(t *testing.T, src string) (*source.FileSet, *ast.Builder, parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.js", []byte(src))
	file := fs.Get(id)
	toks := lexer.Tokenize(file, lexer.Options{Strict: true})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(file, toks, b, parser.Options{})
	return fs, b, res
}

func TestTokens(t *testing.T) {
	fs, _, res := parseSample(t, "let a = 1;")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, res.Tokens, fs); err != nil {
		t.Fatal(err)
	}
	var toks []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &toks); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(toks) != 6 {
		t.Fatalf("got %d tokens, want 6: %s", len(toks), buf.String())
	}
	if toks[0].Class != "Keyword" || toks[1].Class != "Identifier" || toks[1].Column != 5 {
		t.Errorf("unexpected leading tokens: %+v", toks[:2])
	}
	if toks[5].Class != "EOF" {
		t.Errorf("last token = %+v", toks[5])
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, res.Tokens, fs); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 6 {
		t.Errorf("pretty lines = %d:\n%s", lines, buf.String())
	}
}

func TestASTPretty(t *testing.T) {
	fs, b, res := parseSample(t, "let a = 1;\nf(a);\n")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, res.Program, fs); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "Program (1:1-") {
		t.Errorf("unexpected root line:\n%s", got)
	}
	for _, want := range []string{"├─ VariableDeclaration let", "Identifier a (1:5-1:6)", "Literal 1", "└─ "} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	out := BuildASTOutput(b, res.Program, fs)
	if out.Type != "Program" || len(out.Children) != 2 {
		t.Fatalf("unexpected JSON root: %+v", out)
	}
	if out.Children[0].Detail != "let" {
		t.Errorf("declaration detail = %q", out.Children[0].Detail)
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, b, res.Program, fs); err != nil {
		t.Fatal(err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("invalid JSON:\n%s", buf.String())
	}
}
