package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidatePrintsCompactJSON(t *testing.T) {
	path := writeSource(t, "a.js", "y();\n")
	code, stdout, stderr := runCLI(t, "validate", path)
	if code != 0 {
		t.Fatalf("exit = %d, stderr %q", code, stderr)
	}
	want := `[{"message":"'y' is not defined.","line":1,"column":1,"ruleId":"no-undef"}]` + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestValidateRuleOverrides(t *testing.T) {
	path := writeSource(t, "a.js", "y();\n")
	code, stdout, _ := runCLI(t, "validate", "--rule", "no-undef=off", "--rule", "no-such-rule=error", path)
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if stdout != "[]\n" {
		t.Fatalf("stdout = %q, want []", stdout)
	}
}

func TestValidateUsage(t *testing.T) {
	code, stdout, stderr := runCLI(t, "validate")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, validateUsage) {
		t.Fatalf("stderr %q lacks usage", stderr)
	}
}

func TestValidateMissingFileSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.js")
	code, stdout, stderr := runCLI(t, "validate", path)
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	var msgs []map[string]any
	if err := json.Unmarshal([]byte(stderr), &msgs); err != nil {
		t.Fatalf("stderr is not JSON: %v (%q)", err, stderr)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	m := msgs[0]
	if m["line"] != float64(0) || m["column"] != float64(0) || m["ruleId"] != "error" {
		t.Fatalf("sentinel = %v", m)
	}
	if msg, _ := m["message"].(string); !strings.Contains(msg, "missing.js") {
		t.Fatalf("sentinel message %q does not name the file", msg)
	}
}

func TestLintExitStatus(t *testing.T) {
	warnOnly := writeSource(t, "w.js", "var x;\n")
	broken := writeSource(t, "e.js", "y();\n")

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"warnings pass", []string{"lint", "--ui", "off", "--format", "short", warnOnly}, 0},
		{"warnings as errors", []string{"lint", "--ui", "off", "--format", "short", "--warnings-as-errors", warnOnly}, 1},
		{"error fails", []string{"lint", "--ui", "off", "--format", "short", broken}, 1},
		{"rule disabled", []string{"lint", "--ui", "off", "--format", "short", "--rule", "no-undef=off", broken}, 0},
		{"bad format", []string{"lint", "--format", "xml", warnOnly}, 2},
		{"conflicting flags", []string{"lint", "--no-warnings", "--warnings-as-errors", warnOnly}, 2},
	}
	for _, tc := range cases {
		code, _, stderr := runCLI(t, tc.args...)
		if code != tc.want {
			t.Fatalf("%s: exit = %d, want %d (stderr %q)", tc.name, code, tc.want, stderr)
		}
	}
}

func TestLintShortOutput(t *testing.T) {
	path := writeSource(t, "e.js", "y();\n")
	_, stdout, _ := runCLI(t, "lint", "--ui", "off", "--format", "short", path)
	if !strings.Contains(stdout, "'y' is not defined.") || !strings.Contains(stdout, "no-undef") {
		t.Fatalf("short output %q", stdout)
	}
}

func TestLintStdin(t *testing.T) {
	root, _ := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetArgs([]string{"lint", "--format", "eslint", "-"})
	root.SetIn(strings.NewReader("y();\n"))
	root.SetOut(&out)
	root.SetErr(&errOut)
	if err := root.Execute(); err == nil {
		t.Fatalf("expected exit error for undefined reference")
	}
	var files []struct {
		FilePath   string `json:"filePath"`
		ErrorCount int    `json:"errorCount"`
	}
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("eslint output: %v (%q)", err, out.String())
	}
	if len(files) != 1 || files[0].FilePath != stdinName || files[0].ErrorCount != 1 {
		t.Fatalf("files = %+v", files)
	}
}

func TestRulesJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "rules", "--format", "json", "--rule", "quotes=error:double")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	var infos []ruleInfo
	if err := json.Unmarshal([]byte(stdout), &infos); err != nil {
		t.Fatalf("rules output: %v", err)
	}
	ids := make([]string, len(infos))
	for i, r := range infos {
		ids[i] = r.ID
		if r.ID == "quotes" && (r.Level != "error" || r.Option != "double" || r.Default != "warn") {
			t.Fatalf("quotes = %+v", r)
		}
	}
	want := "no-unused-vars,no-undef,semi,quotes,complexity,no-eval,no-useless-concat"
	if got := strings.Join(ids, ","); got != want {
		t.Fatalf("ids = %s, want %s", got, want)
	}
}

func TestParseAndTokenize(t *testing.T) {
	path := writeSource(t, "a.js", "let a = 1;\n")
	code, stdout, _ := runCLI(t, "parse", path)
	if code != 0 || !strings.Contains(stdout, "Program") || !strings.Contains(stdout, "VariableDeclaration") {
		t.Fatalf("parse: exit %d, output %q", code, stdout)
	}
	code, stdout, _ = runCLI(t, "tokenize", "--format", "json", path)
	if code != 0 || !strings.Contains(stdout, "\"a\"") {
		t.Fatalf("tokenize: exit %d, output %q", code, stdout)
	}
}

func TestCPUProfileFlag(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, "a.js", "let a = 1;\nexport { a };\n")
	profile := filepath.Join(dir, "cpu.out")
	runCLI(t, "--cpu-profile", profile, "lint", "--ui", "off", src)
	info, err := os.Stat(profile)
	if err != nil {
		t.Fatalf("cpu profile not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("cpu profile is empty")
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--color", "off")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.HasPrefix(stdout, "lintel ") {
		t.Fatalf("version output %q", stdout)
	}
}
