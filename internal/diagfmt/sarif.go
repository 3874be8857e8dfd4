package diagfmt

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"lintel/internal/diag"
	"lintel/internal/rules"
)

// syntaxRuleID names the SARIF rule used for lexer and parser diagnostics.
const syntaxRuleID = "syntax"

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

// BuildSarif assembles a SARIF 2.1.0 report with one run. Every registered
// rule is declared up front so consumers see the full rule set even for a
// clean run.
func BuildSarif(reports []FileReport, meta SarifRunMeta) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}
	name := meta.ToolName
	if name == "" {
		name = "lintel"
	}
	run := sarif.NewRunWithInformationURI(name, meta.InformationURI)
	if meta.ToolVersion != "" {
		version := meta.ToolVersion
		run.Tool.Driver.Version = &version
	}

	for _, r := range rules.Registry() {
		run.AddRule(r.ID).
			WithDescription(r.Doc).
			WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel(sarifLevel(r.DefaultSeverity)))
	}
	run.AddRule(syntaxRuleID).
		WithDescription("Lexical and syntax errors").
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("error"))
	run.AddRule(SentinelRuleID).
		WithDescription("The file could not be analyzed").
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("error"))

	for i := range reports {
		r := &reports[i]
		path := formatPath(r, PathModeRelative)
		artifact := sarif.NewArtifactLocation().WithUri(path)

		if r.Failure != nil {
			run.AddResult(sarif.NewRuleResult(SentinelRuleID).
				WithLevel("error").
				WithMessage(sarif.NewTextMessage(r.Failure.Error())).
				WithLocations([]*sarif.Location{
					sarif.NewLocation().WithPhysicalLocation(sarif.NewPhysicalLocation().WithArtifactLocation(artifact)),
				}))
			continue
		}
		for _, d := range r.Diagnostics {
			start, end := r.FileSet.Resolve(d.Primary)
			region := sarif.NewRegion().
				WithStartLine(int(start.Line)).
				WithStartColumn(int(start.Col)).
				WithEndLine(int(end.Line)).
				WithEndColumn(int(end.Col))
			ruleID := d.RuleID
			if ruleID == "" {
				ruleID = syntaxRuleID
			}
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(artifact).
					WithRegion(region),
			)
			run.AddResult(sarif.NewRuleResult(ruleID).
				WithLevel(sarifLevel(d.Severity)).
				WithMessage(sarif.NewTextMessage(d.Message)).
				WithLocations([]*sarif.Location{location}))
		}
	}
	report.AddRun(run)
	return report, nil
}

// Sarif форматирует диагностики в SARIF (v2.1.0).
func Sarif(w io.Writer, reports []FileReport, meta SarifRunMeta) error {
	report, err := BuildSarif(reports, meta)
	if err != nil {
		return err
	}
	return report.PrettyWrite(w)
}
