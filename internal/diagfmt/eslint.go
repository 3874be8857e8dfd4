package diagfmt

import (
	"encoding/json"
	"io"

	"lintel/internal/diag"
)

// ESLintMessage is the boundary form of one diagnostic: exactly message,
// line, column and ruleId (null for syntax errors).
type ESLintMessage struct {
	Message string  `json:"message"`
	Line    uint32  `json:"line"`
	Column  uint32  `json:"column"`
	RuleID  *string `json:"ruleId"`
}

// SentinelRuleID marks the single message that stands for a failed analysis.
const SentinelRuleID = "error"

// Sentinel encodes a collaborator failure (unreadable file and the like) as
// the one-element list the boundary prints instead of diagnostics.
func Sentinel(err error) []ESLintMessage {
	id := SentinelRuleID
	return []ESLintMessage{{Message: err.Error(), Line: 0, Column: 0, RuleID: &id}}
}

// ESLintMessages converts one file report. A failed report becomes the sentinel.
func ESLintMessages(r *FileReport) []ESLintMessage {
	if r.Failure != nil {
		return Sentinel(r.Failure)
	}
	out := make([]ESLintMessage, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		pos := r.FileSet.Position(d.Primary)
		msg := ESLintMessage{Message: d.Message, Line: pos.Line, Column: pos.Col}
		if d.RuleID != "" {
			id := d.RuleID
			msg.RuleID = &id
		}
		out = append(out, msg)
	}
	return out
}

// ValidatorJSON writes the messages of one file as a compact JSON array
// followed by a newline, the exact output of the validate command.
func ValidatorJSON(w io.Writer, r *FileReport) error {
	return writeCompact(w, ESLintMessages(r))
}

// WriteMessages writes an already built message list, e.g. the sentinel.
func WriteMessages(w io.Writer, msgs []ESLintMessage) error {
	return writeCompact(w, msgs)
}

func writeCompact(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	// JSON.stringify не экранирует <, > и &
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// eslintFileResult mirrors one entry of ESLint's json formatter.
type eslintFileResult struct {
	FilePath     string              `json:"filePath"`
	Messages     []eslintFullMessage `json:"messages"`
	ErrorCount   int                 `json:"errorCount"`
	WarningCount int                 `json:"warningCount"`
}

type eslintFullMessage struct {
	RuleID    *string `json:"ruleId"`
	Severity  int     `json:"severity"`
	Message   string  `json:"message"`
	Line      uint32  `json:"line"`
	Column    uint32  `json:"column"`
	EndLine   uint32  `json:"endLine,omitempty"`
	EndColumn uint32  `json:"endColumn,omitempty"`
	Fatal     bool    `json:"fatal,omitempty"`
}

// ESLintJSON writes reports in the shape of ESLint's json formatter:
// one entry per file with severities 1 (warn) and 2 (error).
func ESLintJSON(w io.Writer, reports []FileReport, pathMode PathMode) error {
	out := make([]eslintFileResult, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		entry := eslintFileResult{FilePath: formatPath(r, pathMode), Messages: []eslintFullMessage{}}
		entry.ErrorCount, entry.WarningCount = r.Counts()
		if r.Failure != nil {
			id := SentinelRuleID
			entry.Messages = append(entry.Messages, eslintFullMessage{
				RuleID: &id, Severity: diag.SevError.ESLint(), Message: r.Failure.Error(), Fatal: true,
			})
		}
		for _, d := range r.Diagnostics {
			start, end := r.FileSet.Resolve(d.Primary)
			msg := eslintFullMessage{
				Severity: d.Severity.ESLint(),
				Message:  d.Message,
				Line:     start.Line,
				Column:   start.Col,
				Fatal:    d.IsSyntax(),
			}
			if !d.Primary.Empty() {
				msg.EndLine, msg.EndColumn = end.Line, end.Col
			}
			if d.RuleID != "" {
				id := d.RuleID
				msg.RuleID = &id
			}
			entry.Messages = append(entry.Messages, msg)
		}
		out = append(out, entry)
	}
	return writeCompact(w, out)
}
