package diagfmt

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// FileReport is the formatter input for one analyzed file.
type FileReport struct {
	// Path as given by the user; used when the file never made it into a FileSet.
	Path        string
	FileSet     *source.FileSet
	File        *source.File
	Diagnostics []diag.Diagnostic
	// Failure is set when the file could not be analyzed at all (unreadable
	// input). Diagnostics are empty then.
	Failure error
}

// Counts returns the number of error and warning diagnostics.
func (r *FileReport) Counts() (errors, warnings int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	if r.Failure != nil {
		errors++
	}
	return errors, warnings
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context is the number of source lines shown around the primary one.
	Context   int8
	ShowNotes bool
	// Summary prints the "N problems" line at the end.
	Summary bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода на файл
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
}

func formatPath(r *FileReport, mode PathMode) string {
	if r.File == nil {
		return r.Path
	}
	switch mode {
	case PathModeAbsolute:
		return r.File.FormatPath("absolute", "")
	case PathModeRelative:
		return r.File.FormatPath("relative", r.FileSet.BaseDir())
	case PathModeBasename:
		return r.File.FormatPath("basename", "")
	default:
		return r.File.FormatPath("auto", r.FileSet.BaseDir())
	}
}
