package driver

import (
	"lintel/internal/diag"
	"lintel/internal/lint"
	"lintel/internal/rules"
	"lintel/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Unit holds the AST, tokens and scopes.
	Unit *rules.Unit
	// Diagnostics are the lexer, parser and resolver findings in source order.
	Diagnostics []diag.Diagnostic
}

// Parse runs the front end (lexer, parser, resolver) on the file at path.
func Parse(path string, cfg lint.Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, readFailure(err)
	}
	file := fs.Get(fileID)
	unit, diags := lint.Front(fs, file, cfg)
	return &ParseResult{
		FileSet:     fs,
		File:        file,
		Unit:        unit,
		Diagnostics: diags,
	}, nil
}
