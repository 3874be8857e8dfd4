package driver

import (
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/lint"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens include comments; the last one is EOF.
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes the file at path for the token dump.
func Tokenize(path string, cfg lint.Config, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, readFailure(err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Strict:   cfg.SourceType != parser.SourceScript,
	})
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
