// Package lint is the analysis core: it runs lexer, parser, scope resolver
// and rule engine over one in-memory source text and returns the ordered
// diagnostics. The core does no I/O and never fails; reading files and
// reporting collaborator failures belong to the driver.
package lint

import (
	"fmt"

	"lintel/internal/ast"
	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/observ"
	"lintel/internal/parser"
	"lintel/internal/rules"
	"lintel/internal/source"
	"lintel/internal/symbols"
)

// InputName is the file name given to text analyzed with Analyze.
const InputName = "<input>"

// Result is the outcome of analyzing one file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	// Unit is the front-end output the rules ran on.
	Unit *rules.Unit
	// Diagnostics are ordered by (line, column).
	Diagnostics []diag.Diagnostic
	// SyntaxErrors counts lexer and parser errors among Diagnostics.
	SyntaxErrors int
}

// Analyze lints src with cfg.
func Analyze(src string, cfg Config) Result {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(InputName, []byte(src)))
	return AnalyzeFile(fs, file, cfg, nil)
}

// AnalyzeFile lints a file already loaded into fs. timer may be nil.
func AnalyzeFile(fs *source.FileSet, file *source.File, cfg Config, timer *observ.Timer) Result {
	unit, lexDiags, synDiags := buildUnit(fs, file, cfg, timer)

	done := timer.Track("rules")
	ruleDiags := NewEngine().Evaluate(unit, cfg)
	done(fmt.Sprintf("rules=%d findings=%d", len(cfg.Enabled()), len(ruleDiags)))

	done = timer.Track("aggregate")
	all := Aggregate(fs, lexDiags, synDiags, ruleDiags)
	done("")

	return Result{
		FileSet:      fs,
		File:         file,
		Unit:         unit,
		Diagnostics:  all,
		SyntaxErrors: len(lexDiags) + len(synDiags),
	}
}

// Front runs lexer, parser and resolver only, for the tokenize/parse dumps.
func Front(fs *source.FileSet, file *source.File, cfg Config) (*rules.Unit, []diag.Diagnostic) {
	unit, lexDiags, synDiags := buildUnit(fs, file, cfg, nil)
	return unit, Aggregate(fs, lexDiags, synDiags)
}

func buildUnit(fs *source.FileSet, file *source.File, cfg Config, timer *observ.Timer) (*rules.Unit, []diag.Diagnostic, []diag.Diagnostic) {
	lexBag := diag.NewBag(0)
	synBag := diag.NewBag(0)
	script := cfg.SourceType == parser.SourceScript

	done := timer.Track("lex")
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: lexBag},
		Strict:   !script,
	})
	done(fmt.Sprintf("tokens=%d", len(toks)))

	done = timer.Track("parse")
	b := ast.NewBuilder(ast.Hints{Nodes: uint(len(toks))}, nil)
	pr := parser.ParseFile(file, toks, b, parser.Options{
		SourceType: cfg.SourceType,
		MaxErrors:  cfg.MaxErrors,
		Reporter:   diag.BagReporter{Bag: synBag},
	})
	done(fmt.Sprintf("nodes=%d errors=%d", b.Nodes.Arena.Len(), pr.Errors))

	done = timer.Track("resolve")
	scopes := symbols.Resolve(b, pr.Program, symbols.Options{
		Script:   script,
		Envs:     cfg.Envs,
		Reporter: diag.BagReporter{Bag: synBag},
	})
	done(fmt.Sprintf("scopes=%d unresolved=%d", scopes.Scopes.Len(), len(scopes.Unresolved)))

	unit := &rules.Unit{
		FileSet:  fs,
		File:     file,
		Builder:  b,
		Program:  pr.Program,
		Tokens:   pr.Tokens,
		Comments: pr.Comments,
		Scopes:   scopes,
	}
	return unit, lexBag.Items(), synBag.Items()
}
