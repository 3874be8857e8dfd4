package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// Strict enables strict-mode lexical checks (module code is always strict):
	// legacy octal literals and octal escapes are reported.
	Strict bool
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, diag.ParsingErrorPrefix+msg).Emit()
	}
}
