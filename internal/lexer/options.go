package lexer

import (
	"sbasic/internal/diag"
	"sbasic/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, r source.Range, args ...string) {
	diag.ReportError(lx.opts.Reporter, code, r, args...)
}
