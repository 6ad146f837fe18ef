package diag

import "sbasic/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Range, args []string)
}

// ReportError is a shortcut for SevError diagnostics. A nil reporter drops the finding.
func ReportError(r Reporter, code Code, primary source.Range, args ...string) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, args)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Range, args []string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    primary,
		Args:     args,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Range, []string) {}
