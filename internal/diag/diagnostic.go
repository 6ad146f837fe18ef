package diag

import (
	"sbasic/internal/source"
)

type Diagnostic struct {
	Severity Severity
	Code     Code
	Range    source.Range
	Args     []string
}

// Arg returns the i-th argument or "" when absent.
func (d Diagnostic) Arg(i int) string {
	if i < 0 || i >= len(d.Args) {
		return ""
	}
	return d.Args[i]
}
