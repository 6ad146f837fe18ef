package diagfmt

import (
	"sbasic/internal/diag"
	"sbasic/internal/driver"
	"sbasic/internal/source"
)

// Unit is one program's diagnostics together with the text they point into.
type Unit struct {
	Path        string
	Lines       []string
	Diagnostics []diag.Diagnostic
	// Dropped counts diagnostics cut by the bag limit.
	Dropped int
}

// FromCompilation builds a unit from a finished compilation.
func FromCompilation(c *driver.Compilation) Unit {
	u := Unit{
		Path:        c.Path(),
		Diagnostics: c.Diagnostics(),
		Dropped:     c.Bag.Dropped(),
	}
	if c.File != nil {
		u.Lines = c.File.Lines
	} else {
		u.Lines = source.SplitLines(c.Text)
	}
	return u
}

func (u Unit) line(n int) string {
	if n < 0 || n >= len(u.Lines) {
		return ""
	}
	return u.Lines[n]
}

func countDiagnostics(units []Unit) int {
	n := 0
	for _, u := range units {
		n += len(u.Diagnostics)
	}
	return n
}
