package source

import (
	"fmt"
)

// Range is a half-open column span [Start, End) on a single source line.
// Lines and columns are 0-based; columns count bytes.
type Range struct {
	Line  int
	Start int
	End   int
}

// Empty reports whether the range covers no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d", r.Line, r.Start, r.End)
}

// Cover returns the smallest range containing both r and other.
// Ranges live on one line; covering across lines is a programming error.
func (r Range) Cover(other Range) Range {
	if r.Line != other.Line {
		panic(fmt.Sprintf("source: cannot cover range %s with range %s on another line", r, other))
	}
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

// Contains reports whether the position (line, col) falls inside r.
// The end column is inclusive so a cursor placed right after a token still hits it.
func (r Range) Contains(line, col int) bool {
	return r.Line == line && col >= r.Start && col <= r.End
}

// After returns an empty range positioned right after r.
func (r Range) After() Range {
	return Range{Line: r.Line, Start: r.End, End: r.End}
}
