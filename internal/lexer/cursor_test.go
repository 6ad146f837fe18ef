package lexer

import (
	"testing"

	"sbasic/internal/source"
)

func TestCursorNewLineVariants(t *testing.T) {
	c := NewCursor("a\r\nb\rc")
	c.Bump()
	c.NewLine()
	if c.Line != 1 || c.Col() != 0 || c.Peek() != 'b' {
		t.Fatalf("after CRLF: line=%d col=%d peek=%q", c.Line, c.Col(), c.Peek())
	}
	c.Bump()
	c.NewLine()
	if c.Line != 2 || c.Peek() != 'c' {
		t.Fatalf("after CR: line=%d peek=%q", c.Line, c.Peek())
	}
}

func TestCursorRangeFrom(t *testing.T) {
	c := NewCursor("x\nabc")
	c.Bump()
	c.NewLine()
	m := c.Mark()
	c.Bump()
	c.Bump()
	if got := c.RangeFrom(m); got != (source.Range{Line: 1, Start: 0, End: 2}) {
		t.Fatalf("RangeFrom = %v", got)
	}
	if c.TextFrom(m) != "ab" {
		t.Fatalf("TextFrom = %q", c.TextFrom(m))
	}
}
