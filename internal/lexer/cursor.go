package lexer

import (
	"sbasic/internal/source"
)

// Cursor представляет собой позицию в тексте программы.
// Line and LineStart track the current line so ranges can be cut without a line index.
type Cursor struct {
	Text      string
	Off       int
	Line      int
	LineStart int
}

// NewCursor creates a new cursor over text.
func NewCursor(text string) Cursor {
	return Cursor{Text: text}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Text)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Text) {
		return 0, 0, false
	}
	return c.Text[c.Off], c.Text[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Text[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// AtLineEnd reports whether the cursor sits on a line terminator or at EOF.
func (c *Cursor) AtLineEnd() bool {
	if c.EOF() {
		return true
	}
	b := c.Text[c.Off]
	return b == '\n' || b == '\r'
}

// NewLine consumes one CR, LF or CRLF terminator and starts the next line.
func (c *Cursor) NewLine() {
	if c.Eat('\r') {
		c.Eat('\n')
	} else {
		c.Eat('\n')
	}
	c.Line++
	c.LineStart = c.Off
}

// Col returns the current 0-based byte column.
func (c *Cursor) Col() int {
	return c.Off - c.LineStart
}

// Mark это метка, что бы быстро получать Range читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// RangeFrom returns the range of the fragment read since m. Tokens never span lines.
func (c *Cursor) RangeFrom(m Mark) source.Range {
	return source.Range{
		Line:  c.Line,
		Start: int(m) - c.LineStart,
		End:   c.Off - c.LineStart,
	}
}

// TextFrom returns the fragment read since m.
func (c *Cursor) TextFrom(m Mark) string {
	return c.Text[int(m):c.Off]
}
