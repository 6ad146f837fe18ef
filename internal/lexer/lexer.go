package lexer

import (
	"sbasic/internal/token"
)

type Lexer struct {
	cursor Cursor
	opts   Options
}

func New(text string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(text),
		opts:   opts,
	}
}

// Scan tokenizes the whole text. It never fails: unknown characters become
// Unrecognized tokens and are reported through opts.Reporter.
func Scan(text string, opts Options) []token.Token {
	lx := New(text, opts)
	out := make([]token.Token, 0, len(text)/3+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Next возвращает следующий токен, пропуская пробелы и переводы строк.
// Второе значение false означает конец текста.
func (lx *Lexer) Next() (token.Token, bool) {
	lx.skipBlanks()
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), true
	case isDec(ch):
		return lx.scanNumber(), true
	case ch == '"':
		return lx.scanString(), true
	case ch == '\'':
		return lx.scanComment(), true
	default:
		return lx.scanOperatorOrPunct(), true
	}
}

// skipBlanks consumes spaces, tabs and line terminators.
func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t':
			lx.cursor.Bump()
		case '\r', '\n':
			lx.cursor.NewLine()
		default:
			return
		}
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	return token.Token{
		Kind:  k,
		Text:  lx.cursor.TextFrom(start),
		Range: lx.cursor.RangeFrom(start),
	}
}
