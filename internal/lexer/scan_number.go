package lexer

import (
	"sbasic/internal/token"
)

// scanNumber reads digits with one optional fractional part. "5." leaves the
// dot for the next token; exponents are not part of the language.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.eatDigits()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits()
	}
	return lx.emit(token.NumberLiteral, start)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
