package lexer

import (
	"strings"

	"sbasic/internal/diag"
	"sbasic/internal/token"
)

// scanString reads up to the closing quote on the same line. An unterminated
// literal still runs to the end of the line and scanning continues.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening "
	for !lx.cursor.AtLineEnd() {
		if lx.cursor.Bump() == '"' {
			return lx.emit(token.StringLiteral, start)
		}
	}
	tok := lx.emit(token.StringLiteral, start)
	lx.report(diag.UnterminatedStringLiteral, tok.Range)
	return tok
}

// scanComment reads ' to the end of the line; trailing blanks are not part of the token.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.AtLineEnd() {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Comment, start)
	trimmed := strings.TrimRight(tok.Text, " \t")
	tok.Range.End -= len(tok.Text) - len(trimmed)
	tok.Text = trimmed
	return tok
}
