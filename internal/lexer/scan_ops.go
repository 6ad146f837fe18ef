package lexer

import (
	"unicode/utf8"

	"sbasic/internal/diag"
	"sbasic/internal/token"
)

// Жадность: сначала 2-символьные (<>, <=, >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('<', '>'):
		return lx.emit(token.NotEqual, start)
	case lx.try2('<', '='):
		return lx.emit(token.LessThanOrEqual, start)
	case lx.try2('>', '='):
		return lx.emit(token.GreaterThanOrEqual, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '.':
		return lx.emit(token.Dot, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '(':
		return lx.emit(token.LeftParen, start)
	case ')':
		return lx.emit(token.RightParen, start)
	case '[':
		return lx.emit(token.LeftSquareBracket, start)
	case ']':
		return lx.emit(token.RightSquareBracket, start)
	case '=':
		return lx.emit(token.Equal, start)
	case '<':
		return lx.emit(token.LessThan, start)
	case '>':
		return lx.emit(token.GreaterThan, start)
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Multiply, start)
	case '/':
		return lx.emit(token.Divide, start)
	}

	// неизвестный символ: забираем всю руну, чтобы не резать UTF-8
	if ch >= utf8.RuneSelf {
		lx.cursor.Off = int(start)
		_, size := utf8.DecodeRuneInString(lx.cursor.Text[lx.cursor.Off:])
		lx.cursor.Off += size
	}
	tok := lx.emit(token.Unrecognized, start)
	lx.report(diag.UnrecognizedCharacter, tok.Range, tok.Text)
	return tok
}

func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == a && b1 == b {
		lx.cursor.Off += 2
		return true
	}
	return false
}
