package parser

import (
	"sbasic/internal/diag"
	"sbasic/internal/source"
	"sbasic/internal/token"
)

// advance: съедает следующий токен и обновляет lastRange
func (p *Parser) advance() token.Token {
	tok := p.line[p.pos]
	p.pos++
	p.lastRange = tok.Range
	return tok
}

// eat: ожидаем конкретный токен. Если его нет: репортим и синтезируем Missing,
// не трогая текущую позицию.
func (p *Parser) eat(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	if p.atEOL() {
		p.report(diag.UnexpectedEOLExpectingToken, p.lastRange, k.Text())
		return token.MissingAt(p.lastRange.After())
	}
	tok := p.peek()
	p.report(diag.UnexpectedTokenExpectingToken, tok.Range, tok.Text, k.Text())
	return token.MissingAt(tok.Range)
}

// report пропускает всё после первой ошибки в строке.
func (p *Parser) report(code diag.Code, r source.Range, args ...string) {
	if p.lineHasError {
		return
	}
	p.lineHasError = true
	diag.ReportError(p.opts.Reporter, code, r, args...)
}
