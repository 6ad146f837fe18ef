package parser

import (
	"sbasic/internal/ast"
	"sbasic/internal/diag"
	"sbasic/internal/token"
)

// parseExpr всегда возвращает узел: на ошибках: ExprMissing.
func (p *Parser) parseExpr() *ast.Expr {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr: подъём по таблице приоритетов, один уровень на оператор.
func (p *Parser) parseBinaryExpr(level int) *ast.Expr {
	if level >= len(binaryPrecedence) {
		return p.parseUnaryExpr()
	}
	left := p.parseBinaryExpr(level + 1)
	op := binaryPrecedence[level]
	for p.at(op) {
		opTok := p.advance()
		right := p.parseBinaryExpr(level + 1)
		left = ast.NewBinary(left, opTok, right)
	}
	return left
}

// parseUnaryExpr: унарный минус берёт целое выражение справа, так что "--x" допустим.
func (p *Parser) parseUnaryExpr() *ast.Expr {
	if p.at(token.Minus) {
		minus := p.advance()
		return ast.NewUnary(minus, p.parseExpr())
	}
	return p.parsePostfixExpr(p.parsePrimary())
}

func (p *Parser) parsePrimary() *ast.Expr {
	if p.atEOL() {
		p.report(diag.UnexpectedEOLExpectingExpression, p.lastRange)
		return ast.NewMissing(p.lastRange.After())
	}

	tok := p.peek()
	switch tok.Kind {
	case token.Identifier, token.NumberLiteral, token.StringLiteral:
		return ast.NewTerminal(p.advance())
	case token.LeftParen:
		lparen := p.advance()
		inner := p.parseExpr()
		return ast.NewParenthesis(lparen, inner, p.eat(token.RightParen))
	default:
		// токен не съедаем: вызывающий разбор может его ждать (например, Then)
		p.report(diag.UnexpectedTokenExpectingExpression, tok.Range, tok.Text)
		return ast.NewMissing(tok.Range)
	}
}
