package parser

import (
	"sbasic/internal/ast"
	"sbasic/internal/diag"
	"sbasic/internal/token"
)

// parsePostfixExpr жадно применяет .ident, [expr] и (args).
func (p *Parser) parsePostfixExpr(expr *ast.Expr) *ast.Expr {
	for {
		switch {
		case p.at(token.Dot):
			expr = p.parseMemberExpr(expr)
		case p.at(token.LeftSquareBracket):
			expr = p.parseIndexExpr(expr)
		case p.at(token.LeftParen):
			expr = p.parseCallExpr(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseMemberExpr(base *ast.Expr) *ast.Expr {
	dot := p.advance()
	return ast.NewObjectAccess(base, dot, p.eat(token.Identifier))
}

func (p *Parser) parseIndexExpr(base *ast.Expr) *ast.Expr {
	lbracket := p.advance()
	index := p.parseExpr()
	return ast.NewArrayAccess(base, lbracket, index, p.eat(token.RightSquareBracket))
}

// parseCallExpr парсит вызов: base(a, b, ...). Лишняя запятая в начале,
// подряд или в конце списка даёт UnexpectedToken_ExpectingToken.
func (p *Parser) parseCallExpr(base *ast.Expr) *ast.Expr {
	lparen := p.advance()

	var (
		args      []*ast.Expr
		commas    []token.Token
		expectArg = true
	)
	for !p.atEOL() && !p.at(token.RightParen) {
		if p.at(token.Comma) {
			comma := p.advance()
			if expectArg {
				p.report(diag.UnexpectedTokenExpectingToken, comma.Range, comma.Text, token.RightParen.Text())
			}
			commas = append(commas, comma)
			expectArg = true
			continue
		}
		if !expectArg {
			break
		}
		args = append(args, p.parseExpr())
		expectArg = false
	}
	if expectArg && len(commas) > 0 {
		last := commas[len(commas)-1]
		p.report(diag.UnexpectedTokenExpectingToken, last.Range, last.Text, token.RightParen.Text())
	}

	return ast.NewCall(base, lparen, args, commas, p.eat(token.RightParen))
}
