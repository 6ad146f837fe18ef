package parser

import (
	"sbasic/internal/ast"
	"sbasic/internal/token"
)

// parseCommand выбирает разбор по первому токену строки.
func (p *Parser) parseCommand() *ast.Command {
	start := p.peek().Range
	var (
		kind ast.CommandKind
		data ast.CommandData
	)

	switch p.peek().Kind {
	case token.KwIf:
		kind, data = ast.CommandIf, p.parseIfCommand(token.KwIf)
	case token.KwElseIf:
		kind, data = ast.CommandElseIf, p.parseIfCommand(token.KwElseIf)
	case token.KwElse:
		kind, data = ast.CommandElse, ast.KeywordData{Keyword: p.advance()}
	case token.KwEndIf:
		kind, data = ast.CommandEndIf, ast.KeywordData{Keyword: p.advance()}
	case token.KwFor:
		kind, data = ast.CommandFor, p.parseForCommand()
	case token.KwEndFor:
		kind, data = ast.CommandEndFor, ast.KeywordData{Keyword: p.advance()}
	case token.KwWhile:
		kind, data = ast.CommandWhile, ast.WhileData{While: p.advance(), Condition: p.parseExpr()}
	case token.KwEndWhile:
		kind, data = ast.CommandEndWhile, ast.KeywordData{Keyword: p.advance()}
	case token.KwGoTo:
		kind = ast.CommandGoTo
		gotoTok := p.advance()
		data = ast.GoToData{GoTo: gotoTok, Label: p.eat(token.Identifier)}
	case token.KwSub:
		kind = ast.CommandSub
		subTok := p.advance()
		data = ast.SubData{Sub: subTok, Name: p.eat(token.Identifier)}
	case token.KwEndSub:
		kind, data = ast.CommandEndSub, ast.KeywordData{Keyword: p.advance()}
	default:
		if p.at2(token.Identifier, token.Colon) {
			ident := p.advance()
			kind, data = ast.CommandLabel, ast.LabelData{Identifier: ident, Colon: p.advance()}
			break
		}
		kind, data = ast.CommandExpression, ast.ExpressionData{Expr: p.parseExpr()}
	}

	return &ast.Command{Kind: kind, Range: start.Cover(p.lastRange), Data: data}
}

func (p *Parser) parseIfCommand(keyword token.Kind) ast.IfData {
	kw := p.eat(keyword)
	cond := p.parseExpr()
	return ast.IfData{Keyword: kw, Condition: cond, Then: p.eat(token.KwThen)}
}

func (p *Parser) parseForCommand() ast.ForData {
	data := ast.ForData{For: p.advance()}
	data.Identifier = p.eat(token.Identifier)
	data.Equal = p.eat(token.Equal)
	data.From = p.parseExpr()
	data.To = p.eat(token.KwTo)
	data.ToExpr = p.parseExpr()
	if p.at(token.KwStep) {
		step := p.advance()
		data.Step = &ast.StepClause{Step: step, Expr: p.parseExpr()}
	}
	return data
}
