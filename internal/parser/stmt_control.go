package parser

import (
	"sbasic/internal/ast"
)

func (p *stmtParser) parseIfStatement() *ast.Stmt {
	data := ast.IfStmtData{
		IfPart: ast.ConditionPart{Command: p.eat(ast.CommandIf)},
	}
	data.IfPart.Statements = p.parseStatementsExcept(ast.CommandElseIf, ast.CommandElse, ast.CommandEndIf)

	for p.at(ast.CommandElseIf) {
		part := ast.ConditionPart{Command: p.advance()}
		part.Statements = p.parseStatementsExcept(ast.CommandElseIf, ast.CommandElse, ast.CommandEndIf)
		data.ElseIfParts = append(data.ElseIfParts, part)
	}
	if p.at(ast.CommandElse) {
		part := ast.ConditionPart{Command: p.advance()}
		part.Statements = p.parseStatementsExcept(ast.CommandEndIf)
		data.ElsePart = &part
	}
	data.EndIf = p.eat(ast.CommandEndIf)

	return &ast.Stmt{Kind: ast.StmtIf, Data: data}
}

func (p *stmtParser) parseWhileStatement() *ast.Stmt {
	while := p.eat(ast.CommandWhile)
	body := p.parseStatementsExcept(ast.CommandEndWhile)
	return &ast.Stmt{
		Kind: ast.StmtWhile,
		Data: ast.WhileStmtData{While: while, Statements: body, EndWhile: p.eat(ast.CommandEndWhile)},
	}
}

func (p *stmtParser) parseForStatement() *ast.Stmt {
	forCmd := p.eat(ast.CommandFor)
	body := p.parseStatementsExcept(ast.CommandEndFor)
	return &ast.Stmt{
		Kind: ast.StmtFor,
		Data: ast.ForStmtData{For: forCmd, Statements: body, EndFor: p.eat(ast.CommandEndFor)},
	}
}
