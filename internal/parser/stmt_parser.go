package parser

import (
	"fmt"
	"slices"

	"sbasic/internal/ast"
	"sbasic/internal/diag"
	"sbasic/internal/source"
)

// stmtParser собирает блоки из плоского списка команд.
type stmtParser struct {
	cmds []*ast.Command
	pos  int
	opts Options
}

// ParseStatements builds the block structure. Every submodule in the result
// has a complete body; unmatched closers are reported and dropped, missing
// closers are synthesised.
func ParseStatements(cmds []*ast.Command, opts Options) *ast.ParseTree {
	p := &stmtParser{cmds: cmds, opts: opts}
	tree := &ast.ParseTree{}

	var (
		sub  *ast.Command
		body []*ast.Stmt
	)
	for !p.eof() {
		c := p.peek()
		switch c.Kind {
		case ast.CommandSub:
			p.pos++
			if sub != nil {
				p.report(diag.CannotDefineASubInsideAnotherSub, c.Range)
				continue
			}
			sub, body = c, nil
		case ast.CommandEndSub:
			p.pos++
			if sub == nil {
				p.report(diag.CannotHaveCommandWithoutPreviousCommand, c.Range, c.Kind.Text(), ast.CommandSub.Text())
				continue
			}
			tree.SubModules = append(tree.SubModules, newSubModule(sub, body, c))
			sub, body = nil, nil
		default:
			stmt := p.parseStatement()
			if stmt == nil {
				continue
			}
			if sub != nil {
				body = append(body, stmt)
			} else {
				tree.MainModule = append(tree.MainModule, stmt)
			}
		}
	}
	if sub != nil {
		tree.SubModules = append(tree.SubModules, newSubModule(sub, body, p.eat(ast.CommandEndSub)))
	}
	return tree
}

func newSubModule(sub *ast.Command, body []*ast.Stmt, endSub *ast.Command) *ast.Stmt {
	return &ast.Stmt{
		Kind: ast.StmtSubModule,
		Data: ast.SubModuleData{Sub: sub, Statements: body, EndSub: endSub},
	}
}

func (p *stmtParser) eof() bool {
	return p.pos >= len(p.cmds)
}

func (p *stmtParser) peek() *ast.Command {
	return p.cmds[p.pos]
}

func (p *stmtParser) at(kinds ...ast.CommandKind) bool {
	return !p.eof() && slices.Contains(kinds, p.cmds[p.pos].Kind)
}

func (p *stmtParser) advance() *ast.Command {
	c := p.cmds[p.pos]
	p.pos++
	return c
}

// eat берёт команду нужного вида или синтезирует Missing, не сдвигая позицию.
func (p *stmtParser) eat(kind ast.CommandKind) *ast.Command {
	if p.at(kind) {
		return p.advance()
	}
	if p.eof() {
		r := p.endRange()
		p.report(diag.UnexpectedEOFExpectingCommand, r, kind.Text())
		return ast.NewMissingCommand(kind, r)
	}
	c := p.peek()
	p.report(diag.UnexpectedCommandExpectingCommand, c.Range, c.Kind.Text(), kind.Text())
	return ast.NewMissingCommand(kind, c.Range)
}

func (p *stmtParser) endRange() source.Range {
	if len(p.cmds) == 0 {
		return source.Range{}
	}
	return p.cmds[len(p.cmds)-1].Range
}

func (p *stmtParser) report(code diag.Code, r source.Range, args ...string) {
	diag.ReportError(p.opts.Reporter, code, r, args...)
}

// parseStatementsExcept читает тело блока до одной из ожидаемых команд.
// Sub и EndSub тоже останавливают тело: они бывают только на верхнем уровне.
func (p *stmtParser) parseStatementsExcept(kinds ...ast.CommandKind) []*ast.Stmt {
	var stmts []*ast.Stmt
	for !p.eof() && !p.at(kinds...) && !p.at(ast.CommandSub, ast.CommandEndSub) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// parseStatement возвращает nil, если команда отброшена с диагностикой.
func (p *stmtParser) parseStatement() *ast.Stmt {
	c := p.peek()
	switch c.Kind {
	case ast.CommandIf:
		return p.parseIfStatement()
	case ast.CommandWhile:
		return p.parseWhileStatement()
	case ast.CommandFor:
		return p.parseForStatement()
	case ast.CommandLabel:
		return p.commandStatement(ast.StmtLabel)
	case ast.CommandGoTo:
		return p.commandStatement(ast.StmtGoTo)
	case ast.CommandExpression:
		return p.commandStatement(ast.StmtExpression)
	case ast.CommandElseIf, ast.CommandElse, ast.CommandEndIf:
		p.dropOrphan(ast.CommandIf)
		return nil
	case ast.CommandEndFor:
		p.dropOrphan(ast.CommandFor)
		return nil
	case ast.CommandEndWhile:
		p.dropOrphan(ast.CommandWhile)
		return nil
	default:
		panic(fmt.Sprintf("parser: unexpected command %v at statement position", c.Kind))
	}
}

func (p *stmtParser) commandStatement(kind ast.StmtKind) *ast.Stmt {
	return &ast.Stmt{Kind: kind, Data: ast.CommandStmtData{Command: p.advance()}}
}

func (p *stmtParser) dropOrphan(opener ast.CommandKind) {
	c := p.advance()
	p.report(diag.CannotHaveCommandWithoutPreviousCommand, c.Range, c.Kind.Text(), opener.Text())
}
