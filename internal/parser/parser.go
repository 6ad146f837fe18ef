package parser

import (
	"sbasic/internal/ast"
	"sbasic/internal/diag"
	"sbasic/internal/source"
	"sbasic/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser: состояние разбора команд; одна строка за раз.
type Parser struct {
	opts      Options
	line      []token.Token
	pos       int
	lastRange source.Range // range последнего съеденного токена строки
	// lineHasError ограничивает диагностику одной на строку.
	lineHasError bool
}

// ParseCommands groups tokens by line, drops comments and unrecognized
// tokens, and parses every non-empty line into one command.
func ParseCommands(tokens []token.Token, opts Options) []*ast.Command {
	p := &Parser{opts: opts}
	lines := splitLines(tokens)
	cmds := make([]*ast.Command, 0, len(lines))
	for _, line := range lines {
		cmds = append(cmds, p.parseLine(line))
	}
	return cmds
}

func splitLines(tokens []token.Token) [][]token.Token {
	var (
		lines   [][]token.Token
		current []token.Token
	)
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		if len(current) > 0 && current[0].Range.Line != tok.Range.Line {
			lines = append(lines, current)
			current = nil
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func (p *Parser) parseLine(line []token.Token) *ast.Command {
	p.line = line
	p.pos = 0
	p.lastRange = line[0].Range
	p.lineHasError = false
	// лексер уже отчитался за эту строку
	for _, tok := range line {
		if tok.IsUnterminatedString() {
			p.lineHasError = true
			break
		}
	}

	cmd := p.parseCommand()
	if !p.atEOL() {
		extra := p.peek()
		p.report(diag.UnexpectedTokenExpectingEOL, extra.Range, extra.Text)
	}
	return cmd
}

func (p *Parser) peek() token.Token {
	return p.line[p.pos]
}

func (p *Parser) atEOL() bool {
	return p.pos >= len(p.line)
}

func (p *Parser) at(k token.Kind) bool {
	return !p.atEOL() && p.line[p.pos].Kind == k
}

// at2 проверяет два следующих токена.
func (p *Parser) at2(a, b token.Kind) bool {
	return p.pos+1 < len(p.line) && p.line[p.pos].Kind == a && p.line[p.pos+1].Kind == b
}
