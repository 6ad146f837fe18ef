package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps syntax trees in an indented text form.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a syntax tree printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// DumpCommands writes one line per command.
func DumpCommands(w io.Writer, cmds []*Command) error {
	p := NewPrinter(w)
	for _, c := range cmds {
		p.line("%s", FormatCommand(c))
	}
	return p.err
}

// DumpTree writes the statement tree.
func DumpTree(w io.Writer, tree *ParseTree) error {
	p := NewPrinter(w)
	p.line("main")
	p.indent++
	p.printStmts(tree.MainModule)
	p.indent--
	for _, sub := range tree.SubModules {
		p.printStmt(sub)
	}
	return p.err
}

func (p *Printer) printStmts(stmts []*Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *Printer) printStmt(s *Stmt) {
	switch data := s.Data.(type) {
	case SubModuleData:
		p.line("%s", FormatCommand(data.Sub))
		p.block(data.Statements)
		p.line("%s", FormatCommand(data.EndSub))
	case IfStmtData:
		p.line("%s", FormatCommand(data.IfPart.Command))
		p.block(data.IfPart.Statements)
		for _, part := range data.ElseIfParts {
			p.line("%s", FormatCommand(part.Command))
			p.block(part.Statements)
		}
		if data.ElsePart != nil {
			p.line("%s", FormatCommand(data.ElsePart.Command))
			p.block(data.ElsePart.Statements)
		}
		p.line("%s", FormatCommand(data.EndIf))
	case WhileStmtData:
		p.line("%s", FormatCommand(data.While))
		p.block(data.Statements)
		p.line("%s", FormatCommand(data.EndWhile))
	case ForStmtData:
		p.line("%s", FormatCommand(data.For))
		p.block(data.Statements)
		p.line("%s", FormatCommand(data.EndFor))
	case CommandStmtData:
		p.line("%s", FormatCommand(data.Command))
	default:
		panic(fmt.Sprintf("ast: unexpected statement kind %v", s.Kind))
	}
}

func (p *Printer) block(stmts []*Stmt) {
	p.indent++
	p.printStmts(stmts)
	p.indent--
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// FormatCommand renders a command on one line, e.g. "If (> x 1) Then".
func FormatCommand(c *Command) string {
	switch data := c.Data.(type) {
	case IfData:
		return fmt.Sprintf("%s %s Then", c.Kind, FormatExpr(data.Condition))
	case KeywordData:
		return c.Kind.String()
	case ForData:
		out := fmt.Sprintf("For %s = %s To %s", tokenText(data.Identifier.Text), FormatExpr(data.From), FormatExpr(data.ToExpr))
		if data.Step != nil {
			out += " Step " + FormatExpr(data.Step.Expr)
		}
		return out
	case WhileData:
		return "While " + FormatExpr(data.Condition)
	case LabelData:
		return tokenText(data.Identifier.Text) + ":"
	case GoToData:
		return "GoTo " + tokenText(data.Label.Text)
	case SubData:
		return "Sub " + tokenText(data.Name.Text)
	case ExpressionData:
		return FormatExpr(data.Expr)
	case MissingCommandData:
		return fmt.Sprintf("<missing %s>", data.Expected.Text())
	default:
		panic(fmt.Sprintf("ast: unexpected command kind %v", c.Kind))
	}
}

// FormatExpr renders an expression as an s-expression.
func FormatExpr(e *Expr) string {
	switch data := e.Data.(type) {
	case UnaryOperatorData:
		return fmt.Sprintf("(- %s)", FormatExpr(data.Operand))
	case BinaryOperatorData:
		return fmt.Sprintf("(%s %s %s)", data.Operator.Kind.Text(), FormatExpr(data.Left), FormatExpr(data.Right))
	case ObjectAccessData:
		return fmt.Sprintf("(. %s %s)", FormatExpr(data.Base), tokenText(data.Identifier.Text))
	case ArrayAccessData:
		return fmt.Sprintf("(index %s %s)", FormatExpr(data.Base), FormatExpr(data.Index))
	case CallData:
		parts := make([]string, 0, len(data.Args)+2)
		parts = append(parts, "call", FormatExpr(data.Base))
		for _, arg := range data.Args {
			parts = append(parts, FormatExpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case TokenData:
		return data.Token.Text
	case ParenthesisData:
		return fmt.Sprintf("(paren %s)", FormatExpr(data.Inner))
	case MissingData:
		return "<missing>"
	default:
		panic(fmt.Sprintf("ast: unexpected expression kind %v", e.Kind))
	}
}

func tokenText(text string) string {
	if text == "" {
		return "<missing>"
	}
	return text
}
