package bound

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the bound tree: the main module first, then submodules by name.
// Statements whose expressions carry an error are suffixed with " !".
func Dump(w io.Writer, t *Tree) error {
	p := &printer{w: w}
	p.line("main")
	p.block(t.MainModule.Statements)
	for _, name := range t.SubModuleNames() {
		p.line("sub %s", name)
		p.block(t.SubModules[name].Statements)
	}
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) block(stmts []*Stmt) {
	p.indent++
	for _, s := range stmts {
		p.stmt(s)
	}
	p.indent--
}

func (p *printer) stmt(s *Stmt) {
	switch data := s.Data.(type) {
	case IfData:
		p.line("If %s", FormatExpr(data.IfPart.Condition))
		p.block(data.IfPart.Statements)
		for _, part := range data.ElseIfParts {
			p.line("ElseIf %s", FormatExpr(part.Condition))
			p.block(part.Statements)
		}
		if data.ElsePart != nil {
			p.line("Else")
			p.block(data.ElsePart.Statements)
		}
	case WhileData:
		p.line("While %s", FormatExpr(data.Condition))
		p.block(data.Statements)
	case ForData:
		head := fmt.Sprintf("For %s = %s To %s", data.Identifier, FormatExpr(data.From), FormatExpr(data.To))
		if data.Step != nil {
			head += " Step " + FormatExpr(data.Step)
		}
		p.line("%s", head)
		p.block(data.Statements)
	case LabelData:
		p.line("Label %s", data.Name)
	case GoToData:
		p.line("GoTo %s", data.Label)
	case CallData:
		p.line("%s %s%s", s.Kind, FormatExpr(data.Call), errMark(data.Call))
	case AssignmentData:
		p.line("%s %s = %s%s", s.Kind, FormatExpr(data.Target), FormatExpr(data.Value), errMark(data.Target, data.Value))
	case InvalidExpressionData:
		p.line("%s %s%s", s.Kind, FormatExpr(data.Expr), errMark(data.Expr))
	default:
		panic(fmt.Sprintf("bound: unexpected statement kind %v", s.Kind))
	}
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func errMark(exprs ...*Expr) string {
	for _, e := range exprs {
		if e.Info.HasError {
			return " !"
		}
	}
	return ""
}

// FormatExpr renders a bound expression, e.g. "TextWindow.WriteLine((+ a[1] 2))".
func FormatExpr(e *Expr) string {
	switch data := e.Data.(type) {
	case NegationData:
		return fmt.Sprintf("(- %s)", FormatExpr(data.Operand))
	case BinaryData:
		return fmt.Sprintf("(%s %s %s)", data.Op, FormatExpr(data.Left), FormatExpr(data.Right))
	case ParenthesisData:
		return fmt.Sprintf("(paren %s)", FormatExpr(data.Inner))
	case VariableData:
		return data.Name
	case ArrayAccessData:
		var sb strings.Builder
		sb.WriteString(data.Name)
		for _, idx := range data.Indices {
			sb.WriteString("[" + FormatExpr(idx) + "]")
		}
		return sb.String()
	case LibraryTypeData:
		return data.Library.Name
	case LibraryPropertyData:
		return data.Library.Name + "." + data.Property.Name
	case LibraryMethodData:
		return data.Library.Name + "." + data.Method.Name
	case LibraryMethodCallData:
		args := make([]string, len(data.Args))
		for i, arg := range data.Args {
			args[i] = FormatExpr(arg)
		}
		return data.Library.Name + "." + data.Method.Name + "(" + strings.Join(args, ", ") + ")"
	case SubModuleData:
		if e.Kind == ExprSubModuleCall {
			return data.Name + "()"
		}
		return data.Name
	case StringLiteralData:
		return `"` + data.Value + `"`
	case NumberLiteralData:
		return strconv.FormatFloat(data.Value, 'g', -1, 64)
	case InvalidData:
		return "<invalid>"
	default:
		panic(fmt.Sprintf("bound: unexpected expression kind %v", e.Kind))
	}
}
