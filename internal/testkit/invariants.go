// Package testkit checks structural invariants of compiler output. Tests and
// fuzz targets run every compilation through Check.
package testkit

import (
	"errors"
	"fmt"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/source"
	"sbasic/internal/token"
)

// Artifacts is everything one compilation produced. Stages that did not run
// are left nil and skipped.
type Artifacts struct {
	Text        string
	Tokens      []token.Token
	Commands    []*ast.Command
	Tree        *ast.ParseTree
	Bound       *bound.Tree
	Diagnostics []diag.Diagnostic
}

// Check runs every invariant and joins the violations.
func Check(a Artifacts) error {
	lines := source.SplitLines(a.Text)
	errs := []error{
		CheckTokens(lines, a.Tokens),
		CheckRanges(lines, a.Diagnostics),
	}
	if a.Commands != nil {
		errs = append(errs, CheckCommands(lines, a.Commands))
	}
	if a.Tree != nil {
		errs = append(errs, CheckParseTree(a.Tree, len(a.Commands)))
		if a.Bound != nil {
			errs = append(errs, CheckBoundTree(a.Tree, a.Bound))
		}
	}
	return errors.Join(errs...)
}

func withinLines(lines []string, r source.Range) bool {
	if r.Line < 0 || r.Line >= len(lines) {
		return false
	}
	return 0 <= r.Start && r.Start <= r.End && r.End <= len(lines[r.Line])
}

// CheckTokens verifies that tokens are ordered, do not overlap, stay on their
// line and carry exactly the text they cover.
func CheckTokens(lines []string, toks []token.Token) error {
	prev := source.Range{}
	for i, tok := range toks {
		r := tok.Range
		if !withinLines(lines, r) {
			return fmt.Errorf("token %d %v: range %v outside the text", i, tok.Kind, r)
		}
		if r.Empty() {
			return fmt.Errorf("token %d %v: empty range %v", i, tok.Kind, r)
		}
		if i > 0 && (r.Line < prev.Line || (r.Line == prev.Line && r.Start < prev.End)) {
			return fmt.Errorf("token %d %v: range %v overlaps or precedes %v", i, tok.Kind, r, prev)
		}
		if got := lines[r.Line][r.Start:r.End]; got != tok.Text {
			return fmt.Errorf("token %d %v: text %q, source has %q", i, tok.Kind, tok.Text, got)
		}
		prev = r
	}
	return nil
}

// CheckRanges verifies that every diagnostic points into the text.
func CheckRanges(lines []string, diags []diag.Diagnostic) error {
	for _, d := range diags {
		if !withinLines(lines, d.Range) {
			return fmt.Errorf("%s at %v points outside the text", d.Code.ID(), d.Range)
		}
	}
	return nil
}

// CheckCommands verifies that commands are non-nil, one line each, and come
// in source order.
func CheckCommands(lines []string, cmds []*ast.Command) error {
	prev := -1
	for i, cmd := range cmds {
		if cmd == nil || cmd.Data == nil {
			return fmt.Errorf("command %d is nil", i)
		}
		if !withinLines(lines, cmd.Range) {
			return fmt.Errorf("command %d %v: range %v outside the text", i, cmd.Kind, cmd.Range)
		}
		if cmd.Range.Line <= prev {
			return fmt.Errorf("command %d %v: line %d after line %d", i, cmd.Kind, cmd.Range.Line, prev)
		}
		prev = cmd.Range.Line
	}
	return nil
}

// CheckParseTree verifies the tree is complete: no nil nodes, and every
// command of the input is consumed at most once. Synthesized Missing
// closers are not counted.
func CheckParseTree(tree *ast.ParseTree, commands int) error {
	seen := make(map[*ast.Command]struct{}, commands)
	visit := func(cmd *ast.Command, what string) error {
		if cmd == nil {
			return fmt.Errorf("nil %s command", what)
		}
		if cmd.Kind == ast.CommandMissing {
			return nil
		}
		if _, dup := seen[cmd]; dup {
			return fmt.Errorf("%s command at %v used twice", what, cmd.Range)
		}
		seen[cmd] = struct{}{}
		return nil
	}

	var walk func(stmts []*ast.Stmt) error
	walk = func(stmts []*ast.Stmt) error {
		for _, st := range stmts {
			if st == nil {
				return errors.New("nil statement")
			}
			var err error
			switch data := st.Data.(type) {
			case ast.SubModuleData:
				err = errors.Join(visit(data.Sub, "Sub"), walk(data.Statements), visit(data.EndSub, "EndSub"))
			case ast.IfStmtData:
				err = errors.Join(visit(data.IfPart.Command, "If"), walk(data.IfPart.Statements))
				for _, part := range data.ElseIfParts {
					err = errors.Join(err, visit(part.Command, "ElseIf"), walk(part.Statements))
				}
				if data.ElsePart != nil {
					err = errors.Join(err, visit(data.ElsePart.Command, "Else"), walk(data.ElsePart.Statements))
				}
				err = errors.Join(err, visit(data.EndIf, "EndIf"))
			case ast.WhileStmtData:
				err = errors.Join(visit(data.While, "While"), walk(data.Statements), visit(data.EndWhile, "EndWhile"))
			case ast.ForStmtData:
				err = errors.Join(visit(data.For, "For"), walk(data.Statements), visit(data.EndFor, "EndFor"))
			case ast.CommandStmtData:
				err = visit(data.Command, "statement")
			default:
				return fmt.Errorf("unexpected statement payload %T", st.Data)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree.MainModule); err != nil {
		return err
	}
	for _, sub := range tree.SubModules {
		if _, ok := sub.Data.(ast.SubModuleData); !ok {
			return fmt.Errorf("submodule list holds %T", sub.Data)
		}
	}
	if err := walk(tree.SubModules); err != nil {
		return err
	}
	if len(seen) > commands {
		return fmt.Errorf("tree holds %d commands, input had %d", len(seen), commands)
	}
	return nil
}

// CheckBoundTree verifies that binding kept the shape of the parse tree: one
// bound statement per syntax statement, no nil expressions, and every named
// submodule bound from its last definition.
func CheckBoundTree(tree *ast.ParseTree, bt *bound.Tree) error {
	if bt.MainModule == nil {
		return errors.New("bound tree has no main module")
	}
	if err := checkBlock(tree.MainModule, bt.MainModule.Statements); err != nil {
		return fmt.Errorf("main module: %w", err)
	}
	last := make(map[string]*ast.Stmt)
	for _, sub := range tree.SubModules {
		if name := sub.Data.(ast.SubModuleData).Name(); name != "" {
			last[name] = sub
		}
	}
	if len(last) != len(bt.SubModules) {
		return fmt.Errorf("%d named submodules, %d bound", len(last), len(bt.SubModules))
	}
	for name, syntax := range last {
		m, ok := bt.SubModules[name]
		if !ok {
			return fmt.Errorf("submodule %s is not bound", name)
		}
		if m.Syntax != syntax {
			return fmt.Errorf("submodule %s is bound from another definition", name)
		}
		if err := checkBlock(syntax.Data.(ast.SubModuleData).Statements, m.Statements); err != nil {
			return fmt.Errorf("submodule %s: %w", name, err)
		}
	}
	return nil
}

func checkBlock(syntax []*ast.Stmt, stmts []*bound.Stmt) error {
	if len(syntax) != len(stmts) {
		return fmt.Errorf("%d statements bound from %d", len(stmts), len(syntax))
	}
	for i, st := range stmts {
		if st == nil {
			return fmt.Errorf("statement %d is nil", i)
		}
		if st.Syntax != syntax[i] {
			return fmt.Errorf("statement %d is bound from another syntax node", i)
		}
		if err := checkStmt(st); err != nil {
			return fmt.Errorf("statement %d (%v): %w", i, st.Kind, err)
		}
	}
	return nil
}

func checkStmt(st *bound.Stmt) error {
	switch data := st.Data.(type) {
	case bound.IfData:
		src := st.Syntax.Data.(ast.IfStmtData)
		err := errors.Join(checkExpr(data.IfPart.Condition), checkBlock(src.IfPart.Statements, data.IfPart.Statements))
		if len(src.ElseIfParts) != len(data.ElseIfParts) {
			return fmt.Errorf("%d ElseIf parts bound from %d", len(data.ElseIfParts), len(src.ElseIfParts))
		}
		for i, part := range data.ElseIfParts {
			err = errors.Join(err, checkExpr(part.Condition), checkBlock(src.ElseIfParts[i].Statements, part.Statements))
		}
		if (src.ElsePart == nil) != (data.ElsePart == nil) {
			return errors.New("else part lost or invented")
		}
		if data.ElsePart != nil {
			err = errors.Join(err, checkBlock(src.ElsePart.Statements, data.ElsePart.Statements))
		}
		return err
	case bound.WhileData:
		src := st.Syntax.Data.(ast.WhileStmtData)
		return errors.Join(checkExpr(data.Condition), checkBlock(src.Statements, data.Statements))
	case bound.ForData:
		src := st.Syntax.Data.(ast.ForStmtData)
		err := errors.Join(checkExpr(data.From), checkExpr(data.To), checkBlock(src.Statements, data.Statements))
		if data.Step != nil {
			err = errors.Join(err, checkExpr(data.Step))
		}
		return err
	case bound.CallData:
		return checkExpr(data.Call)
	case bound.AssignmentData:
		return errors.Join(checkExpr(data.Target), checkExpr(data.Value))
	case bound.InvalidExpressionData:
		return checkExpr(data.Expr)
	case bound.LabelData, bound.GoToData:
		return nil
	default:
		return fmt.Errorf("unexpected statement payload %T", st.Data)
	}
}

func checkExpr(e *bound.Expr) error {
	if e == nil {
		return errors.New("nil expression")
	}
	if e.Syntax == nil || e.Data == nil {
		return fmt.Errorf("%v expression without syntax or payload", e.Kind)
	}
	switch data := e.Data.(type) {
	case bound.NegationData:
		return checkExpr(data.Operand)
	case bound.BinaryData:
		if data.Op.Kind() != e.Kind {
			return fmt.Errorf("%v operator inside a %v node", data.Op, e.Kind)
		}
		return errors.Join(checkExpr(data.Left), checkExpr(data.Right))
	case bound.ParenthesisData:
		return checkExpr(data.Inner)
	case bound.ArrayAccessData:
		for _, idx := range data.Indices {
			if err := checkExpr(idx); err != nil {
				return err
			}
		}
		return nil
	case bound.LibraryMethodCallData:
		for _, arg := range data.Args {
			if err := checkExpr(arg); err != nil {
				return err
			}
		}
		return nil
	case bound.VariableData, bound.LibraryTypeData, bound.LibraryPropertyData, bound.LibraryMethodData,
		bound.SubModuleData, bound.StringLiteralData, bound.NumberLiteralData, bound.InvalidData:
		return nil
	default:
		return fmt.Errorf("unexpected expression payload %T", e.Data)
	}
}
