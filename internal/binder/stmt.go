package binder

import (
	"fmt"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/token"
)

// statementBinder binds one module. Labels are visible only inside it.
type statementBinder struct {
	rep    diag.Reporter
	exprs  *exprBinder
	labels map[string]struct{}
	gotos  []token.Token
}

func newStatementBinder(mb *moduleBinder) *statementBinder {
	return &statementBinder{
		rep: mb.opts.Reporter,
		exprs: &exprBinder{
			rep:      mb.opts.Reporter,
			libs:     mb.opts.Libraries,
			subNames: mb.subNames,
		},
		labels: make(map[string]struct{}),
	}
}

func (sb *statementBinder) bindStatements(stmts []*ast.Stmt) []*bound.Stmt {
	out := make([]*bound.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, sb.bindStatement(s))
	}
	return out
}

func (sb *statementBinder) bindStatement(s *ast.Stmt) *bound.Stmt {
	switch data := s.Data.(type) {
	case ast.IfStmtData:
		return sb.bindIf(s, data)
	case ast.WhileStmtData:
		cond := data.While.Data.(ast.WhileData).Condition
		return &bound.Stmt{Kind: bound.StmtWhile, Syntax: s, Data: bound.WhileData{
			Condition:  sb.exprs.bind(cond, true),
			Statements: sb.bindStatements(data.Statements),
		}}
	case ast.ForStmtData:
		return sb.bindFor(s, data)
	case ast.CommandStmtData:
		return sb.bindCommand(s, data.Command)
	default:
		panic(fmt.Sprintf("binder: unexpected %v statement inside a module", s.Kind))
	}
}

func (sb *statementBinder) bindIf(s *ast.Stmt, data ast.IfStmtData) *bound.Stmt {
	out := bound.IfData{IfPart: sb.bindConditionPart(data.IfPart)}
	for _, part := range data.ElseIfParts {
		out.ElseIfParts = append(out.ElseIfParts, sb.bindConditionPart(part))
	}
	if data.ElsePart != nil {
		out.ElsePart = &bound.ElsePart{Statements: sb.bindStatements(data.ElsePart.Statements)}
	}
	return &bound.Stmt{Kind: bound.StmtIf, Syntax: s, Data: out}
}

func (sb *statementBinder) bindConditionPart(part ast.ConditionPart) bound.ConditionPart {
	cond := part.Command.Data.(ast.IfData).Condition
	return bound.ConditionPart{
		Condition:  sb.exprs.bind(cond, true),
		Statements: sb.bindStatements(part.Statements),
	}
}

func (sb *statementBinder) bindFor(s *ast.Stmt, data ast.ForStmtData) *bound.Stmt {
	head := data.For.Data.(ast.ForData)
	out := bound.ForData{
		Identifier: head.Identifier.Text,
		From:       sb.exprs.bind(head.From, true),
		To:         sb.exprs.bind(head.ToExpr, true),
	}
	if head.Step != nil {
		out.Step = sb.exprs.bind(head.Step.Expr, true)
	}
	out.Statements = sb.bindStatements(data.Statements)
	return &bound.Stmt{Kind: bound.StmtFor, Syntax: s, Data: out}
}

func (sb *statementBinder) bindCommand(s *ast.Stmt, cmd *ast.Command) *bound.Stmt {
	switch data := cmd.Data.(type) {
	case ast.LabelData:
		sb.labels[data.Identifier.Text] = struct{}{}
		return &bound.Stmt{Kind: bound.StmtLabel, Syntax: s, Data: bound.LabelData{Name: data.Identifier.Text}}
	case ast.GoToData:
		// пропущенную метку уже отметил парсер
		if !data.Label.IsMissing() {
			sb.gotos = append(sb.gotos, data.Label)
		}
		return &bound.Stmt{Kind: bound.StmtGoTo, Syntax: s, Data: bound.GoToData{Label: data.Label.Text}}
	case ast.ExpressionData:
		return sb.bindExpressionStatement(s, data.Expr)
	default:
		panic(fmt.Sprintf("binder: unexpected %v command in statement position", cmd.Kind))
	}
}

// bindExpressionStatement classifies a standalone expression: an assignment,
// a call, or an invalid statement that still occupies its slot.
func (sb *statementBinder) bindExpressionStatement(s *ast.Stmt, e *ast.Expr) *bound.Stmt {
	if bin, ok := e.Data.(ast.BinaryOperatorData); ok && bin.Operator.Kind == token.Equal {
		return sb.bindAssignment(s, e, bin)
	}

	expr := sb.exprs.bind(e, false)
	switch expr.Kind {
	case bound.ExprLibraryMethodCall:
		return &bound.Stmt{Kind: bound.StmtLibraryMethodCall, Syntax: s, Data: bound.CallData{Call: expr}}
	case bound.ExprSubModuleCall:
		return &bound.Stmt{Kind: bound.StmtSubModuleCall, Syntax: s, Data: bound.CallData{Call: expr}}
	}
	if !expr.Info.HasError {
		diag.ReportError(sb.rep, diag.InvalidExpressionStatement, e.Range)
		expr.Info.HasError = true
	}
	return &bound.Stmt{Kind: bound.StmtInvalidExpression, Syntax: s, Data: bound.InvalidExpressionData{Expr: expr}}
}

func (sb *statementBinder) bindAssignment(s *ast.Stmt, e *ast.Expr, bin ast.BinaryOperatorData) *bound.Stmt {
	target := sb.exprs.bind(bin.Left, false)
	value := sb.exprs.bind(bin.Right, true)

	var kind bound.StmtKind
	switch target.Kind {
	case bound.ExprVariable:
		kind = bound.StmtVariableAssignment
	case bound.ExprArrayAccess:
		kind = bound.StmtArrayAssignment
	case bound.ExprLibraryProperty:
		kind = bound.StmtPropertyAssignment
		prop := target.Data.(bound.LibraryPropertyData)
		if !prop.Property.HasSetter {
			diag.ReportError(sb.rep, diag.PropertyHasNoSetter, bin.Left.Range, prop.Library.Name, prop.Property.Name)
		}
	default:
		if !target.Info.HasError {
			diag.ReportError(sb.rep, diag.ValueIsNotAssignable, bin.Left.Range)
		}
		expr := &bound.Expr{
			Kind:   bound.ExprComparison,
			Syntax: e,
			Info:   bound.Info{HasError: true, HasValue: true},
			Data:   bound.BinaryData{Op: bound.OpEqual, Left: target, Right: value},
		}
		return &bound.Stmt{Kind: bound.StmtInvalidExpression, Syntax: s, Data: bound.InvalidExpressionData{Expr: expr}}
	}
	return &bound.Stmt{Kind: kind, Syntax: s, Data: bound.AssignmentData{Target: target, Value: value}}
}

// checkGoTos runs after the whole module is bound so forward jumps resolve.
func (sb *statementBinder) checkGoTos() {
	for _, label := range sb.gotos {
		if _, ok := sb.labels[label.Text]; !ok {
			diag.ReportError(sb.rep, diag.LabelDoesNotExist, label.Range, label.Text)
		}
	}
}
