package binder

import (
	"fmt"
	"strconv"
	"strings"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/library"
	"sbasic/internal/token"
)

// exprBinder resolves expressions. A node whose children already carry an
// error never reports a diagnostic of its own.
type exprBinder struct {
	rep      diag.Reporter
	libs     *library.Registry
	subNames map[string]struct{}
}

// bind binds e; with expectValue a void result is reported and marked.
func (b *exprBinder) bind(e *ast.Expr, expectValue bool) *bound.Expr {
	out := b.bindExpr(e)
	if expectValue && !out.Info.HasValue && !out.Info.HasError {
		diag.ReportError(b.rep, diag.UnexpectedVoidExpectingValue, e.Range)
		out.Info.HasError = true
	}
	return out
}

func (b *exprBinder) bindExpr(e *ast.Expr) *bound.Expr {
	switch data := e.Data.(type) {
	case ast.UnaryOperatorData:
		operand := b.bind(data.Operand, true)
		return &bound.Expr{
			Kind:   bound.ExprNegation,
			Syntax: e,
			Info:   bound.Info{HasValue: true}.Merge(operand.Info),
			Data:   bound.NegationData{Operand: operand},
		}
	case ast.BinaryOperatorData:
		op := binaryOp(data.Operator.Kind)
		left := b.bind(data.Left, true)
		right := b.bind(data.Right, true)
		return &bound.Expr{
			Kind:   op.Kind(),
			Syntax: e,
			Info:   bound.Info{HasValue: true}.Merge(left.Info, right.Info),
			Data:   bound.BinaryData{Op: op, Left: left, Right: right},
		}
	case ast.ParenthesisData:
		inner := b.bind(data.Inner, true)
		return &bound.Expr{
			Kind:   bound.ExprParenthesis,
			Syntax: e,
			Info:   bound.Info{HasValue: true}.Merge(inner.Info),
			Data:   bound.ParenthesisData{Inner: inner},
		}
	case ast.ObjectAccessData:
		return b.bindObjectAccess(e, data)
	case ast.ArrayAccessData:
		return b.bindArrayAccess(e, data)
	case ast.CallData:
		return b.bindCall(e, data)
	case ast.TokenData:
		return b.bindTerminal(e, data.Token)
	case ast.MissingData:
		// парсер уже сообщил
		return invalid(e)
	default:
		panic(fmt.Sprintf("binder: unexpected %v expression", e.Kind))
	}
}

func (b *exprBinder) bindTerminal(e *ast.Expr, tok token.Token) *bound.Expr {
	switch e.Kind {
	case ast.ExprIdentifier:
		return b.bindIdentifier(e, tok.Text)
	case ast.ExprNumberLiteral:
		value, err := strconv.ParseFloat(tok.Text, 64)
		info := bound.Info{HasValue: true}
		if err != nil {
			diag.ReportError(b.rep, diag.ValueIsNotANumber, tok.Range, tok.Text)
			value, info.HasError = 0, true
		}
		return &bound.Expr{Kind: bound.ExprNumberLiteral, Syntax: e, Info: info, Data: bound.NumberLiteralData{Value: value}}
	case ast.ExprStringLiteral:
		value := strings.TrimPrefix(tok.Text, `"`)
		if !tok.IsUnterminatedString() {
			value = strings.TrimSuffix(value, `"`)
		}
		return &bound.Expr{
			Kind:   bound.ExprStringLiteral,
			Syntax: e,
			Info:   bound.Info{HasValue: true},
			Data:   bound.StringLiteralData{Value: value},
		}
	default:
		panic(fmt.Sprintf("binder: %v is not a terminal expression", e.Kind))
	}
}

// bindIdentifier: library type, then submodule, then variable.
func (b *exprBinder) bindIdentifier(e *ast.Expr, name string) *bound.Expr {
	if lib, ok := b.libs.Library(name); ok {
		return &bound.Expr{Kind: bound.ExprLibraryType, Syntax: e, Data: bound.LibraryTypeData{Library: lib}}
	}
	if _, ok := b.subNames[name]; ok {
		return &bound.Expr{Kind: bound.ExprSubModule, Syntax: e, Data: bound.SubModuleData{Name: name}}
	}
	return &bound.Expr{
		Kind:   bound.ExprVariable,
		Syntax: e,
		Info:   bound.Info{HasValue: true},
		Data:   bound.VariableData{Name: name},
	}
}

func (b *exprBinder) bindObjectAccess(e *ast.Expr, data ast.ObjectAccessData) *bound.Expr {
	base := b.bind(data.Base, false)
	if base.Info.HasError {
		return invalid(e)
	}
	if base.Kind != bound.ExprLibraryType {
		diag.ReportError(b.rep, diag.UnsupportedDotBaseExpression, data.Base.Range)
		return invalid(e)
	}
	lib := base.Data.(bound.LibraryTypeData).Library
	member := data.Identifier
	if member.IsMissing() {
		return invalid(e)
	}
	if prop, ok := lib.Property(member.Text); ok {
		return &bound.Expr{
			Kind:   bound.ExprLibraryProperty,
			Syntax: e,
			Info:   bound.Info{HasValue: prop.HasGetter},
			Data:   bound.LibraryPropertyData{Library: lib, Property: prop},
		}
	}
	if method, ok := lib.Method(member.Text); ok {
		return &bound.Expr{Kind: bound.ExprLibraryMethod, Syntax: e, Data: bound.LibraryMethodData{Library: lib, Method: method}}
	}
	diag.ReportError(b.rep, diag.LibraryMemberNotFound, member.Range, lib.Name, member.Text)
	return invalid(e)
}

// bindArrayAccess flattens nested indexing onto the variable name.
func (b *exprBinder) bindArrayAccess(e *ast.Expr, data ast.ArrayAccessData) *bound.Expr {
	base := b.bind(data.Base, false)
	index := b.bind(data.Index, true)
	info := bound.Info{HasValue: true}.Merge(base.Info, index.Info)

	switch base.Kind {
	case bound.ExprVariable:
		name := base.Data.(bound.VariableData).Name
		return &bound.Expr{
			Kind:   bound.ExprArrayAccess,
			Syntax: e,
			Info:   info,
			Data:   bound.ArrayAccessData{Name: name, Indices: []*bound.Expr{index}},
		}
	case bound.ExprArrayAccess:
		prev := base.Data.(bound.ArrayAccessData)
		indices := make([]*bound.Expr, 0, len(prev.Indices)+1)
		indices = append(indices, prev.Indices...)
		indices = append(indices, index)
		return &bound.Expr{
			Kind:   bound.ExprArrayAccess,
			Syntax: e,
			Info:   info,
			Data:   bound.ArrayAccessData{Name: prev.Name, Indices: indices},
		}
	}
	if !info.HasError {
		diag.ReportError(b.rep, diag.UnsupportedArrayBaseExpression, data.Base.Range)
	}
	return invalid(e)
}

func (b *exprBinder) bindCall(e *ast.Expr, data ast.CallData) *bound.Expr {
	base := b.bind(data.Base, false)
	args := make([]*bound.Expr, len(data.Args))
	infos := make([]bound.Info, 0, len(data.Args)+1)
	infos = append(infos, base.Info)
	for i, arg := range data.Args {
		args[i] = b.bind(arg, true)
		infos = append(infos, args[i].Info)
	}
	info := bound.Info{}.Merge(infos...)
	// незакрытый вызов и лишние запятые уже продиагностированы парсером
	info.HasError = info.HasError || data.RightParen.IsMissing() || !wellFormedArgs(data)

	switch base.Kind {
	case bound.ExprLibraryMethod:
		target := base.Data.(bound.LibraryMethodData)
		info.HasValue = target.Method.ReturnsValue
		info.HasError = b.checkArgumentsCount(e, target.Method.ArgumentsCount(), len(args), info.HasError)
		return &bound.Expr{
			Kind:   bound.ExprLibraryMethodCall,
			Syntax: e,
			Info:   info,
			Data:   bound.LibraryMethodCallData{Library: target.Library, Method: target.Method, Args: args},
		}
	case bound.ExprSubModule:
		info.HasError = b.checkArgumentsCount(e, 0, len(args), info.HasError)
		return &bound.Expr{
			Kind:   bound.ExprSubModuleCall,
			Syntax: e,
			Info:   info,
			Data:   base.Data.(bound.SubModuleData),
		}
	}
	if !info.HasError {
		diag.ReportError(b.rep, diag.UnsupportedCallBaseExpression, data.Base.Range)
	}
	return invalid(e)
}

// wellFormedArgs reports whether commas separate the arguments exactly once.
func wellFormedArgs(data ast.CallData) bool {
	return len(data.Commas) == max(len(data.Args)-1, 0)
}

// checkArgumentsCount reports a mismatch unless the call is already errored
// and returns the updated error flag.
func (b *exprBinder) checkArgumentsCount(e *ast.Expr, expected, actual int, hasError bool) bool {
	if expected == actual {
		return hasError
	}
	if !hasError {
		diag.ReportError(b.rep, diag.UnexpectedArgumentsCount, e.Range, strconv.Itoa(expected), strconv.Itoa(actual))
	}
	return true
}

func invalid(e *ast.Expr) *bound.Expr {
	return &bound.Expr{Kind: bound.ExprInvalid, Syntax: e, Info: bound.Info{HasError: true}, Data: bound.InvalidData{}}
}

func binaryOp(k token.Kind) bound.BinaryOp {
	switch k {
	case token.Plus:
		return bound.OpAdd
	case token.Minus:
		return bound.OpSubtract
	case token.Multiply:
		return bound.OpMultiply
	case token.Divide:
		return bound.OpDivide
	case token.Equal:
		return bound.OpEqual
	case token.NotEqual:
		return bound.OpNotEqual
	case token.LessThan:
		return bound.OpLessThan
	case token.GreaterThan:
		return bound.OpGreaterThan
	case token.LessThanOrEqual:
		return bound.OpLessThanOrEqual
	case token.GreaterThanOrEqual:
		return bound.OpGreaterThanOrEqual
	case token.KwAnd:
		return bound.OpAnd
	case token.KwOr:
		return bound.OpOr
	default:
		panic(fmt.Sprintf("binder: %v is not a binary operator", k))
	}
}
