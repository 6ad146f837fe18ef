package bound

import (
	"fmt"

	"sbasic/internal/ast"
	"sbasic/internal/library"
	"sbasic/internal/source"
)

// ExprKind enumerates bound expression kinds.
type ExprKind uint8

const (
	ExprNegation ExprKind = iota
	ExprArithmetic
	ExprComparison
	ExprLogical
	ExprParenthesis
	ExprVariable
	ExprArrayAccess
	ExprLibraryType
	ExprLibraryProperty
	ExprLibraryMethod
	ExprLibraryMethodCall
	ExprSubModule
	ExprSubModuleCall
	ExprStringLiteral
	ExprNumberLiteral
	// ExprInvalid stands in for syntax that could not be given a role.
	ExprInvalid
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprNegation:
		return "Negation"
	case ExprArithmetic:
		return "Arithmetic"
	case ExprComparison:
		return "Comparison"
	case ExprLogical:
		return "Logical"
	case ExprParenthesis:
		return "Parenthesis"
	case ExprVariable:
		return "Variable"
	case ExprArrayAccess:
		return "ArrayAccess"
	case ExprLibraryType:
		return "LibraryType"
	case ExprLibraryProperty:
		return "LibraryProperty"
	case ExprLibraryMethod:
		return "LibraryMethod"
	case ExprLibraryMethodCall:
		return "LibraryMethodCall"
	case ExprSubModule:
		return "SubModule"
	case ExprSubModuleCall:
		return "SubModuleCall"
	case ExprStringLiteral:
		return "StringLiteral"
	case ExprNumberLiteral:
		return "NumberLiteral"
	case ExprInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Info is the semantic summary attached to every bound expression.
type Info struct {
	// HasError marks a node already diagnosed (itself or through a child).
	HasError bool
	// HasValue is false for void expressions: submodule calls, void methods,
	// library types and bare method references.
	HasValue bool
}

// Merge ORs the error flags; the value flag of the receiver is kept.
func (i Info) Merge(others ...Info) Info {
	for _, o := range others {
		i.HasError = i.HasError || o.HasError
	}
	return i
}

// Expr is a bound expression node.
type Expr struct {
	Kind   ExprKind
	Syntax *ast.Expr // не владеет, только для диапазонов
	Info   Info
	Data   ExprData
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// Range returns the source range of the originating syntax.
func (e *Expr) Range() source.Range {
	return e.Syntax.Range
}

// BinaryOp is the operator of Arithmetic, Comparison and Logical nodes.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpEqual
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpLessThanOrEqual
	OpGreaterThanOrEqual
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessThanOrEqual:
		return "<="
	case OpGreaterThanOrEqual:
		return ">="
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	default:
		panic(fmt.Sprintf("bound: unknown binary operator %d", uint8(op)))
	}
}

// Kind returns the expression kind a node with this operator gets.
func (op BinaryOp) Kind() ExprKind {
	switch {
	case op <= OpDivide:
		return ExprArithmetic
	case op <= OpGreaterThanOrEqual:
		return ExprComparison
	default:
		return ExprLogical
	}
}

type NegationData struct {
	Operand *Expr
}

func (NegationData) exprData() {}

// BinaryData backs Arithmetic, Comparison and Logical nodes.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

type ParenthesisData struct {
	Inner *Expr
}

func (ParenthesisData) exprData() {}

type VariableData struct {
	Name string
}

func (VariableData) exprData() {}

// ArrayAccessData flattens a[i][j] into Name "a" with Indices [i, j].
type ArrayAccessData struct {
	Name    string
	Indices []*Expr
}

func (ArrayAccessData) exprData() {}

type LibraryTypeData struct {
	Library *library.Library
}

func (LibraryTypeData) exprData() {}

type LibraryPropertyData struct {
	Library  *library.Library
	Property *library.Property
}

func (LibraryPropertyData) exprData() {}

type LibraryMethodData struct {
	Library *library.Library
	Method  *library.Method
}

func (LibraryMethodData) exprData() {}

type LibraryMethodCallData struct {
	Library *library.Library
	Method  *library.Method
	Args    []*Expr
}

func (LibraryMethodCallData) exprData() {}

// SubModuleData backs both SubModule references and SubModuleCall nodes.
type SubModuleData struct {
	Name string
}

func (SubModuleData) exprData() {}

type StringLiteralData struct {
	// Value is the literal text without the quotes.
	Value string
}

func (StringLiteralData) exprData() {}

type NumberLiteralData struct {
	Value float64
}

func (NumberLiteralData) exprData() {}

type InvalidData struct{}

func (InvalidData) exprData() {}
