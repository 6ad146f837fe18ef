package bound

import (
	"sort"

	"sbasic/internal/ast"
	"sbasic/internal/source"
)

// StmtKind enumerates bound statement kinds.
type StmtKind uint8

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtFor
	StmtLabel
	StmtGoTo
	StmtSubModuleCall
	StmtLibraryMethodCall
	StmtVariableAssignment
	StmtPropertyAssignment
	StmtArrayAssignment
	// StmtInvalidExpression keeps a statement slot for an expression that
	// failed to classify.
	StmtInvalidExpression
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtLabel:
		return "Label"
	case StmtGoTo:
		return "GoTo"
	case StmtSubModuleCall:
		return "SubModuleCall"
	case StmtLibraryMethodCall:
		return "LibraryMethodCall"
	case StmtVariableAssignment:
		return "VariableAssignment"
	case StmtPropertyAssignment:
		return "PropertyAssignment"
	case StmtArrayAssignment:
		return "ArrayAssignment"
	case StmtInvalidExpression:
		return "InvalidExpression"
	default:
		return "Unknown"
	}
}

// Stmt is a bound statement node.
type Stmt struct {
	Kind   StmtKind
	Syntax *ast.Stmt // не владеет
	Data   StmtData
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// Range returns the range of the statement's opening command.
func (s *Stmt) Range() source.Range {
	return s.Syntax.Range()
}

// ConditionPart is an If or ElseIf branch.
type ConditionPart struct {
	Condition  *Expr
	Statements []*Stmt
}

// ElsePart is the unconditional tail of an If.
type ElsePart struct {
	Statements []*Stmt
}

type IfData struct {
	IfPart      ConditionPart
	ElseIfParts []ConditionPart
	ElsePart    *ElsePart // nil без Else
}

func (IfData) stmtData() {}

type WhileData struct {
	Condition  *Expr
	Statements []*Stmt
}

func (WhileData) stmtData() {}

type ForData struct {
	Identifier string
	From       *Expr
	To         *Expr
	Step       *Expr // nil without a Step clause
	Statements []*Stmt
}

func (ForData) stmtData() {}

type LabelData struct {
	Name string
}

func (LabelData) stmtData() {}

type GoToData struct {
	Label string
}

func (GoToData) stmtData() {}

// CallData backs SubModuleCall and LibraryMethodCall statements.
type CallData struct {
	Call *Expr
}

func (CallData) stmtData() {}

// AssignmentData backs the three assignment kinds. Target is a Variable,
// ArrayAccess or LibraryProperty expression respectively.
type AssignmentData struct {
	Target *Expr
	Value  *Expr
}

func (AssignmentData) stmtData() {}

type InvalidExpressionData struct {
	Expr *Expr
}

func (InvalidExpressionData) stmtData() {}

// Module is one bound module: the main program or a submodule body.
type Module struct {
	Name       string    // "" for the main module
	Syntax     *ast.Stmt // nil for the main module
	Statements []*Stmt
}

// Tree is the binder output.
type Tree struct {
	MainModule *Module
	// SubModules is keyed by name; a later definition replaces an earlier one.
	SubModules map[string]*Module
}

// SubModuleNames returns submodule names in sorted order.
func (t *Tree) SubModuleNames() []string {
	names := make([]string, 0, len(t.SubModules))
	for name := range t.SubModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Walk visits every statement of the module depth-first, nested bodies after
// their owner. Returning false from fn skips the statement's children.
func (m *Module) Walk(fn func(*Stmt) bool) {
	walkStmts(m.Statements, fn)
}

func walkStmts(stmts []*Stmt, fn func(*Stmt) bool) {
	for _, s := range stmts {
		if !fn(s) {
			continue
		}
		switch data := s.Data.(type) {
		case IfData:
			walkStmts(data.IfPart.Statements, fn)
			for _, part := range data.ElseIfParts {
				walkStmts(part.Statements, fn)
			}
			if data.ElsePart != nil {
				walkStmts(data.ElsePart.Statements, fn)
			}
		case WhileData:
			walkStmts(data.Statements, fn)
		case ForData:
			walkStmts(data.Statements, fn)
		case LabelData, GoToData, CallData, AssignmentData, InvalidExpressionData:
		default:
			panic("bound: unexpected statement payload")
		}
	}
}
