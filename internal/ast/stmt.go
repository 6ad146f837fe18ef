package ast

import (
	"sbasic/internal/source"
)

// StmtKind enumerates block-structured statements.
type StmtKind uint8

const (
	StmtSubModule StmtKind = iota
	StmtIf
	StmtWhile
	StmtFor
	StmtLabel
	StmtGoTo
	StmtExpression
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtSubModule:
		return "SubModule"
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
	case StmtExpression:
		return "Expression"
	default:
		return "Unknown"
	}
}

// Stmt is a statement syntax node.
type Stmt struct {
	Kind StmtKind
	Data StmtData
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

type SubModuleData struct {
	Sub        *Command
	Statements []*Stmt
	EndSub     *Command
}

func (SubModuleData) stmtData() {}

// Name returns the submodule name token text ("" when the name was missing).
func (d SubModuleData) Name() string {
	if sub, ok := d.Sub.Data.(SubData); ok {
		return sub.Name.Text
	}
	return ""
}

// ConditionPart is one branch of an If: the If/ElseIf/Else command and its body.
type ConditionPart struct {
	Command    *Command
	Statements []*Stmt
}

type IfStmtData struct {
	IfPart      ConditionPart
	ElseIfParts []ConditionPart
	ElsePart    *ConditionPart
	EndIf       *Command
}

func (IfStmtData) stmtData() {}

type WhileStmtData struct {
	While      *Command
	Statements []*Stmt
	EndWhile   *Command
}

func (WhileStmtData) stmtData() {}

type ForStmtData struct {
	For        *Command
	Statements []*Stmt
	EndFor     *Command
}

func (ForStmtData) stmtData() {}

// CommandStmtData backs Label, GoTo and Expression statements.
type CommandStmtData struct {
	Command *Command
}

func (CommandStmtData) stmtData() {}

// Head returns the command that opens the statement.
func (s *Stmt) Head() *Command {
	switch data := s.Data.(type) {
	case SubModuleData:
		return data.Sub
	case IfStmtData:
		return data.IfPart.Command
	case WhileStmtData:
		return data.While
	case ForStmtData:
		return data.For
	case CommandStmtData:
		return data.Command
	default:
		panic("ast: unexpected statement payload")
	}
}

// Range returns the range of the statement's opening command.
func (s *Stmt) Range() source.Range {
	return s.Head().Range
}

// ParseTree is the statement parser output: the implicit main module and
// the named submodules in source order. Names may repeat.
type ParseTree struct {
	MainModule []*Stmt
	SubModules []*Stmt
}
