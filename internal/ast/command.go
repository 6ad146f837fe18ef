package ast

import (
	"sbasic/internal/source"
	"sbasic/internal/token"
)

// CommandKind enumerates line-level commands.
type CommandKind uint8

const (
	CommandIf CommandKind = iota
	CommandElse
	CommandElseIf
	CommandEndIf
	// CommandFor covers both For and For ... Step.
	CommandFor
	CommandEndFor
	CommandWhile
	CommandEndWhile
	CommandLabel
	CommandGoTo
	CommandSub
	CommandEndSub
	CommandExpression
	// CommandMissing is synthesised by the statement parser when an expected command is absent.
	CommandMissing
)

var commandKeywords = map[CommandKind]token.Kind{
	CommandIf:       token.KwIf,
	CommandElse:     token.KwElse,
	CommandElseIf:   token.KwElseIf,
	CommandEndIf:    token.KwEndIf,
	CommandFor:      token.KwFor,
	CommandEndFor:   token.KwEndFor,
	CommandWhile:    token.KwWhile,
	CommandEndWhile: token.KwEndWhile,
	CommandGoTo:     token.KwGoTo,
	CommandSub:      token.KwSub,
	CommandEndSub:   token.KwEndSub,
}

// Keyword returns the token kind a command starts with, if it has one.
func (k CommandKind) Keyword() (token.Kind, bool) {
	kw, ok := commandKeywords[k]
	return kw, ok
}

// Text returns the display string used when a diagnostic names the command.
// Keyword commands read from the token kind table.
func (k CommandKind) Text() string {
	if kw, ok := k.Keyword(); ok {
		return kw.Text()
	}
	switch k {
	case CommandLabel:
		return "label"
	case CommandExpression:
		return "expression"
	default:
		return "missing command"
	}
}

func (k CommandKind) String() string {
	switch k {
	case CommandLabel:
		return "Label"
	case CommandExpression:
		return "Expression"
	case CommandMissing:
		return "Missing"
	}
	return k.Text()
}

// Command is one parsed source line.
type Command struct {
	Kind  CommandKind
	Range source.Range
	Data  CommandData
}

// CommandData is the interface for command-specific data.
type CommandData interface {
	commandData()
}

// IfData backs If and ElseIf commands.
type IfData struct {
	Keyword   token.Token
	Condition *Expr
	Then      token.Token
}

func (IfData) commandData() {}

// KeywordData backs commands that are a single keyword: Else, EndIf, EndFor, EndWhile, EndSub.
type KeywordData struct {
	Keyword token.Token
}

func (KeywordData) commandData() {}

// StepClause is the optional "Step expr" tail of a For command.
type StepClause struct {
	Step token.Token
	Expr *Expr
}

type ForData struct {
	For        token.Token
	Identifier token.Token
	Equal      token.Token
	From       *Expr
	To         token.Token
	ToExpr     *Expr
	Step       *StepClause
}

func (ForData) commandData() {}

type WhileData struct {
	While     token.Token
	Condition *Expr
}

func (WhileData) commandData() {}

type LabelData struct {
	Identifier token.Token
	Colon      token.Token
}

func (LabelData) commandData() {}

type GoToData struct {
	GoTo  token.Token
	Label token.Token
}

func (GoToData) commandData() {}

type SubData struct {
	Sub  token.Token
	Name token.Token
}

func (SubData) commandData() {}

type ExpressionData struct {
	Expr *Expr
}

func (ExpressionData) commandData() {}

type MissingCommandData struct {
	// Expected is the kind the parser was looking for.
	Expected CommandKind
}

func (MissingCommandData) commandData() {}

// NewMissingCommand synthesises a recovery command at r.
func NewMissingCommand(expected CommandKind, r source.Range) *Command {
	return &Command{Kind: CommandMissing, Range: r, Data: MissingCommandData{Expected: expected}}
}
