package ast

import (
	"fmt"

	"sbasic/internal/source"
	"sbasic/internal/token"
)

// ExprKind enumerates expression syntax kinds.
type ExprKind uint8

const (
	// ExprUnaryOperator is a prefix minus.
	ExprUnaryOperator ExprKind = iota
	// ExprBinaryOperator is any infix operator from the precedence table.
	ExprBinaryOperator
	// ExprObjectAccess is base.identifier.
	ExprObjectAccess
	// ExprArrayAccess is base[index].
	ExprArrayAccess
	// ExprCall is base(args...).
	ExprCall
	ExprIdentifier
	ExprNumberLiteral
	ExprStringLiteral
	// ExprParenthesis is (expr).
	ExprParenthesis
	// ExprMissing stands in for an expression the parser could not find.
	ExprMissing
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprUnaryOperator:
		return "UnaryOperator"
	case ExprBinaryOperator:
		return "BinaryOperator"
	case ExprObjectAccess:
		return "ObjectAccess"
	case ExprArrayAccess:
		return "ArrayAccess"
	case ExprCall:
		return "Call"
	case ExprIdentifier:
		return "Identifier"
	case ExprNumberLiteral:
		return "NumberLiteral"
	case ExprStringLiteral:
		return "StringLiteral"
	case ExprParenthesis:
		return "Parenthesis"
	case ExprMissing:
		return "Missing"
	default:
		return "Unknown"
	}
}

// Expr is an expression syntax node.
type Expr struct {
	Kind  ExprKind
	Range source.Range
	Data  ExprData
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

type UnaryOperatorData struct {
	Operator token.Token
	Operand  *Expr
}

func (UnaryOperatorData) exprData() {}

type BinaryOperatorData struct {
	Left     *Expr
	Operator token.Token
	Right    *Expr
}

func (BinaryOperatorData) exprData() {}

type ObjectAccessData struct {
	Base       *Expr
	Dot        token.Token
	Identifier token.Token
}

func (ObjectAccessData) exprData() {}

type ArrayAccessData struct {
	Base         *Expr
	LeftBracket  token.Token
	Index        *Expr
	RightBracket token.Token
}

func (ArrayAccessData) exprData() {}

type CallData struct {
	Base       *Expr
	LeftParen  token.Token
	Args       []*Expr
	Commas     []token.Token
	RightParen token.Token
}

func (CallData) exprData() {}

// TokenData backs Identifier, NumberLiteral and StringLiteral nodes.
type TokenData struct {
	Token token.Token
}

func (TokenData) exprData() {}

type ParenthesisData struct {
	LeftParen  token.Token
	Inner      *Expr
	RightParen token.Token
}

func (ParenthesisData) exprData() {}

type MissingData struct{}

func (MissingData) exprData() {}

func NewUnary(op token.Token, operand *Expr) *Expr {
	return &Expr{
		Kind:  ExprUnaryOperator,
		Range: op.Range.Cover(operand.Range),
		Data:  UnaryOperatorData{Operator: op, Operand: operand},
	}
}

func NewBinary(left *Expr, op token.Token, right *Expr) *Expr {
	return &Expr{
		Kind:  ExprBinaryOperator,
		Range: left.Range.Cover(right.Range),
		Data:  BinaryOperatorData{Left: left, Operator: op, Right: right},
	}
}

func NewObjectAccess(base *Expr, dot, ident token.Token) *Expr {
	return &Expr{
		Kind:  ExprObjectAccess,
		Range: base.Range.Cover(ident.Range),
		Data:  ObjectAccessData{Base: base, Dot: dot, Identifier: ident},
	}
}

func NewArrayAccess(base *Expr, lbracket token.Token, index *Expr, rbracket token.Token) *Expr {
	return &Expr{
		Kind:  ExprArrayAccess,
		Range: base.Range.Cover(rbracket.Range),
		Data:  ArrayAccessData{Base: base, LeftBracket: lbracket, Index: index, RightBracket: rbracket},
	}
}

func NewCall(base *Expr, lparen token.Token, args []*Expr, commas []token.Token, rparen token.Token) *Expr {
	return &Expr{
		Kind:  ExprCall,
		Range: base.Range.Cover(rparen.Range),
		Data:  CallData{Base: base, LeftParen: lparen, Args: args, Commas: commas, RightParen: rparen},
	}
}

// NewTerminal builds an Identifier, NumberLiteral or StringLiteral node.
func NewTerminal(tok token.Token) *Expr {
	var kind ExprKind
	switch tok.Kind {
	case token.Identifier:
		kind = ExprIdentifier
	case token.NumberLiteral:
		kind = ExprNumberLiteral
	case token.StringLiteral:
		kind = ExprStringLiteral
	default:
		panic(fmt.Sprintf("ast: token %v is not a terminal expression", tok.Kind))
	}
	return &Expr{Kind: kind, Range: tok.Range, Data: TokenData{Token: tok}}
}

func NewParenthesis(lparen token.Token, inner *Expr, rparen token.Token) *Expr {
	return &Expr{
		Kind:  ExprParenthesis,
		Range: lparen.Range.Cover(inner.Range).Cover(rparen.Range),
		Data:  ParenthesisData{LeftParen: lparen, Inner: inner, RightParen: rparen},
	}
}

func NewMissing(r source.Range) *Expr {
	return &Expr{Kind: ExprMissing, Range: r, Data: MissingData{}}
}

// Token returns the single token of a terminal expression.
func (e *Expr) Token() token.Token {
	data, ok := e.Data.(TokenData)
	if !ok {
		panic(fmt.Sprintf("ast: %v expression has no single token", e.Kind))
	}
	return data.Token
}
