package binder

import (
	"strings"
	"testing"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/library"
	"sbasic/internal/source"
	"sbasic/internal/token"
)

func newTestExprBinder(bag *diag.Bag, subs ...string) *exprBinder {
	names := make(map[string]struct{}, len(subs))
	for _, s := range subs {
		names[s] = struct{}{}
	}
	return &exprBinder{rep: diag.BagReporter{Bag: bag}, libs: library.Supported(), subNames: names}
}

func TestMalformedNumberBindsAsZero(t *testing.T) {
	bag := diag.NewBag(0)
	b := newTestExprBinder(bag)
	tok := token.Token{Kind: token.NumberLiteral, Text: "1.2.3", Range: source.Range{Start: 4, End: 9}}
	out := b.bind(ast.NewTerminal(tok), true)
	expectCodes(t, bag, diag.ValueIsNotANumber)
	expectArgs(t, bag.Items()[0], "1.2.3")
	if out.Data.(bound.NumberLiteralData).Value != 0 {
		t.Fatalf("malformed number should bind as 0")
	}
	if !out.Info.HasError || !out.Info.HasValue {
		t.Fatalf("info = %+v", out.Info)
	}
}

func TestNumberOutOfRange(t *testing.T) {
	huge := strings.Repeat("9", 400)
	tree, bag := bindSource(t, "x = "+huge)
	expectCodes(t, bag, diag.ValueIsNotANumber)
	expectArgs(t, bag.Items()[0], huge)
	expectStmtKinds(t, tree.MainModule.Statements, bound.StmtVariableAssignment)
}

func TestStringLiteralValue(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"open`, "open"},
		{`"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b := newTestExprBinder(diag.NewBag(0))
			out := b.bind(ast.NewTerminal(token.Token{Kind: token.StringLiteral, Text: tt.text}), true)
			if got := out.Data.(bound.StringLiteralData).Value; got != tt.want {
				t.Fatalf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentifierKinds(t *testing.T) {
	tests := []struct {
		name     string
		kind     bound.ExprKind
		hasValue bool
	}{
		{"TextWindow", bound.ExprLibraryType, false},
		{"Foo", bound.ExprSubModule, false},
		{"counter", bound.ExprVariable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestExprBinder(diag.NewBag(0), "Foo")
			out := b.bind(ast.NewTerminal(token.Token{Kind: token.Identifier, Text: tt.name}), false)
			if out.Kind != tt.kind || out.Info.HasValue != tt.hasValue {
				t.Fatalf("got %v %+v", out.Kind, out.Info)
			}
		})
	}
}

func TestMissingExpressionIsSilent(t *testing.T) {
	bag := diag.NewBag(0)
	out := newTestExprBinder(bag).bind(ast.NewMissing(source.Range{}), true)
	expectCodes(t, bag)
	if out.Kind != bound.ExprInvalid || !out.Info.HasError {
		t.Fatalf("got %v %+v", out.Kind, out.Info)
	}
}

func TestBinaryOperatorKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind bound.ExprKind
		op   bound.BinaryOp
	}{
		{"x = a + b", bound.ExprArithmetic, bound.OpAdd},
		{"x = a / b", bound.ExprArithmetic, bound.OpDivide},
		{"x = a <> b", bound.ExprComparison, bound.OpNotEqual},
		{"x = a >= b", bound.ExprComparison, bound.OpGreaterThanOrEqual},
		{"x = (a And b)", bound.ExprLogical, bound.OpAnd},
		{"x = (a or b)", bound.ExprLogical, bound.OpOr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, bag := bindSource(t, tt.src)
			expectCodes(t, bag)
			value := tree.MainModule.Statements[0].Data.(bound.AssignmentData).Value
			if paren, ok := value.Data.(bound.ParenthesisData); ok {
				value = paren.Inner
			}
			if value.Kind != tt.kind || value.Data.(bound.BinaryData).Op != tt.op {
				t.Fatalf("got %s as %v", bound.FormatExpr(value), value.Kind)
			}
		})
	}
}
