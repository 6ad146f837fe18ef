package bound_test

import (
	"bytes"
	"slices"
	"testing"

	"sbasic/internal/bound"
	"sbasic/internal/driver"
)

func TestBinaryOpKind(t *testing.T) {
	tests := []struct {
		op   bound.BinaryOp
		text string
		kind bound.ExprKind
	}{
		{bound.OpAdd, "+", bound.ExprArithmetic},
		{bound.OpDivide, "/", bound.ExprArithmetic},
		{bound.OpEqual, "=", bound.ExprComparison},
		{bound.OpGreaterThanOrEqual, ">=", bound.ExprComparison},
		{bound.OpAnd, "And", bound.ExprLogical},
		{bound.OpOr, "Or", bound.ExprLogical},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.text {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.text)
		}
		if got := tt.op.Kind(); got != tt.kind {
			t.Errorf("%s.Kind() = %v, want %v", tt.text, got, tt.kind)
		}
	}
}

func TestInfoMerge(t *testing.T) {
	got := bound.Info{HasValue: true}.Merge(bound.Info{}, bound.Info{HasError: true})
	if !got.HasValue || !got.HasError {
		t.Fatalf("Merge = %+v", got)
	}
	got = bound.Info{}.Merge(bound.Info{HasValue: true})
	if got.HasValue || got.HasError {
		t.Fatalf("Merge must keep the receiver's value flag: %+v", got)
	}
}

func bindText(t *testing.T, src string) *bound.Tree {
	t.Helper()
	c := driver.Compile(src, driver.Options{})
	if c.BoundTree == nil {
		t.Fatalf("no bound tree for %q", src)
	}
	return c.BoundTree
}

func TestModuleWalk(t *testing.T) {
	tree := bindText(t, `If x Then
  While y
    y = y - 1
  EndWhile
ElseIf z Then
  GoTo end
Else
  For i = 1 To 2
    TextWindow.WriteLine(i)
  EndFor
EndIf
end:`)

	var kinds []bound.StmtKind
	tree.MainModule.Walk(func(s *bound.Stmt) bool {
		kinds = append(kinds, s.Kind)
		return true
	})
	want := []bound.StmtKind{
		bound.StmtIf, bound.StmtWhile, bound.StmtVariableAssignment, bound.StmtGoTo,
		bound.StmtFor, bound.StmtLibraryMethodCall, bound.StmtLabel,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("walk order = %v, want %v", kinds, want)
	}

	kinds = kinds[:0]
	tree.MainModule.Walk(func(s *bound.Stmt) bool {
		kinds = append(kinds, s.Kind)
		return s.Kind != bound.StmtIf
	})
	if !slices.Equal(kinds, []bound.StmtKind{bound.StmtIf, bound.StmtLabel}) {
		t.Fatalf("skipping children visited %v", kinds)
	}
}

func TestSubModuleNamesSorted(t *testing.T) {
	tree := bindText(t, "Sub b\nEndSub\nSub a\nEndSub\nSub c\nEndSub")
	if got := tree.SubModuleNames(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("SubModuleNames = %v", got)
	}
	if tree.MainModule.Name != "" || tree.SubModules["a"].Name != "a" {
		t.Fatalf("unexpected module names")
	}
}

func TestDump(t *testing.T) {
	tree := bindText(t, `x = 1
TextWindow.WriteLine(x + 2)
arr[1] = -x
Sub S
  GoTo l
l:
EndSub
S()
Clock.Hour = 3`)
	var buf bytes.Buffer
	if err := bound.Dump(&buf, tree); err != nil {
		t.Fatal(err)
	}
	want := `main
  VariableAssignment x = 1
  LibraryMethodCall TextWindow.WriteLine((+ x 2))
  ArrayAssignment arr[1] = (- x)
  SubModuleCall S()
  PropertyAssignment Clock.Hour = 3
sub S
  GoTo l
  Label l
`
	if buf.String() != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}
