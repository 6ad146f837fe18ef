package binder

import (
	"testing"

	"sbasic/internal/bound"
	"sbasic/internal/diag"
)

func TestRepeatedVariableAssignment(t *testing.T) {
	tree, bag := bindSource(t, "x = 1\nx = 2")
	expectCodes(t, bag)
	expectStmtKinds(t, tree.MainModule.Statements, bound.StmtVariableAssignment, bound.StmtVariableAssignment)
	data := tree.MainModule.Statements[1].Data.(bound.AssignmentData)
	if name := data.Target.Data.(bound.VariableData).Name; name != "x" {
		t.Fatalf("target = %q", name)
	}
	if v := data.Value.Data.(bound.NumberLiteralData).Value; v != 2 {
		t.Fatalf("value = %v", v)
	}
}

func TestUnterminatedStringStillBindsCall(t *testing.T) {
	tree, bag := bindSource(t, `TextWindow.WriteLine("hi`)
	expectCodes(t, bag, diag.UnterminatedStringLiteral)
	expectStmtKinds(t, tree.MainModule.Statements, bound.StmtLibraryMethodCall)
	call := tree.MainModule.Statements[0].Data.(bound.CallData).Call
	args := call.Data.(bound.LibraryMethodCallData).Args
	if len(args) != 1 || args[0].Data.(bound.StringLiteralData).Value != "hi" {
		t.Fatalf("unexpected call arguments %s", bound.FormatExpr(call))
	}
}

func TestWrongArgumentsCount(t *testing.T) {
	tests := []struct {
		src  string
		args []string
	}{
		{"TextWindow.WriteLine()", []string{"1", "0"}},
		{"Math.Max(1)", []string{"2", "1"}},
		{"TextWindow.Clear(1, 2)", []string{"0", "2"}},
		{"Sub Foo\nEndSub\nFoo(1)", []string{"0", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, bag := bindSource(t, tt.src)
			expectCodes(t, bag, diag.UnexpectedArgumentsCount)
			expectArgs(t, bag.Items()[0], tt.args...)
			stmts := tree.MainModule.Statements
			last := stmts[len(stmts)-1]
			if last.Kind != bound.StmtLibraryMethodCall && last.Kind != bound.StmtSubModuleCall {
				t.Fatalf("call statement kind = %v", last.Kind)
			}
			if !last.Data.(bound.CallData).Call.Info.HasError {
				t.Fatalf("call should be marked errored")
			}
		})
	}
}

func TestGoToResolution(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		missing []string
	}{
		{"undefined", "Goto Missing", []string{"Missing"}},
		{"forward", "GoTo done\nx = 1\ndone:", nil},
		{"backward", "start:\nGoTo start", nil},
		{"nested body", "While x\nIf y Then\nGoTo out\nEndIf\nEndWhile\nout:", nil},
		{"labels are per module", "start:\nSub Foo\nGoTo start\nEndSub", []string{"start"}},
		{"case sensitive", "Start:\nGoTo start", []string{"start"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := bindSource(t, tt.src)
			items := bag.Items()
			if len(items) != len(tt.missing) {
				t.Fatalf("expected %d diagnostics, got %s", len(tt.missing), diagnosticsSummary(bag))
			}
			for i, label := range tt.missing {
				if items[i].Code != diag.LabelDoesNotExist {
					t.Fatalf("unexpected %s", diagnosticsSummary(bag))
				}
				expectArgs(t, items[i], label)
			}
		})
	}
}

func TestDuplicateSubModuleLastWins(t *testing.T) {
	tree, bag := bindSource(t, "Sub Foo\nx = 1\nEndSub\nSub Foo\ny = 2\nz = 3\nEndSub")
	expectCodes(t, bag, diag.TwoSubModulesWithTheSameName)
	expectArgs(t, bag.Items()[0], "Foo")
	if r := bag.Items()[0].Range; r.Line != 3 || r.Start != 4 || r.End != 7 {
		t.Fatalf("diagnostic range = %v", r)
	}
	foo, ok := tree.SubModules["Foo"]
	if !ok {
		t.Fatalf("submodule Foo not bound")
	}
	expectStmtKinds(t, foo.Statements, bound.StmtVariableAssignment, bound.StmtVariableAssignment)
	if len(tree.SubModules) != 1 {
		t.Fatalf("expected one submodule, got %v", tree.SubModuleNames())
	}
}

func TestDuplicateSubModuleBodiesAreBothChecked(t *testing.T) {
	_, bag := bindSource(t, "Sub Foo\nGoTo a\nEndSub\nSub Foo\nGoTo b\nEndSub")
	expectCodes(t, bag, diag.TwoSubModulesWithTheSameName, diag.LabelDoesNotExist, diag.LabelDoesNotExist)
	expectArgs(t, bag.Items()[1], "a")
	expectArgs(t, bag.Items()[2], "b")
}

func TestIdentifierResolution(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  bound.StmtKind
		codes []diag.Code
	}{
		{"submodule declared later", "Foo()\nSub Foo\nEndSub", bound.StmtSubModuleCall, nil},
		{"library shadows submodule", "TextWindow()\nSub TextWindow\nEndSub", bound.StmtInvalidExpression, []diag.Code{diag.UnsupportedCallBaseExpression}},
		{"variable is not callable", "x()", bound.StmtInvalidExpression, []diag.Code{diag.UnsupportedCallBaseExpression}},
		{"library names are case sensitive", "textwindow.WriteLine(1)", bound.StmtInvalidExpression, []diag.Code{diag.UnsupportedDotBaseExpression}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.codes...)
			if got := tree.MainModule.Statements[0].Kind; got != tt.kind {
				t.Fatalf("statement kind = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestArrayAccessFlattensIndices(t *testing.T) {
	tree, bag := bindSource(t, "a[1][i + 1] = b[2]")
	expectCodes(t, bag)
	expectStmtKinds(t, tree.MainModule.Statements, bound.StmtArrayAssignment)
	data := tree.MainModule.Statements[0].Data.(bound.AssignmentData)
	target := data.Target.Data.(bound.ArrayAccessData)
	if target.Name != "a" || len(target.Indices) != 2 {
		t.Fatalf("target = %s", bound.FormatExpr(data.Target))
	}
	if got := bound.FormatExpr(data.Target); got != "a[1][(+ i 1)]" {
		t.Fatalf("target = %s", got)
	}
	if !data.Value.Info.HasValue || data.Value.Kind != bound.ExprArrayAccess {
		t.Fatalf("value = %v %+v", data.Value.Kind, data.Value.Info)
	}
}

func TestUnsupportedArrayBase(t *testing.T) {
	tree, bag := bindSource(t, "TextWindow[1] = 2")
	expectCodes(t, bag, diag.UnsupportedArrayBaseExpression)
	expectStmtKinds(t, tree.MainModule.Statements, bound.StmtInvalidExpression)
}

func TestPropertyAssignment(t *testing.T) {
	tree, bag := bindSource(t, "TextWindow.ForegroundColor = \"red\"\nMath.Pi = 3\nx = Math.Pi")
	expectCodes(t, bag, diag.PropertyHasNoSetter)
	expectArgs(t, bag.Items()[0], "Math", "Pi")
	expectStmtKinds(t, tree.MainModule.Statements,
		bound.StmtPropertyAssignment, bound.StmtPropertyAssignment, bound.StmtVariableAssignment)
	value := tree.MainModule.Statements[2].Data.(bound.AssignmentData).Value
	if value.Kind != bound.ExprLibraryProperty || !value.Info.HasValue {
		t.Fatalf("Math.Pi should be a readable property, got %v %+v", value.Kind, value.Info)
	}
}

func TestObjectAccessErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		args []string
	}{
		{"TextWindow.Foo()", diag.LibraryMemberNotFound, []string{"TextWindow", "Foo"}},
		{"x = Math.Tau", diag.LibraryMemberNotFound, []string{"Math", "Tau"}},
		{"x.y = 1", diag.UnsupportedDotBaseExpression, nil},
		{"Sub Foo\nEndSub\nFoo.Bar()", diag.UnsupportedDotBaseExpression, nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.code)
			expectArgs(t, bag.Items()[0], tt.args...)
		})
	}
}

func TestVoidUsedAsValue(t *testing.T) {
	tests := []string{
		"x = TextWindow.WriteLine(1)",
		"x = TextWindow",
		"x = Math.Abs",
		"Sub Foo\nEndSub\nx = Foo() + 1",
		"If TextWindow.Clear() Then\nEndIf",
		"While -TextWindow.Clear()\nEndWhile",
		"For i = 1 To Program.End()\nEndFor",
		"TextWindow.WriteLine(TextWindow.Show())",
		"a[TextWindow.Clear()] = 1",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, bag := bindSource(t, src)
			expectCodes(t, bag, diag.UnexpectedVoidExpectingValue)
		})
	}
}

func TestValueReturningCallHasValue(t *testing.T) {
	tree, bag := bindSource(t, "x = Math.Abs(-1) * TextWindow.Read()")
	expectCodes(t, bag)
	value := tree.MainModule.Statements[0].Data.(bound.AssignmentData).Value
	if value.Kind != bound.ExprArithmetic || !value.Info.HasValue || value.Info.HasError {
		t.Fatalf("value = %v %+v", value.Kind, value.Info)
	}
}

func TestInvalidExpressionStatements(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"x", diag.InvalidExpressionStatement},
		{"1", diag.InvalidExpressionStatement},
		{`"text"`, diag.InvalidExpressionStatement},
		{"x + 1", diag.InvalidExpressionStatement},
		{"x < 1", diag.InvalidExpressionStatement},
		{"(x)", diag.InvalidExpressionStatement},
		{"-x", diag.InvalidExpressionStatement},
		{"TextWindow", diag.InvalidExpressionStatement},
		{"TextWindow.ForegroundColor", diag.InvalidExpressionStatement},
		{"Math.Abs", diag.InvalidExpressionStatement},
		{"1 = x", diag.ValueIsNotAssignable},
		{"Math.Abs = 1", diag.ValueIsNotAssignable},
		{"x = a = b", diag.ValueIsNotAssignable},
		{"x = a And b", diag.InvalidExpressionStatement},
		{"x = a Or b", diag.InvalidExpressionStatement},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.code)
			expectStmtKinds(t, tree.MainModule.Statements, bound.StmtInvalidExpression)
			expr := tree.MainModule.Statements[0].Data.(bound.InvalidExpressionData).Expr
			if !expr.Info.HasError {
				t.Fatalf("invalid statement expression must be marked errored")
			}
		})
	}
}

func TestErrorsAreReportedOncePerRootCause(t *testing.T) {
	tests := []struct {
		src   string
		codes []diag.Code
	}{
		{"x = (TextWindow.Foo) + 1", []diag.Code{diag.LibraryMemberNotFound}},
		{"TextWindow.WriteLine(TextWindow.Foo, 1)", []diag.Code{diag.LibraryMemberNotFound}},
		{"TextWindow.Foo.Bar[1]()", []diag.Code{diag.LibraryMemberNotFound}},
		{"x.y[1] = z.w", []diag.Code{diag.UnsupportedDotBaseExpression, diag.UnsupportedDotBaseExpression}},
		{"x = -(-TextWindow.Clear())", []diag.Code{diag.UnexpectedVoidExpectingValue}},
		{"x = ", []diag.Code{diag.UnexpectedEOLExpectingExpression}},
		{"TextWindow.WriteLine(", []diag.Code{diag.UnexpectedEOLExpectingToken}},
		{"Math.Max(1, ", []diag.Code{diag.UnexpectedTokenExpectingToken}},
		{"TextWindow.", []diag.Code{diag.UnexpectedEOLExpectingToken}},
		{"TextWindow.WriteLine(,)", []diag.Code{diag.UnexpectedTokenExpectingToken}},
		{"Math.Max(,1)", []diag.Code{diag.UnexpectedTokenExpectingToken}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.codes...)
			if len(tree.MainModule.Statements) != 1 {
				t.Fatalf("expected one bound statement, got %d", len(tree.MainModule.Statements))
			}
		})
	}
}

func TestBoundTreeDump(t *testing.T) {
	src := `For i = 1 To 10 Step 2
  If i > 5 Then
    TextWindow.WriteLine(i)
  ElseIf i = 3 Then
    a[i] = -i
  Else
    Foo()
  EndIf
EndFor
While x < 3
  x = x + 1
EndWhile
start:
GoTo start
Sub Foo
  TextWindow.ForegroundColor = "red"
  x = TextWindow.WriteLine(1)
EndSub`
	want := `main
  For i = 1 To 10 Step 2
    If (> i 5)
      LibraryMethodCall TextWindow.WriteLine(i)
    ElseIf (= i 3)
      ArrayAssignment a[i] = (- i)
    Else
      SubModuleCall Foo()
  While (< x 3)
    VariableAssignment x = (+ x 1)
  Label start
  GoTo start
sub Foo
  PropertyAssignment TextWindow.ForegroundColor = "red"
  VariableAssignment x = TextWindow.WriteLine(1) !
`
	tree, bag := bindSource(t, src)
	expectCodes(t, bag, diag.UnexpectedVoidExpectingValue)
	if got := dumpTree(t, tree); got != want {
		t.Fatalf("bound tree mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestBindIsDeterministic(t *testing.T) {
	src := "Sub B\nGoTo x\nEndSub\nSub A\nTextWindow.Foo()\nEndSub\nSub B\nEndSub\nA()\nB(1)\ny = Math.Pi"
	tree1, bag1 := bindSource(t, src)
	tree2, bag2 := bindSource(t, src)
	if dumpTree(t, tree1) != dumpTree(t, tree2) {
		t.Fatalf("bound trees differ")
	}
	if diag.FormatGolden(bag1.Items()) != diag.FormatGolden(bag2.Items()) {
		t.Fatalf("diagnostics differ:\n%s\n%s", diag.FormatGolden(bag1.Items()), diag.FormatGolden(bag2.Items()))
	}
}
