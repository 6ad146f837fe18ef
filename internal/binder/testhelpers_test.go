package binder

import (
	"fmt"
	"strings"
	"testing"

	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/lexer"
	"sbasic/internal/parser"
)

// bindSource runs the whole front end over src with one shared bag.
func bindSource(t *testing.T, src string) (*bound.Tree, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Scan(src, lexer.Options{Reporter: rep})
	cmds := parser.ParseCommands(toks, parser.Options{Reporter: rep})
	tree := parser.ParseStatements(cmds, parser.Options{Reporter: rep})
	return Bind(tree, Options{Reporter: rep}), bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s(%s)", d.Code.ID(), d.Code.Name(), strings.Join(d.Args, ","))
	}
	return strings.Join(lines, "; ")
}

func expectCodes(t *testing.T, bag *diag.Bag, codes ...diag.Code) {
	t.Helper()
	items := bag.Items()
	if len(items) != len(codes) {
		t.Fatalf("expected %d diagnostics, got %s", len(codes), diagnosticsSummary(bag))
	}
	for i, code := range codes {
		if items[i].Code != code {
			t.Fatalf("diagnostic %d: expected %s, got %s", i, code.Name(), diagnosticsSummary(bag))
		}
	}
}

func expectArgs(t *testing.T, d diag.Diagnostic, args ...string) {
	t.Helper()
	if fmt.Sprintf("%q", d.Args) != fmt.Sprintf("%q", args) {
		t.Fatalf("%s: expected args %q, got %q", d.Code.Name(), args, d.Args)
	}
}

func stmtKinds(stmts []*bound.Stmt) []bound.StmtKind {
	kinds := make([]bound.StmtKind, len(stmts))
	for i, s := range stmts {
		kinds[i] = s.Kind
	}
	return kinds
}

func expectStmtKinds(t *testing.T, stmts []*bound.Stmt, kinds ...bound.StmtKind) {
	t.Helper()
	got := stmtKinds(stmts)
	if fmt.Sprint(got) != fmt.Sprint(kinds) {
		t.Fatalf("statement kinds = %v, want %v", got, kinds)
	}
}

func dumpTree(t *testing.T, tree *bound.Tree) string {
	t.Helper()
	var sb strings.Builder
	if err := bound.Dump(&sb, tree); err != nil {
		t.Fatalf("dump: %v", err)
	}
	return sb.String()
}
