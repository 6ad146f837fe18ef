package parser

import (
	"fmt"
	"strings"
	"testing"

	"sbasic/internal/ast"
	"sbasic/internal/diag"
	"sbasic/internal/lexer"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s(%s)", d.Code.ID(), d.Code.Name(), strings.Join(d.Args, ","))
	}
	return strings.Join(lines, "; ")
}

// parseCommandsSource сканирует текст без диагностик лексера и разбирает команды.
func parseCommandsSource(t *testing.T, src string) ([]*ast.Command, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	toks := lexer.Scan(src, lexer.Options{})
	cmds := ParseCommands(toks, Options{Reporter: diag.BagReporter{Bag: bag}})
	return cmds, bag
}

func parseTreeSource(t *testing.T, src string) (*ast.ParseTree, *diag.Bag) {
	t.Helper()
	cmds, bag := parseCommandsSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected command diagnostics: %s", diagnosticsSummary(bag))
	}
	tree := ParseStatements(cmds, Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
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
	if len(d.Args) != len(args) {
		t.Fatalf("%s: expected args %q, got %q", d.Code.Name(), args, d.Args)
	}
	for i := range args {
		if d.Args[i] != args[i] {
			t.Fatalf("%s: expected args %q, got %q", d.Code.Name(), args, d.Args)
		}
	}
}
