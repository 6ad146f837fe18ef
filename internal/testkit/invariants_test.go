package testkit_test

import (
	"strings"
	"testing"

	"sbasic/internal/ast"
	"sbasic/internal/driver"
	"sbasic/internal/source"
	"sbasic/internal/testkit"
	"sbasic/internal/token"
)

func artifacts(c *driver.Compilation) testkit.Artifacts {
	return testkit.Artifacts{
		Text:        c.Text,
		Tokens:      c.Tokens,
		Commands:    c.Commands,
		Tree:        c.ParseTree,
		Bound:       c.BoundTree,
		Diagnostics: c.Diagnostics(),
	}
}

func TestCompilationsSatisfyInvariants(t *testing.T) {
	programs := map[string]string{
		"empty":      "",
		"blank":      "\n\r\n  \n",
		"assignment": "x = 1\ny = x * (2 + 3) / -4",
		"library":    "TextWindow.WriteLine(\"hi\")\nTextWindow.Title = \"t\"\nh = Clock.Hour",
		"blocks": `For i = 1 To 10 Step 2
  If i = 3 Then
    GoTo done
  ElseIf i > 5 Or i < 0 Then
    x[i][2] = i
  Else
    While x < 3
      x = x + 1
    EndWhile
  EndIf
EndFor
done:`,
		"subs":          "Sub A\n  B()\nEndSub\nSub B\nEndSub\nSub A\n  x = 1\nEndSub\nA()",
		"unclosed":      "If x Then\n  While y\n",
		"stray closers": "EndIf\nEndWhile\nElse\nEndSub",
		"garbage":       "$ % ^\n\"open\nx = = 1\n1 +\nFoo.\nTextWindow.Nope()",
		"nested sub":    "Sub A\nSub B\nEndSub",
		"nameless sub":  "Sub\nEndSub",
		"comments":      "' only a comment\nx = 1 ' trailing",
		"line breaks":   "x = 1\ry = 2\r\nz = 3",
		"unicode":       "s = \"日本語\" + \"😀\"\nt = s",
	}
	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			c := driver.Compile(src, driver.Options{})
			if err := testkit.Check(artifacts(c)); err != nil {
				t.Fatalf("invariants violated for %q:\n%v", src, err)
			}
		})
	}
}

func TestCheckStopsAtEarlierStages(t *testing.T) {
	c := driver.Compile("x = 1\nIf x Then", driver.Options{Stage: driver.StageCommands})
	a := artifacts(c)
	if a.Tree != nil || a.Bound != nil {
		t.Fatalf("commands stage produced later artifacts")
	}
	if err := testkit.Check(a); err != nil {
		t.Fatal(err)
	}
}

func TestCheckTokensReportsViolations(t *testing.T) {
	lines := source.SplitLines("abc def")
	tests := []struct {
		name string
		toks []token.Token
		want string
	}{
		{"outside", []token.Token{{Kind: token.Identifier, Text: "x", Range: source.Range{Line: 1, Start: 0, End: 1}}}, "outside the text"},
		{"empty", []token.Token{{Kind: token.Identifier, Range: source.Range{Start: 2, End: 2}}}, "empty range"},
		{"text", []token.Token{{Kind: token.Identifier, Text: "abd", Range: source.Range{Start: 0, End: 3}}}, "source has"},
		{"order", []token.Token{
			{Kind: token.Identifier, Text: "def", Range: source.Range{Start: 4, End: 7}},
			{Kind: token.Identifier, Text: "abc", Range: source.Range{Start: 0, End: 3}},
		}, "overlaps or precedes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testkit.CheckTokens(lines, tt.toks)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("CheckTokens = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheckBoundTreeDetectsLostStatements(t *testing.T) {
	c := driver.Compile("x = 1\ny = 2", driver.Options{})
	c.BoundTree.MainModule.Statements = c.BoundTree.MainModule.Statements[:1]
	if err := testkit.CheckBoundTree(c.ParseTree, c.BoundTree); err == nil || !strings.Contains(err.Error(), "1 statements bound from 2") {
		t.Fatalf("CheckBoundTree = %v", err)
	}
}

func TestCheckParseTreeDetectsReusedCommands(t *testing.T) {
	c := driver.Compile("x = 1", driver.Options{Stage: driver.StageStatements})
	tree := &ast.ParseTree{MainModule: append(c.ParseTree.MainModule, c.ParseTree.MainModule[0])}
	if err := testkit.CheckParseTree(tree, len(c.Commands)); err == nil || !strings.Contains(err.Error(), "used twice") {
		t.Fatalf("CheckParseTree = %v", err)
	}
}
