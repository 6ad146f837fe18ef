package lsp

import (
	"slices"
	"strings"
	"testing"

	"sbasic/internal/driver"
	"sbasic/internal/library"
	"sbasic/internal/source"
)

const featureProgram = `Sub Greet
  TextWindow.WriteLine("hi")
EndSub
start:
If x = 1 Then
  GoTo start
EndIf
Greet()
While x < 3
  x = x + 1
EndWhile
`

func newSnapshot(text string) *snapshot {
	return &snapshot{
		seq:   1,
		lines: source.SplitLines(text),
		comp:  driver.Compile(text, driver.Options{Libraries: library.Supported()}),
	}
}

func TestHover(t *testing.T) {
	snap := newSnapshot(featureProgram)
	libs := library.Supported()
	tests := []struct {
		name   string
		pos    position
		prefix string
		want   []string
	}{
		{"method", position{Line: 1, Character: 15}, "```sbasic\nTextWindow.WriteLine(data)\n```", []string{"followed by a new line"}},
		{"library", position{Line: 1, Character: 3}, "**TextWindow**", nil},
		{"sub call", position{Line: 7, Character: 1}, "```sbasic\nSub Greet\n```", nil},
		{"cursor after identifier", position{Line: 0, Character: 9}, "```sbasic\nSub Greet\n```", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := buildHover(snap, libs, tt.pos)
			if h == nil {
				t.Fatalf("no hover at %+v", tt.pos)
			}
			if !strings.HasPrefix(h.Contents.Value, tt.prefix) {
				t.Fatalf("hover = %q, want prefix %q", h.Contents.Value, tt.prefix)
			}
			for _, part := range tt.want {
				if !strings.Contains(h.Contents.Value, part) {
					t.Fatalf("hover %q lacks %q", h.Contents.Value, part)
				}
			}
		})
	}

	if h := buildHover(snap, libs, position{Line: 4, Character: 0}); h != nil {
		t.Fatalf("keyword must not hover, got %+v", h)
	}
	if h := buildHover(snap, libs, position{Line: 9, Character: 2}); h != nil {
		t.Fatalf("plain variable must not hover, got %+v", h)
	}
}

func TestHoverPropertyAccess(t *testing.T) {
	snap := newSnapshot("h = Clock.Hour")
	h := buildHover(snap, library.Supported(), position{Line: 0, Character: 11})
	if h == nil || !strings.HasSuffix(h.Contents.Value, "Read-only property.") {
		t.Fatalf("hover = %+v", h)
	}
	want := lspRange{Start: position{Line: 0, Character: 10}, End: position{Line: 0, Character: 14}}
	if *h.Range != want {
		t.Fatalf("range = %+v", *h.Range)
	}
}

func TestDefinition(t *testing.T) {
	snap := newSnapshot(featureProgram)
	tests := []struct {
		name string
		pos  position
		want source.Range
	}{
		{"goto label", position{Line: 5, Character: 8}, source.Range{Line: 3, Start: 0, End: 5}},
		{"sub call", position{Line: 7, Character: 2}, source.Range{Line: 0, Start: 4, End: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findDefinition(snap, tt.pos)
			if got == nil || got.Range != tt.want {
				t.Fatalf("definition = %+v, want %+v", got, tt.want)
			}
		})
	}
	if got := findDefinition(snap, position{Line: 1, Character: 15}); got != nil {
		t.Fatalf("library member must not resolve, got %+v", got)
	}
}

func TestDefinitionLabelStaysInModule(t *testing.T) {
	snap := newSnapshot("top:\nSub S\n  GoTo top\nEndSub\n")
	if got := findDefinition(snap, position{Line: 2, Character: 8}); got != nil {
		t.Fatalf("label of another module resolved: %+v", got)
	}
}

func labels(items []completionItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestCompletionMembers(t *testing.T) {
	snap := newSnapshot(featureProgram)
	list := buildCompletion(snap, library.Supported(), position{Line: 1, Character: 13})
	got := labels(list.Items)
	for _, want := range []string{"WriteLine", "Read", "Title"} {
		if !slices.Contains(got, want) {
			t.Fatalf("members %v lack %q", got, want)
		}
	}
	if slices.Contains(got, "TextWindow") || slices.Contains(got, "Greet") {
		t.Fatalf("members mixed with top-level items: %v", got)
	}
}

func TestCompletionMemberPrefix(t *testing.T) {
	snap := newSnapshot("TextWindow.Wr")
	got := labels(buildCompletion(snap, library.Supported(), position{Line: 0, Character: 13}).Items)
	want := []string{"Write", "WriteLine"}
	if !slices.Equal(got, want) {
		t.Fatalf("completion = %v, want %v", got, want)
	}
}

func TestCompletionTopLevel(t *testing.T) {
	snap := newSnapshot("Sub Greet\nEndSub\ngr")
	list := buildCompletion(snap, library.Supported(), position{Line: 2, Character: 2})
	got := labels(list.Items)
	if !slices.Contains(got, "Greet") {
		t.Fatalf("completion %v lacks the sub", got)
	}
	for _, label := range got {
		if !hasPrefixFold(label, "gr") {
			t.Fatalf("completion %q does not match prefix", label)
		}
	}

	all := labels(buildCompletion(snap, library.Supported(), position{Line: 1, Character: 0}).Items)
	for _, want := range []string{"TextWindow", "Greet", "EndWhile"} {
		if !slices.Contains(all, want) {
			t.Fatalf("completion %v lacks %q", all, want)
		}
	}
}

func TestCompletionUnknownLibrary(t *testing.T) {
	snap := newSnapshot("Nope.")
	if items := buildCompletion(snap, library.Supported(), position{Line: 0, Character: 5}).Items; len(items) != 0 {
		t.Fatalf("unexpected items %v", labels(items))
	}
}

func TestFoldingRanges(t *testing.T) {
	snap := newSnapshot(featureProgram)
	got := buildFoldingRanges(snap.comp.ParseTree)
	want := []foldingRange{
		{StartLine: 4, EndLine: 6, Kind: "region"},
		{StartLine: 8, EndLine: 10, Kind: "region"},
		{StartLine: 0, EndLine: 2, Kind: "region"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("folding = %+v, want %+v", got, want)
	}
}

func TestFoldingSkipsUnclosedBlocks(t *testing.T) {
	snap := newSnapshot("While 1\n  x = 1\n")
	if got := buildFoldingRanges(snap.comp.ParseTree); len(got) != 0 {
		t.Fatalf("folding = %+v", got)
	}
}
