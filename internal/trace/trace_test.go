package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelAdmitsScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamSpansAsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeDriver, "compile", 0)
	child := Begin(tr, ScopeModule, "bind_module", root.ID())
	child.WithExtra("module", "main").End("2 statements")
	Begin(tr, ScopeNode, "filtered", root.ID()).End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "bind_module" || ev.Detail != "2 statements" || ev.Extra["module"] != "main" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.ParentID != root.ID() {
		t.Fatalf("parent = %d, want %d", ev.ParentID, root.ID())
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeStage, Name: "bind", Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText))
	if !strings.HasSuffix(got, "• bind {a=1, b=2}\n") {
		t.Fatalf("text = %q", got)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot size %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snapshot[%d] = %s, want %s", i, snap[i].Name, want)
		}
	}
}

func TestNewWithRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeStage, "scan", 0).End("")
	ring, ok := RingOf(tr)
	if !ok {
		t.Fatalf("expected a ring tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events", n)
	}
	if buf.Len() == 0 {
		t.Fatalf("stream output is empty")
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	span := Begin(nil, ScopeDriver, "x", 0)
	span.WithExtra("k", "v")
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("disabled span should be inert")
	}
	if Begin(Nop, ScopeDriver, "x", 0).extra != nil {
		t.Fatalf("shared disabled span was mutated")
	}
}

func TestContextPropagation(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	span := Begin(FromContext(ctx), ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("span id not propagated")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer should be Nop")
	}
}
