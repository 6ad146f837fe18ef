package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sbasic/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("diag", []string{"a.sb", "b.sb"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.sb", Stage: driver.StageAll, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.applyEvent(driver.Event{File: "a.sb", Stage: driver.StageAll, Status: driver.StatusError, Err: errors.New("2 errors")})
	m.applyEvent(driver.Event{File: "b.sb", Stage: driver.StageAll, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.applyEvent(driver.Event{File: "unknown.sb", Status: driver.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	if m.items[0].note != "2 errors" {
		t.Fatalf("note = %q", m.items[0].note)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: diag", "a.sb", "b.sb", "2 files, 1 with errors"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestListenStopsOnClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("diag", []string{"a.sb"}, events).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("closed channel should yield doneMsg")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.sb", 20, "short.sb"},
		{"very/long/path/program.sb", 10, "very/lo..."},
		{"программа.sb", 3, "про"},
		{"文字文字.sb", 7, "文字..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
