package observ

import (
	"strings"
	"testing"
)

func TestTimerTracksPhasesInOrder(t *testing.T) {
	timer := NewTimer()
	timer.Track("scan")("12 tokens")
	done := timer.Track("bind")
	done("")

	report := timer.Report()
	if len(report.Phases) != 2 || report.Phases[0].Name != "scan" || report.Phases[1].Name != "bind" {
		t.Fatalf("unexpected phases %+v", report.Phases)
	}
	if report.Phases[0].Note != "12 tokens" {
		t.Fatalf("note = %q", report.Phases[0].Note)
	}
	if !strings.Contains(timer.Summary(), "total") {
		t.Fatalf("summary lacks total:\n%s", timer.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var timer *Timer
	timer.Track("scan")("")
	if len(timer.Report().Phases) != 0 {
		t.Fatalf("nil timer must not record")
	}
}

func TestAggregate(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "scan", DurationMS: 1}, {Name: "bind", DurationMS: 2}}}
	b := Report{TotalMS: 1, Phases: []PhaseReport{{Name: "scan", DurationMS: 1}}}
	got := Aggregate([]Report{a, b})
	if got.TotalMS != 4 || len(got.Phases) != 2 {
		t.Fatalf("aggregate = %+v", got)
	}
	if got.Phases[0].DurationMS != 2 || got.Phases[0].Note != "2 files" || got.Phases[1].Note != "1 files" {
		t.Fatalf("aggregate phases = %+v", got.Phases)
	}
}
