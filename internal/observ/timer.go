// Package observ measures how long each pipeline stage takes (--timings).
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed stage of a compilation.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records stages in the order they start. Not safe for concurrent use:
// every compilation owns its own timer.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 5)} }

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track starts a phase and returns the function that ends it. A nil timer
// tracks nothing.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport: сериализуемая запись одной фазы.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report: агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report returns the phases with durations in milliseconds.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

// Aggregate sums reports phase by phase, keeping first-seen phase order.
// Notes are replaced by the number of reports that carried the phase.
func Aggregate(reports []Report) Report {
	var (
		out   Report
		index = make(map[string]int)
		count = make(map[string]int)
	)
	for _, r := range reports {
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, ok := index[p.Name]
			if !ok {
				i = len(out.Phases)
				index[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
			count[p.Name]++
		}
	}
	for i := range out.Phases {
		out.Phases[i].Note = fmt.Sprintf("%d files", count[out.Phases[i].Name])
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
