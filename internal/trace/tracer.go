package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records an event. Must be goroutine-safe.
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level  Level
	Format Format
	// Output takes precedence over OutputPath.
	Output     io.Writer
	OutputPath string // "-" or "" for stderr
	// RingSize > 0 also keeps the last RingSize events in memory.
	RingSize int
}

// New creates a tracer for cfg. LevelOff yields Nop; LevelError yields a ring
// tracer only, since nothing is streamed at that level.
func New(cfg Config) (Tracer, error) {
	switch cfg.Level {
	case LevelOff:
		return Nop, nil
	case LevelError:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	format := cfg.Format
	if cfg.Output == nil && strings.HasSuffix(cfg.OutputPath, ".ndjson") {
		format = FormatNDJSON
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, format)
	if cfg.RingSize <= 0 {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing stderr.
type nopCloser struct{ io.Writer }

// RingOf extracts the ring buffer of t, if it keeps one.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch tr := t.(type) {
	case *RingTracer:
		return tr, true
	case *MultiTracer:
		return tr.Ring()
	default:
		return nil, false
	}
}
