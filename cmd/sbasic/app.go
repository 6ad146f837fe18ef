package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sbasic/internal/diagfmt"
	"sbasic/internal/locale"
	"sbasic/internal/project"
	"sbasic/internal/trace"
)

// app holds what every command shares once flags and sbasic.toml are merged.
type app struct {
	config         project.Config
	maxDiagnostics int
	catalog        *locale.Catalog
	format         diagfmt.Format
	colorMode      string
	quiet          bool
	timings        bool
	tracer         trace.Tracer
	closeTracer    func()
}

// setup merges sbasic.toml (searched from the working directory) with the
// flags; a flag given explicitly wins over the file.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := project.Discover(wd)
	if err != nil {
		return err
	}
	a.config = cfg

	if a.colorMode, err = flags.GetString("color"); err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch a.colorMode {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.colorMode)
	}
	if a.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	if a.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
		a.maxDiagnostics = cfg.MaxDiagnostics
	}

	localeName, err := flags.GetString("locale")
	if err != nil {
		return fmt.Errorf("failed to get locale flag: %w", err)
	}
	if localeName == "" {
		localeName = cfg.Locale
	}
	if a.catalog, err = locale.Load(localeName); err != nil {
		return err
	}
	if a.format, err = diagfmt.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("%w: %w", project.ErrInvalidConfig, err)
	}

	tracer, closeTracer, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	a.tracer, a.closeTracer = tracer, closeTracer
	return nil
}

func (a *app) close() {
	if a.closeTracer != nil {
		a.closeTracer()
		a.closeTracer = nil
	}
}

// useColor resolves --color for one output stream.
func (a *app) useColor(w io.Writer) bool {
	switch a.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}

func (a *app) prettyOpts(w io.Writer, pathMode diagfmt.PathMode) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:    a.useColor(w),
		Context:  2,
		PathMode: pathMode,
		Catalog:  a.catalog,
	}
}

func (a *app) jsonOpts(pathMode diagfmt.PathMode) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{PathMode: pathMode, Catalog: a.catalog}
}

func (a *app) debounce() time.Duration {
	if a.config.Debounce > 0 {
		return a.config.Debounce
	}
	return project.DefaultDebounce
}

// dumpTraceOnPanic prints the trace ring before re-panicking, so a crash
// report shows what the compiler was doing.
func (a *app) dumpTraceOnPanic(w io.Writer) {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := trace.RingOf(a.tracer); ok {
		fmt.Fprintln(w, "last trace events:")
		_ = ring.Dump(w, trace.FormatText)
	}
	panic(r)
}
