package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"sbasic/internal/diagfmt"
	"sbasic/internal/driver"
	"sbasic/internal/observ"
)

func newDiagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.sb|directory>",
		Short: "Run diagnostics on a SmallBasic source file or directory",
		Long:  `Run diagnostics to find lexical, syntax and semantic issues in a SmallBasic file or in all *.sb files within a directory`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|short|json|msgpack); default from sbasic.toml, else pretty")
	cmd.Flags().String("stages", "all", "diagnostic stages to run (tokenize|commands|statements|bind|all)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("emit-bound", false, "print the bound tree of every file after its diagnostics")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	return cmd
}

type diagRequest struct {
	path      string
	format    diagfmt.Format
	stage     driver.Stage
	jobs      int
	ui        uiMode
	emitBound bool
	pathMode  diagfmt.PathMode
}

func readDiagRequest(cmd *cobra.Command, a *app, path string) (diagRequest, error) {
	req := diagRequest{path: path, format: a.format, pathMode: diagfmt.PathModeAuto}
	flags := cmd.Flags()

	formatStr, err := flags.GetString("format")
	if err != nil {
		return req, fmt.Errorf("failed to get format flag: %w", err)
	}
	if formatStr != "" {
		if req.format, err = diagfmt.ParseFormat(formatStr); err != nil {
			return req, err
		}
	}
	stagesStr, err := flags.GetString("stages")
	if err != nil {
		return req, fmt.Errorf("failed to get stages flag: %w", err)
	}
	if req.stage, err = driver.ParseStage(stagesStr); err != nil {
		return req, err
	}
	if req.jobs, err = flags.GetInt("jobs"); err != nil {
		return req, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if req.jobs <= 0 {
		req.jobs = runtime.GOMAXPROCS(0)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return req, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if req.ui, err = readUIMode(uiStr); err != nil {
		return req, err
	}
	if req.emitBound, err = flags.GetBool("emit-bound"); err != nil {
		return req, fmt.Errorf("failed to get emit-bound flag: %w", err)
	}
	if req.emitBound && req.stage != driver.StageBind && req.stage != driver.StageAll {
		return req, fmt.Errorf("--emit-bound requires --stages bind|all")
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return req, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		req.pathMode = diagfmt.PathModeAbsolute
	}
	return req, nil
}

// runDiagnose executes the "diag" command. It returns exitCodeError{1} when
// any file has error diagnostics or could not be read.
func runDiagnose(cmd *cobra.Command, a *app, path string) error {
	defer a.dumpTraceOnPanic(cmd.ErrOrStderr())

	req, err := readDiagRequest(cmd, a, path)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	opts := driver.Options{
		Stage:          req.stage,
		MaxDiagnostics: a.maxDiagnostics,
		Tracer:         a.tracer,
		Timings:        a.timings,
	}

	var (
		results []driver.FileResult
		timing  *observ.Report
	)
	if st.IsDir() {
		results, err = diagnoseDir(cmd, req, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		timing = driver.Timings(results)
	} else {
		c, err := driver.CompileFile(path, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		results = []driver.FileResult{{Path: path, Compilation: c}}
		timing = c.Timing
	}

	if err := writeDiagnostics(cmd, a, req, results); err != nil {
		return err
	}
	if a.timings && timing != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timing.Summary())
	}

	for _, r := range results {
		if r.HasErrors() {
			return exitCodeError{code: 1}
		}
	}
	return nil
}

func diagnoseDir(cmd *cobra.Command, req diagRequest, opts driver.Options) ([]driver.FileResult, error) {
	if !shouldUseTUI(req.ui, cmd.OutOrStdout()) {
		return driver.DiagnoseDir(cmd.Context(), req.path, req.jobs, opts, nil)
	}
	files, err := driver.ListFiles(req.path)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("diagnosing %s", req.path)
	return runDiagnoseWithUI(cmd.Context(), cmd.OutOrStdout(), title, files, func(sink driver.ProgressSink) ([]driver.FileResult, error) {
		return driver.DiagnoseDir(cmd.Context(), req.path, req.jobs, opts, sink)
	})
}

func writeDiagnostics(cmd *cobra.Command, a *app, req diagRequest, results []driver.FileResult) error {
	out := cmd.OutOrStdout()
	units := make([]diagfmt.Unit, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", r.Err)
			continue
		}
		units = append(units, diagfmt.FromCompilation(r.Compilation))
	}

	switch req.format {
	case diagfmt.FormatJSON, diagfmt.FormatMsgpack:
		// документ один на весь запуск, деревья в него не входят
		return diagfmt.Write(out, req.format, units, a.prettyOpts(out, req.pathMode), a.jsonOpts(req.pathMode))
	}

	for _, r := range results {
		if r.Compilation == nil {
			continue
		}
		unit := []diagfmt.Unit{diagfmt.FromCompilation(r.Compilation)}
		if err := diagfmt.Write(out, req.format, unit, a.prettyOpts(out, req.pathMode), a.jsonOpts(req.pathMode)); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		if req.emitBound {
			if err := emitBound(out, r.Compilation, req.pathMode); err != nil {
				return err
			}
		}
	}
	if !a.quiet && req.format == diagfmt.FormatPretty {
		printSummary(out, results)
	}
	return nil
}

func emitBound(out io.Writer, c *driver.Compilation, pathMode diagfmt.PathMode) error {
	fmt.Fprintf(out, "== BOUND %s ==\n", diagfmt.FormatPath(c.Path(), pathMode, ""))
	if err := diagfmt.DumpTree(out, c, diagfmt.EmitBound); err != nil {
		return fmt.Errorf("failed to dump bound tree: %w", err)
	}
	return nil
}

func printSummary(out io.Writer, results []driver.FileResult) {
	files, failed, errs := len(results), 0, 0
	for _, r := range results {
		if r.HasErrors() {
			failed++
		}
		if r.Compilation != nil {
			errs += r.Compilation.ErrorCount()
		}
	}
	if errs == 0 && failed == 0 {
		fmt.Fprintf(out, "%d file(s) checked, no errors\n", files)
		return
	}
	fmt.Fprintf(out, "%d file(s) checked, %d error(s) in %d file(s)\n", files, errs, failed)
}
