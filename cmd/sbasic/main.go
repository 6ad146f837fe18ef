package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sbasic/internal/version"
)

// exitCodeError ends the process with code without printing anything; the
// command has already reported what went wrong.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// main runs the CLI and exits with the status of the executed command.
func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()

	var exit exitCodeError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "sbasic",
		Short:         "SmallBasic compiler front end and language tools",
		Long:          `sbasic scans, parses and binds SmallBasic programs and reports diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0=unlimited)")
	root.PersistentFlags().String("locale", "", "language of diagnostic messages (default from sbasic.toml, else en)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-format", "text", "trace format (text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 0, "keep the last N trace events in memory for crash dumps")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newDiagCmd(a),
		newLibrariesCmd(a),
		newLSPCmd(a),
		newVersionCmd(a),
	)
	return root
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
