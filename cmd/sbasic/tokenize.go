package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sbasic/internal/diagfmt"
	"sbasic/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.sb",
		Short: "Tokenize a SmallBasic source file",
		Long:  `Tokenize breaks down a SmallBasic source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, filePath string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	c, err := driver.CompileFile(filePath, driver.Options{
		Stage:          driver.StageTokenize,
		MaxDiagnostics: a.maxDiagnostics,
		Tracer:         a.tracer,
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if err := printStageDiagnostics(cmd, a, c); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, c.Tokens)
	}
	return diagfmt.FormatTokensPretty(out, c.Tokens)
}

// printStageDiagnostics prints what the stages found to stderr in pretty form.
func printStageDiagnostics(cmd *cobra.Command, a *app, c *driver.Compilation) error {
	if len(c.Diagnostics()) == 0 {
		return nil
	}
	errOut := cmd.ErrOrStderr()
	return diagfmt.Pretty(errOut, []diagfmt.Unit{diagfmt.FromCompilation(c)}, a.prettyOpts(errOut, diagfmt.PathModeAuto))
}
