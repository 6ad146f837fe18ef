package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sbasic/internal/diagfmt"
	"sbasic/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.sb",
		Short: "Parse a SmallBasic source file and print its syntax",
		Long:  `Parse groups a SmallBasic program into commands and statements and prints the result as an indented tree`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args[0])
		},
	}
	cmd.Flags().String("emit", "statements", "what to print (commands|statements|bound)")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, filePath string) error {
	emitStr, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	emit, err := diagfmt.ParseEmit(emitStr)
	if err != nil {
		return err
	}

	c, err := driver.CompileFile(filePath, driver.Options{
		Stage:          emit.Stage(),
		MaxDiagnostics: a.maxDiagnostics,
		Tracer:         a.tracer,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printStageDiagnostics(cmd, a, c); err != nil {
		return err
	}
	return diagfmt.DumpTree(cmd.OutOrStdout(), c, emit)
}
