package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sbasic/internal/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the sbasic language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, a)
		},
	}
}

func runLSP(cmd *cobra.Command, a *app) error {
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Debounce:       a.debounce(),
		MaxDiagnostics: a.maxDiagnostics,
		Catalog:        a.catalog,
		Tracer:         a.tracer,
		Log:            cmd.ErrOrStderr(),
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
