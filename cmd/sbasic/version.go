package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sbasic/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show sbasic build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				return renderVersionJSON(out)
			case "pretty":
				renderVersionPretty(out, a.useColor(out))
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionPretty(out io.Writer, useColor bool) {
	// Colored рисует через глобальный переключатель fatih/color
	prev := color.NoColor
	color.NoColor = !useColor
	defer func() { color.NoColor = prev }()

	fmt.Fprintf(out, "sbasic %s\n", version.Colored())
	if details := version.Details(); details != "" {
		fmt.Fprintln(out, details)
	}
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "sbasic",
		Version:   version.Plain(),
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	})
}
