package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sbasic/internal/library"
)

func newLibrariesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libraries [name]",
		Short: "List the supported libraries or describe one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
			reg := library.Supported()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if format == "json" {
					return renderLibrariesJSON(out, reg)
				}
				renderLibraryList(out, reg, a.useColor(out))
				return nil
			}
			lib, ok := reg.Library(args[0])
			if !ok {
				return fmt.Errorf("unknown library %q", args[0])
			}
			if format == "json" {
				return renderLibraryJSON(out, lib)
			}
			renderLibrary(out, lib, a.useColor(out))
			return nil
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func nameColor(enabled bool) *color.Color {
	c := color.New(color.FgCyan, color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func renderLibraryList(out io.Writer, reg *library.Registry, useColor bool) {
	name := nameColor(useColor)
	width := 0
	for _, n := range reg.Names() {
		width = max(width, len(n))
	}
	for _, n := range reg.Names() {
		lib, _ := reg.Library(n)
		pad := strings.Repeat(" ", width-len(n))
		fmt.Fprintf(out, "%s%s  %s\n", name.Sprint(n), pad, lib.Description)
	}
}

func renderLibrary(out io.Writer, lib *library.Library, useColor bool) {
	name := nameColor(useColor)
	fmt.Fprintln(out, name.Sprint(lib.Name))
	if lib.Description != "" {
		fmt.Fprintf(out, "  %s\n", lib.Description)
	}
	if names := lib.MethodNames(); len(names) > 0 {
		fmt.Fprintln(out, "\nmethods:")
		for _, n := range names {
			m, _ := lib.Method(n)
			returns := ""
			if m.ReturnsValue {
				returns = " -> value"
			}
			fmt.Fprintf(out, "  %s%s\n", m.Signature(), returns)
			if m.Description != "" {
				fmt.Fprintf(out, "      %s\n", m.Description)
			}
		}
	}
	if names := lib.PropertyNames(); len(names) > 0 {
		fmt.Fprintln(out, "\nproperties:")
		for _, n := range names {
			p, _ := lib.Property(n)
			fmt.Fprintf(out, "  %s [%s]\n", p.Name, propertyAccess(p))
			if p.Description != "" {
				fmt.Fprintf(out, "      %s\n", p.Description)
			}
		}
	}
}

func propertyAccess(p *library.Property) string {
	switch {
	case p.HasGetter && p.HasSetter:
		return "get, set"
	case p.HasSetter:
		return "set"
	default:
		return "get"
	}
}

type libraryPayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Methods     []methodPayload   `json:"methods,omitempty"`
	Properties  []propertyPayload `json:"properties,omitempty"`
}

type methodPayload struct {
	Name         string   `json:"name"`
	Parameters   []string `json:"parameters"`
	ReturnsValue bool     `json:"returns_value"`
	Description  string   `json:"description,omitempty"`
}

type propertyPayload struct {
	Name        string `json:"name"`
	Get         bool   `json:"get"`
	Set         bool   `json:"set"`
	Description string `json:"description,omitempty"`
}

func libraryToPayload(lib *library.Library, members bool) libraryPayload {
	p := libraryPayload{Name: lib.Name, Description: lib.Description}
	if !members {
		return p
	}
	for _, n := range lib.MethodNames() {
		m, _ := lib.Method(n)
		params := m.Parameters
		if params == nil {
			params = []string{}
		}
		p.Methods = append(p.Methods, methodPayload{Name: m.Name, Parameters: params, ReturnsValue: m.ReturnsValue, Description: m.Description})
	}
	for _, n := range lib.PropertyNames() {
		prop, _ := lib.Property(n)
		p.Properties = append(p.Properties, propertyPayload{Name: prop.Name, Get: prop.HasGetter, Set: prop.HasSetter, Description: prop.Description})
	}
	return p
}

func renderLibrariesJSON(out io.Writer, reg *library.Registry) error {
	names := reg.Names()
	payload := make([]libraryPayload, 0, len(names))
	for _, n := range names {
		lib, _ := reg.Library(n)
		payload = append(payload, libraryToPayload(lib, false))
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderLibraryJSON(out io.Writer, lib *library.Library) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(libraryToPayload(lib, true))
}
