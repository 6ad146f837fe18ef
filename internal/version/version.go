package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the sbasic CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Plain returns Version without decoration.
func Plain() string {
	return Version
}

// Colored paints the major, minor and patch parts of Version; anything after
// the patch number (e.g. "-dev") stays plain.
func Colored() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	patch, suffix := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, suffix = patch[:i], patch[i:]
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

// Details returns the optional build metadata as "commit abc, built 2024-01-15".
func Details() string {
	var parts []string
	if GitCommit != "" {
		parts = append(parts, "commit "+GitCommit)
	}
	if BuildDate != "" {
		parts = append(parts, "built "+BuildDate)
	}
	return strings.Join(parts, ", ")
}
