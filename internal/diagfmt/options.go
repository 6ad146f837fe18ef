package diagfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sbasic/internal/locale"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses a relative path when the file lies under the base directory.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Format selects the diagnostics output.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatShort   Format = "short"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatPretty, nil
	case FormatPretty, FormatShort, FormatJSON, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected: pretty|short|json|msgpack)", s)
	}
}

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color bool
	// Context: сколько строк до ошибочной показывать.
	Context  int
	PathMode PathMode
	// BaseDir for relative paths; the working directory when empty.
	BaseDir string
	Catalog *locale.Catalog
}

// JSONOpts configures JSON and msgpack output.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // обрезка вывода, не Bag
	Catalog  *locale.Catalog
}

func catalogOrDefault(c *locale.Catalog) *locale.Catalog {
	if c == nil {
		return locale.Default()
	}
	return c
}

// FormatPath renders path according to mode. In-memory units have no path.
func FormatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return "<input>"
	}
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		return relativeTo(path, baseDir, true)
	default:
		return relativeTo(path, baseDir, false)
	}
}

func relativeTo(path, baseDir string, force bool) string {
	abs, err := filepath.Abs(path)
	if err != nil || baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return path
	}
	if !force && strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
