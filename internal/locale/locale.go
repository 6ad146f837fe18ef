// Package locale renders diagnostics through localized template catalogs.
//
// Catalogs are embedded: locales/en.toml is the reference and must define
// every diagnostic; other languages may be TOML or YAML and fall back to
// English key by key. Templates use positional placeholders {0}, {1}, ...
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sbasic/internal/diag"
)

//go:embed locales
var catalogs embed.FS

// DefaultName is the reference catalog.
const DefaultName = "en"

// ErrUnknownLocale is returned by Load for a name with no catalog.
var ErrUnknownLocale = errors.New("unknown locale")

// document is the on-disk shape shared by TOML and YAML catalogs.
type document struct {
	Severity    map[string]string `toml:"severity" yaml:"severity"`
	Diagnostics map[string]string `toml:"diagnostics" yaml:"diagnostics"`
}

// Catalog holds one language. Lookups that miss fall back to the parent.
type Catalog struct {
	name     string
	doc      document
	fallback *Catalog
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the English catalog. The embedded reference catalog is
// part of the binary, so a failure to decode it panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := decode(DefaultName)
		if err != nil {
			panic(fmt.Sprintf("locale: reference catalog: %v", err))
		}
		defaultCat = cat
	})
	return defaultCat
}

// Load returns the catalog for name ("en", "ru"). The empty name means English.
func Load(name string) (*Catalog, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == DefaultName {
		return Default(), nil
	}
	cat, err := decode(name)
	if err != nil {
		return nil, err
	}
	cat.fallback = Default()
	return cat, nil
}

// Available lists the embedded catalog names in sorted order.
func Available() []string {
	entries, err := fs.ReadDir(catalogs, "locales")
	if err != nil {
		panic(fmt.Sprintf("locale: embedded catalogs: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := path.Ext(e.Name())
		switch ext {
		case ".toml", ".yaml", ".yml":
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(names)
	return names
}

func decode(name string) (*Catalog, error) {
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		file := "locales/" + name + ext
		content, err := catalogs.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		cat := &Catalog{name: name}
		if ext == ".toml" {
			err = toml.Unmarshal(content, &cat.doc)
		} else {
			err = yaml.Unmarshal(content, &cat.doc)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		return cat, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownLocale, name, strings.Join(Available(), ", "))
}

func (c *Catalog) Name() string { return c.name }

// Template returns the template for code, falling back to English and then
// to the code name itself.
func (c *Catalog) Template(code diag.Code) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if tmpl, ok := cat.doc.Diagnostics[code.Name()]; ok {
			return tmpl
		}
	}
	return code.Name()
}

// Severity returns the localized severity word.
func (c *Catalog) Severity(sev diag.Severity) string {
	key := strings.ToLower(sev.String())
	for cat := c; cat != nil; cat = cat.fallback {
		if word, ok := cat.doc.Severity[key]; ok {
			return word
		}
	}
	return key
}

// Render returns the message of d in this catalog's language.
func (c *Catalog) Render(d diag.Diagnostic) string {
	return Format(c.Template(d.Code), d.Args)
}

// Missing lists the diagnostic names this catalog does not translate itself.
func (c *Catalog) Missing() []string {
	var out []string
	for _, code := range diag.Codes() {
		if _, ok := c.doc.Diagnostics[code.Name()]; !ok {
			out = append(out, code.Name())
		}
	}
	return out
}

// Format substitutes {n} with args[n]. Placeholders without an argument and
// unmatched braces are kept as written.
func Format(tmpl string, args []string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var sb strings.Builder
	sb.Grow(len(tmpl))
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(tmpl[open:], '}')
		if closing < 0 {
			break
		}
		closing += open
		sb.WriteString(tmpl[:open])
		n, err := strconv.Atoi(tmpl[open+1 : closing])
		if err != nil || n < 0 || n >= len(args) {
			sb.WriteString(tmpl[open : closing+1])
		} else {
			sb.WriteString(args[n])
		}
		tmpl = tmpl[closing+1:]
	}
	sb.WriteString(tmpl)
	return sb.String()
}
