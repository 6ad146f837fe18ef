package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"sbasic/internal/locale"
)

// DefaultDebounce is the LSP recompile delay when sbasic.toml says nothing.
const DefaultDebounce = 250 * time.Millisecond

// Config holds the settings a project file may override. Zero values mean
// "not set": command-line flags and built-in defaults fill them in.
type Config struct {
	// Path of the file the config came from; empty for defaults.
	Path string

	MaxDiagnostics int
	Locale         string
	Format         string
	Debounce       time.Duration
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid sbasic.toml")

type configFile struct {
	Diagnostics struct {
		Max    int    `toml:"max"`
		Locale string `toml:"locale"`
		Format string `toml:"format"`
	} `toml:"diagnostics"`
	LSP struct {
		DebounceMS int `toml:"debounce_ms"`
	} `toml:"lsp"`
}

// Defaults returns the settings used without a project file.
func Defaults() Config {
	return Config{Locale: locale.DefaultName, Format: "pretty", Debounce: DefaultDebounce}
}

// LoadConfig parses sbasic.toml at path. Keys that are absent keep their defaults.
func LoadConfig(path string) (Config, error) {
	var raw configFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}

	cfg := Defaults()
	cfg.Path = path
	if meta.IsDefined("diagnostics", "max") {
		if raw.Diagnostics.Max < 0 {
			return Config{}, fmt.Errorf("%s: %w: [diagnostics].max must not be negative", path, ErrInvalidConfig)
		}
		cfg.MaxDiagnostics = raw.Diagnostics.Max
	}
	if meta.IsDefined("diagnostics", "locale") {
		name := strings.ToLower(strings.TrimSpace(raw.Diagnostics.Locale))
		if !slices.Contains(locale.Available(), name) {
			return Config{}, fmt.Errorf("%s: %w: unknown locale %q", path, ErrInvalidConfig, raw.Diagnostics.Locale)
		}
		cfg.Locale = name
	}
	if meta.IsDefined("diagnostics", "format") {
		cfg.Format = strings.TrimSpace(raw.Diagnostics.Format)
	}
	if meta.IsDefined("lsp", "debounce_ms") {
		if raw.LSP.DebounceMS < 0 {
			return Config{}, fmt.Errorf("%s: %w: [lsp].debounce_ms must not be negative", path, ErrInvalidConfig)
		}
		cfg.Debounce = time.Duration(raw.LSP.DebounceMS) * time.Millisecond
	}
	return cfg, nil
}

// Discover finds sbasic.toml above startDir and loads it; without one it
// returns Defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return LoadConfig(path)
}
