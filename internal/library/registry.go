// Package library holds the registry of libraries programs may reference.
// The registry is read-only: it is decoded once from the embedded
// libraries.toml and shared by every compilation, the CLI and the LSP.
package library

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed libraries.toml
var supportedTOML string

// Method describes a callable library member.
type Method struct {
	Name         string
	Parameters   []string
	ReturnsValue bool
	Description  string
}

// ArgumentsCount returns how many arguments a call must pass.
func (m *Method) ArgumentsCount() int {
	return len(m.Parameters)
}

// Signature renders the method as "Name(a, b)".
func (m *Method) Signature() string {
	return m.Name + "(" + strings.Join(m.Parameters, ", ") + ")"
}

// Property describes a library value that can be read and/or assigned.
type Property struct {
	Name        string
	HasGetter   bool
	HasSetter   bool
	Description string
}

type Library struct {
	Name        string
	Description string
	Methods     map[string]*Method
	Properties  map[string]*Property
}

// Method looks up a method by exact name.
func (l *Library) Method(name string) (*Method, bool) {
	m, ok := l.Methods[name]
	return m, ok
}

// Property looks up a property by exact name.
func (l *Library) Property(name string) (*Property, bool) {
	p, ok := l.Properties[name]
	return p, ok
}

// MethodNames returns method names in sorted order.
func (l *Library) MethodNames() []string {
	return sortedKeys(l.Methods)
}

// PropertyNames returns property names in sorted order.
func (l *Library) PropertyNames() []string {
	return sortedKeys(l.Properties)
}

// Registry maps library names to their surface.
type Registry struct {
	libs map[string]*Library
}

// Library looks up a library by exact name.
func (r *Registry) Library(name string) (*Library, bool) {
	if r == nil {
		return nil, false
	}
	l, ok := r.libs[name]
	return l, ok
}

// Names returns library names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.libs)
}

var (
	supportedOnce sync.Once
	supported     *Registry
)

// Supported returns the built-in registry. A broken embedded document is a
// build defect, so it panics instead of returning an error.
func Supported() *Registry {
	supportedOnce.Do(func() {
		reg, err := Parse(supportedTOML)
		if err != nil {
			panic(fmt.Errorf("library: embedded registry: %w", err))
		}
		supported = reg
	})
	return supported
}

type methodDoc struct {
	Parameters  []string `toml:"parameters"`
	Returns     bool     `toml:"returns"`
	Description string   `toml:"description"`
}

type propertyDoc struct {
	Get         bool   `toml:"get"`
	Set         bool   `toml:"set"`
	Description string `toml:"description"`
}

type libraryDoc struct {
	Description string                 `toml:"description"`
	Methods     map[string]methodDoc   `toml:"methods"`
	Properties  map[string]propertyDoc `toml:"properties"`
}

// Parse decodes a registry document. Unknown keys and members that are both
// a method and a property are rejected.
func Parse(doc string) (*Registry, error) {
	var raw map[string]libraryDoc
	meta, err := toml.Decode(doc, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	reg := &Registry{libs: make(map[string]*Library, len(raw))}
	for name, ld := range raw {
		lib := &Library{
			Name:        name,
			Description: ld.Description,
			Methods:     make(map[string]*Method, len(ld.Methods)),
			Properties:  make(map[string]*Property, len(ld.Properties)),
		}
		for mname, md := range ld.Methods {
			lib.Methods[mname] = &Method{
				Name:         mname,
				Parameters:   md.Parameters,
				ReturnsValue: md.Returns,
				Description:  md.Description,
			}
		}
		for pname, pd := range ld.Properties {
			if _, clash := lib.Methods[pname]; clash {
				return nil, fmt.Errorf("%s.%s is both a method and a property", name, pname)
			}
			if !pd.Get && !pd.Set {
				return nil, fmt.Errorf("%s.%s can be neither read nor assigned", name, pname)
			}
			lib.Properties[pname] = &Property{
				Name:        pname,
				HasGetter:   pd.Get,
				HasSetter:   pd.Set,
				Description: pd.Description,
			}
		}
		reg.libs[name] = lib
	}
	return reg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
