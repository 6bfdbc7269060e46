package script

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed patterns.toml
var patternsTOML string

// Params are the values interpolated into a pattern's {name} placeholders.
type Params map[string]any

// Pattern is a canned effect: Lua fragments for the operation, extra effect
// properties and the effect code, each with its own placeholders.
type Pattern struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Operation   string `toml:"operation"`
	Properties  string `toml:"properties"`
	Code        string `toml:"code"`
	Defaults    Params `toml:"defaults"`
}

type catalogFile struct {
	Patterns []Pattern `toml:"pattern"`
}

// catalog is built once from the embedded file and only read afterwards.
var catalog = mustLoadCatalog(patternsTOML)

func mustLoadCatalog(data string) map[string]Pattern {
	patterns, err := parseCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("script: embedded pattern catalog: %v", err))
	}
	return patterns
}

func parseCatalog(data string) (map[string]Pattern, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, err
	}
	patterns := make(map[string]Pattern, len(f.Patterns))
	for _, p := range f.Patterns {
		if p.Name == "" {
			return nil, fmt.Errorf("pattern without a name")
		}
		if _, dup := patterns[p.Name]; dup {
			return nil, fmt.Errorf("duplicate pattern %q", p.Name)
		}
		patterns[p.Name] = p
	}
	return patterns, nil
}

// LookupPattern returns the named pattern.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := catalog[name]
	return p, ok
}

// Patterns maps every pattern name to its description.
func Patterns() map[string]string {
	out := make(map[string]string, len(catalog))
	for name, p := range catalog {
		out[name] = p.Description
	}
	return out
}

// PatternNames returns the catalog's names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merged returns the pattern defaults overlaid with params.
func (p Pattern) merged(params Params) Params {
	out := Params{}
	for k, v := range p.Defaults {
		out[k] = v
	}
	for k, v := range params {
		out[k] = v
	}
	return out
}

func interpolate(fragment string, params Params) string {
	for k, v := range params {
		fragment = strings.ReplaceAll(fragment, "{"+k+"}", fmt.Sprint(v))
	}
	return fragment
}
