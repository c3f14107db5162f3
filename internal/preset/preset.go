// Package preset binds rule predicates to the namespaces of one scaffolding category.
package preset

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/rules"
)

// Scope selects the classes a step applies to
type Scope struct {
	// Namespace restricts the step to classes in this namespace and below
	Namespace string

	// Templates restricts the step to view templates instead of classes
	Templates bool
}

// Contains reports whether class falls inside the scope
func (s Scope) Contains(class *domain.ClassDescriptor) bool {
	if class.Kind == domain.ClassKindTemplate {
		return s.Templates
	}
	return !s.Templates && class.InNamespace(s.Namespace)
}

// String renders the scope for listings
func (s Scope) String() string {
	if s.Templates {
		return "views"
	}
	return s.Namespace
}

// Step is one predicate evaluated against one scope
type Step struct {
	Predicate rules.Predicate
	Scope     Scope
}

// Preset is an ordered, static list of steps for one category
type Preset struct {
	Name        string
	Category    domain.Category
	Description string
	Steps       []Step
}

// Namespaces returns the distinct scopes of the preset in step order
func (p Preset) Namespaces() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range p.Steps {
		key := s.Scope.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// Table maps preset names to presets. It is built once and never mutated.
type Table struct {
	presets map[string]Preset
	order   []string
}

// NewTable creates a table from presets, keeping their order
func NewTable(presets ...Preset) *Table {
	t := &Table{presets: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		if _, exists := t.presets[p.Name]; !exists {
			t.order = append(t.order, p.Name)
		}
		t.presets[p.Name] = p
	}
	return t
}

// Names returns preset names in table order
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Get returns the named preset or an UNKNOWN_PRESET error with suggestions
func (t *Table) Get(name string) (Preset, error) {
	if p, ok := t.presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return Preset{}, domain.NewUnknownPresetError(name, t.Suggest(name))
}

// Select resolves names in order; an empty list selects every preset
func (t *Table) Select(names []string) ([]Preset, error) {
	if len(names) == 0 {
		names = t.order
	}
	presets := make([]Preset, 0, len(names))
	for _, name := range names {
		p, err := t.Get(name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Suggest returns up to three preset names close to name
func (t *Table) Suggest(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, t.order)
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			return out
		}
	}

	// Fall back to shared prefixes for typos fuzzy matching cannot bridge
	var prefixed []string
	for _, candidate := range t.order {
		if commonPrefix(candidate, name) >= 3 {
			prefixed = append(prefixed, candidate)
		}
	}
	sort.Strings(prefixed)
	for _, p := range prefixed {
		if len(out) == 3 {
			break
		}
		if !contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
