package discovery

import (
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// frameworkAncestors continues parent chains through well-known framework
// classes that are never part of the scan
var frameworkAncestors = map[string][]string{
	`Illuminate\Foundation\Auth\User`:                    {`Illuminate\Database\Eloquent\Model`},
	`Illuminate\Database\Eloquent\Relations\Pivot`:       {`Illuminate\Database\Eloquent\Model`},
	`Illuminate\Http\Resources\Json\ResourceCollection`: {`Illuminate\Http\Resources\Json\JsonResource`},
	`Illuminate\Foundation\Http\FormRequest`:             {`Illuminate\Http\Request`},
}

// Index links parsed classes into a hierarchy: parent chains, inherited
// interfaces, trait methods and inherited methods. Classes outside the scan
// end a chain unless listed in frameworkAncestors.
type Index struct {
	byName     map[string]*domain.ClassDescriptor
	order      []*domain.ClassDescriptor
	duplicates []string

	linked     map[string]bool
	inProgress map[string]bool
}

// NewIndex builds an index. The first declaration of a name wins.
func NewIndex(classes []*domain.ClassDescriptor) *Index {
	idx := &Index{
		byName:     make(map[string]*domain.ClassDescriptor, len(classes)),
		linked:     make(map[string]bool),
		inProgress: make(map[string]bool),
	}
	for _, c := range classes {
		key := strings.ToLower(c.Name)
		if _, exists := idx.byName[key]; exists {
			idx.duplicates = append(idx.duplicates, c.Name)
			continue
		}
		idx.byName[key] = c
		idx.order = append(idx.order, c)
	}
	return idx
}

// Lookup finds a class by fully-qualified name (case-insensitive, as in PHP)
func (idx *Index) Lookup(name string) (*domain.ClassDescriptor, bool) {
	c, ok := idx.byName[strings.ToLower(strings.TrimPrefix(name, `\`))]
	return c, ok
}

// Duplicates returns class names declared more than once
func (idx *Index) Duplicates() []string {
	return idx.duplicates
}

// Link resolves every class and returns them in input order
func (idx *Index) Link() []*domain.ClassDescriptor {
	for _, c := range idx.order {
		idx.link(c)
	}
	for _, c := range idx.order {
		idx.linkParameters(c)
	}
	return idx.order
}

// linkParameters records the hierarchy of every class-typed parameter
func (idx *Index) linkParameters(c *domain.ClassDescriptor) {
	for i := range c.Methods {
		params := make([]domain.ParameterDescriptor, len(c.Methods[i].Parameters))
		copy(params, c.Methods[i].Parameters)
		for j := range params {
			params[j].TypeHierarchy = idx.hierarchyOf(params[j].Type)
		}
		c.Methods[i].Parameters = params
	}
}

func (idx *Index) hierarchyOf(name string) []string {
	if name == "" {
		return nil
	}
	if known, ok := idx.Lookup(name); ok {
		hierarchy := append([]string(nil), known.Ancestors...)
		return append(hierarchy, known.Interfaces...)
	}
	return frameworkAncestors[name]
}

func (idx *Index) link(c *domain.ClassDescriptor) {
	if idx.linked[c.Name] || idx.inProgress[c.Name] {
		return
	}
	idx.inProgress[c.Name] = true
	defer func() {
		delete(idx.inProgress, c.Name)
		idx.linked[c.Name] = true
	}()

	var parent *domain.ClassDescriptor
	if c.Parent != "" {
		if p, ok := idx.Lookup(c.Parent); ok {
			idx.link(p)
			parent = p
		}
	}

	// Ancestors: the direct parent followed by the parent's chain
	if c.Parent != "" {
		c.Ancestors = []string{c.Parent}
		if parent != nil {
			c.Ancestors = append(c.Ancestors, parent.Ancestors...)
		} else {
			c.Ancestors = append(c.Ancestors, frameworkAncestors[c.Parent]...)
		}
	}

	// Trait members count as declared by the using class but live in the trait file
	for _, traitName := range c.Traits {
		trait, ok := idx.Lookup(traitName)
		if !ok || trait == c {
			continue
		}
		idx.link(trait)
		for _, m := range trait.Methods {
			if c.HasMethod(m.Name) {
				continue
			}
			m.DeclaringClass = c.Name
			c.Methods = append(c.Methods, m)
		}
		for _, p := range trait.Properties {
			if _, exists := c.Property(p.Name); exists {
				continue
			}
			p.DeclaringClass = c.Name
			c.Properties = append(c.Properties, p)
		}
		c.Interfaces = append(c.Interfaces, trait.Interfaces...)
	}

	if parent != nil {
		for _, m := range parent.Methods {
			if m.Visibility == domain.VisibilityPrivate || c.HasMethod(m.Name) {
				continue
			}
			c.Methods = append(c.Methods, m)
		}
		for _, p := range parent.Properties {
			if hasPropertyNamed(c, p.Name) {
				continue
			}
			c.Properties = append(c.Properties, p)
		}
		c.Interfaces = append(c.Interfaces, parent.Interfaces...)
	}

	c.Interfaces = idx.expandInterfaces(c.Interfaces)
}

// expandInterfaces adds interfaces extended by known interfaces and dedupes
func (idx *Index) expandInterfaces(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	queue := append([]string(nil), names...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		if iface, ok := idx.Lookup(name); ok && iface.Kind == domain.ClassKindInterface {
			queue = append(queue, iface.Interfaces...)
		}
	}
	return out
}

func hasPropertyNamed(c *domain.ClassDescriptor, name string) bool {
	for _, p := range c.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}
