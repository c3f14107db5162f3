package domain

import "strings"

// ClassKind represents the kind of declaration a descriptor was built from
type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
	ClassKindTrait     ClassKind = "trait"
	ClassKindEnum      ClassKind = "enum"

	// ClassKindTemplate marks a view file that is not a PHP class (blade templates)
	ClassKindTemplate ClassKind = "template"
)

// Visibility represents a PHP member visibility modifier
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// SourceSpan is a line and byte range inside a source file
type SourceSpan struct {
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
	StartByte int `json:"start_byte" yaml:"start_byte"`
	EndByte   int `json:"end_byte" yaml:"end_byte"`
}

// ParameterDescriptor describes one declared method parameter
type ParameterDescriptor struct {
	Name string `json:"name" yaml:"name"`

	// Type is the declared type resolved to a fully-qualified name for class types,
	// or the builtin name (int, string, ...). Empty when untyped.
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Variadic bool   `json:"variadic,omitempty" yaml:"variadic,omitempty"`

	// TypeHierarchy lists the known ancestors and interfaces of Type
	TypeHierarchy []string `json:"type_hierarchy,omitempty" yaml:"type_hierarchy,omitempty"`
}

// IsSubtypeOf reports whether the declared type is fqcn or extends/implements it
func (p ParameterDescriptor) IsSubtypeOf(fqcn string) bool {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	if p.Type == "" {
		return false
	}
	if strings.EqualFold(p.Type, fqcn) {
		return true
	}
	for _, t := range p.TypeHierarchy {
		if strings.EqualFold(t, fqcn) {
			return true
		}
	}
	return false
}

// MethodDescriptor describes one method visible on a class
type MethodDescriptor struct {
	Name       string     `json:"name" yaml:"name"`
	Visibility Visibility `json:"visibility" yaml:"visibility"`
	Static     bool       `json:"static,omitempty" yaml:"static,omitempty"`
	Abstract   bool       `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DeclaringClass is the FQCN of the class or trait whose body declares the method
	DeclaringClass string `json:"declaring_class" yaml:"declaring_class"`

	// File is the source file the method body lives in
	File string `json:"file" yaml:"file"`

	Parameters []ParameterDescriptor `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType string                `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Span       SourceSpan            `json:"span" yaml:"span"`
}

// PropertyDescriptor describes a declared class property
type PropertyDescriptor struct {
	Name           string     `json:"name" yaml:"name"`
	Visibility     Visibility `json:"visibility" yaml:"visibility"`
	Static         bool       `json:"static,omitempty" yaml:"static,omitempty"`
	DeclaringClass string     `json:"declaring_class" yaml:"declaring_class"`
	Span           SourceSpan `json:"span" yaml:"span"`
}

// ImportDescriptor is one `use` statement of the file a class lives in
type ImportDescriptor struct {
	Name  string     `json:"name" yaml:"name"`
	Alias string     `json:"alias,omitempty" yaml:"alias,omitempty"`
	Span  SourceSpan `json:"span" yaml:"span"`
}

// CallDescriptor is a call expression found in a class body.
// For global function calls Class is empty; for static calls Class holds the
// resolved scope (or the literal self/static/parent).
type CallDescriptor struct {
	Class    string     `json:"class,omitempty" yaml:"class,omitempty"`
	Function string     `json:"function" yaml:"function"`
	Span     SourceSpan `json:"span" yaml:"span"`
}

// ClassDescriptor is an immutable snapshot of one discovered class.
// Identity is the fully-qualified name, unique within a scan.
type ClassDescriptor struct {
	Name      string     `json:"name" yaml:"name"`
	ShortName string     `json:"short_name" yaml:"short_name"`
	Namespace string     `json:"namespace" yaml:"namespace"`
	File      string     `json:"file" yaml:"file"`
	Kind      ClassKind  `json:"kind" yaml:"kind"`
	Abstract  bool       `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Span      SourceSpan `json:"span" yaml:"span"`

	// Parent is the resolved name of the directly extended class
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	// Ancestors is the resolved parent chain, nearest first. Chains stop at the
	// first class that was not part of the scan.
	Ancestors []string `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`

	// Interfaces holds every implemented interface, including inherited ones
	Interfaces []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`

	// Traits lists the traits used directly by the class body
	Traits []string `json:"traits,omitempty" yaml:"traits,omitempty"`

	Properties []PropertyDescriptor `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Methods holds own methods first (declaration order), followed by methods
	// mixed in from traits and inherited from scanned parents.
	Methods []MethodDescriptor `json:"methods,omitempty" yaml:"methods,omitempty"`

	Imports     []ImportDescriptor `json:"imports,omitempty" yaml:"imports,omitempty"`
	Calls       []CallDescriptor   `json:"calls,omitempty" yaml:"calls,omitempty"`
	StaticCalls []CallDescriptor   `json:"static_calls,omitempty" yaml:"static_calls,omitempty"`

	Source string `json:"-" yaml:"-"`
}

// IsExempt reports whether the class is excluded from every predicate
func (c *ClassDescriptor) IsExempt() bool {
	if c.Abstract {
		return true
	}
	switch c.Kind {
	case ClassKindInterface, ClassKindTrait, ClassKindEnum:
		return true
	}
	return false
}

// IsOwnMethod reports whether m is declared directly in this class's own file
func (c *ClassDescriptor) IsOwnMethod(m MethodDescriptor) bool {
	return m.DeclaringClass == c.Name && m.File == c.File
}

// OwnMethods returns the methods declared directly in the class, in declaration order
func (c *ClassDescriptor) OwnMethods() []MethodDescriptor {
	var own []MethodDescriptor
	for _, m := range c.Methods {
		if c.IsOwnMethod(m) {
			own = append(own, m)
		}
	}
	return own
}

// Method returns the first method with the given name (case-insensitive, as in PHP)
func (c *ClassDescriptor) Method(name string) (MethodDescriptor, bool) {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return MethodDescriptor{}, false
}

// HasMethod reports whether the class exposes a method with the given name
func (c *ClassDescriptor) HasMethod(name string) bool {
	_, ok := c.Method(name)
	return ok
}

// HasOwnMethod reports whether the method is declared in the class's own body
func (c *ClassDescriptor) HasOwnMethod(name string) bool {
	for _, m := range c.OwnMethods() {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

// Property returns the property with the given name declared directly on the class
func (c *ClassDescriptor) Property(name string) (PropertyDescriptor, bool) {
	for _, p := range c.Properties {
		if p.Name == name && p.DeclaringClass == c.Name {
			return p, true
		}
	}
	return PropertyDescriptor{}, false
}

// IsSubtypeOf reports whether the class extends or implements fqcn (case-insensitive, as in PHP)
func (c *ClassDescriptor) IsSubtypeOf(fqcn string) bool {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	if strings.EqualFold(c.Name, fqcn) {
		return true
	}
	for _, a := range c.Ancestors {
		if strings.EqualFold(a, fqcn) {
			return true
		}
	}
	for _, i := range c.Interfaces {
		if strings.EqualFold(i, fqcn) {
			return true
		}
	}
	return false
}

// InNamespace reports whether the class belongs to ns or one of its sub-namespaces
func (c *ClassDescriptor) InNamespace(ns string) bool {
	ns = strings.Trim(ns, `\`)
	if ns == "" {
		return true
	}
	return c.Namespace == ns || strings.HasPrefix(c.Namespace, ns+`\`)
}

// ShortClassName returns the last segment of a fully-qualified class name
func ShortClassName(fqcn string) string {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	if i := strings.LastIndex(fqcn, `\`); i >= 0 {
		return fqcn[i+1:]
	}
	return fqcn
}
