package parser

import (
	"strings"
)

// builtinTypes are type names that never resolve against the namespace
var builtinTypes = map[string]bool{
	"int": true, "integer": true, "float": true, "double": true, "string": true,
	"bool": true, "boolean": true, "array": true, "callable": true, "iterable": true,
	"object": true, "mixed": true, "void": true, "null": true, "never": true,
	"false": true, "true": true,
}

// nameResolver resolves class names the way PHP does at compile time:
// fully-qualified names are kept, the first segment is looked up in the
// file's imports, and anything else is prefixed with the current namespace.
type nameResolver struct {
	namespace string
	aliases   map[string]string // lower-cased alias -> fully-qualified name
}

func newNameResolver() *nameResolver {
	return &nameResolver{aliases: make(map[string]string)}
}

func (r *nameResolver) setNamespace(ns string) {
	r.namespace = strings.Trim(ns, `\`)
}

func (r *nameResolver) addImport(name, alias string) {
	name = strings.TrimPrefix(name, `\`)
	if alias == "" {
		alias = lastSegment(name)
	}
	r.aliases[strings.ToLower(alias)] = name
}

// resolveClass resolves a class reference. self/static/parent are returned
// unchanged so callers can substitute the enclosing class.
func (r *nameResolver) resolveClass(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, `\`) {
		return strings.TrimPrefix(name, `\`)
	}

	lower := strings.ToLower(name)
	if builtinTypes[lower] {
		return lower
	}
	switch lower {
	case "self", "static", "parent":
		return lower
	}
	if strings.HasPrefix(lower, `namespace\`) {
		return r.qualify(name[len(`namespace\`):])
	}

	first, rest, hasRest := strings.Cut(name, `\`)
	if fq, ok := r.aliases[strings.ToLower(first)]; ok {
		if hasRest {
			return fq + `\` + rest
		}
		return fq
	}
	return r.qualify(name)
}

func (r *nameResolver) qualify(name string) string {
	if r.namespace == "" {
		return name
	}
	return r.namespace + `\` + name
}

// resolveFunction normalizes a function call name. Unqualified calls keep their
// bare name since PHP falls back to the global function.
func resolveFunction(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), `\`))
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
