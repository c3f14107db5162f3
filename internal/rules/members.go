package rules

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// RequiredProperty requires a property declared directly on the class
func RequiredProperty(category domain.Category, name, reasonText, exampleCode string) Predicate {
	noun := Noun(category)

	return Predicate{
		ID:          RuleRequiredProperty,
		Description: fmt.Sprintf("%s declares $%s", noun, name),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			if _, ok := class.Property(name); ok {
				return domain.Pass()
			}
			return newViolation(category, RuleRequiredProperty, class).
				title("%s must declare a `$%s` property", noun, name).
				statement("%s `%s` does not declare `$%s`.", noun, class.ShortName, name).
				reason(reasonText).
				fix("Add a `$%s` property to `%s`.", name, class.ShortName).
				example(exampleCode).
				outcome()
		},
	}
}

// RequiredMethod requires at least one of names to be present on the class,
// own or inherited
func RequiredMethod(category domain.Category, reasonText string, names ...string) Predicate {
	return requiredMethod(category, false, reasonText, names)
}

// RequiredOwnMethod requires at least one of names to be declared in the class body
func RequiredOwnMethod(category domain.Category, reasonText string, names ...string) Predicate {
	return requiredMethod(category, true, reasonText, names)
}

func requiredMethod(category domain.Category, own bool, reasonText string, names []string) Predicate {
	noun := Noun(category)
	names = append([]string(nil), names...)
	wanted := make([]string, len(names))
	for i, n := range names {
		wanted[i] = "`" + n + "()`"
	}
	either := strings.Join(wanted, " or ")

	return Predicate{
		ID:          RuleRequiredMethod,
		Description: fmt.Sprintf("%s defines %s", noun, strings.ReplaceAll(either, "`", "")),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			for _, n := range names {
				if (own && class.HasOwnMethod(n)) || (!own && class.HasMethod(n)) {
					return domain.Pass()
				}
			}
			where := "define"
			if own {
				where = "define in its own body"
			}
			return newViolation(category, RuleRequiredMethod, class).
				title("%s must %s %s", noun, where, either).
				statement("%s `%s` has no %s method.", noun, class.ShortName, either).
				reason(reasonText).
				options(names).
				fix("Add a public `%s()` method to `%s`.", names[0], class.ShortName).
				example(fmt.Sprintf("public function %s()\n{\n    // ...\n}", names[0])).
				outcome()
		},
	}
}

// RequiredInterface requires the class to implement iface, directly or through a parent
func RequiredInterface(category domain.Category, iface, reasonText string) Predicate {
	noun := Noun(category)
	short := domain.ShortClassName(iface)

	return Predicate{
		ID:          RuleRequiredInterface,
		Description: fmt.Sprintf("%s implements %s", noun, short),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			if class.IsSubtypeOf(iface) {
				return domain.Pass()
			}
			return newViolation(category, RuleRequiredInterface, class).
				title("%s must implement %s", noun, short).
				statement("%s `%s` does not implement `%s`.", noun, class.ShortName, iface).
				reason(reasonText).
				fix("Implement `%s` on `%s`.", short, class.ShortName).
				example(fmt.Sprintf("use %s;\n\nclass %s implements %s", iface, class.ShortName, short)).
				outcome()
		},
	}
}

// ForbiddenProperty rejects a property declared directly on the class.
// Inherited declarations are not the class's responsibility.
func ForbiddenProperty(category domain.Category, name, reasonText, fixText string) Predicate {
	noun := Noun(category)

	return Predicate{
		ID:          RuleForbiddenProperty,
		Description: fmt.Sprintf("%s does not declare $%s", noun, name),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			prop, ok := class.Property(name)
			if !ok {
				return domain.Pass()
			}
			return newViolation(category, RuleForbiddenProperty, class).
				span(prop.Span).
				title("%s must not declare `$%s`", noun, name).
				statement("%s `%s` declares `$%s`.", noun, class.ShortName, name).
				reason(reasonText).
				fix("%s", fixText).
				outcome()
		},
	}
}

// AllowedMethods requires every own public method to be in allowed or extra.
// Methods are visited in declaration order and the first outsider is reported.
func AllowedMethods(category domain.Category, allowed []string, extra []string, reasonText string) Predicate {
	noun := Noun(category)
	options := append(append([]string(nil), allowed...), extra...)
	set := make(map[string]bool, len(options))
	for _, name := range options {
		set[strings.ToLower(name)] = true
	}

	return Predicate{
		ID:          RuleAllowedMethods,
		Description: fmt.Sprintf("%s public methods are limited to %d names", noun, len(options)),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			for _, m := range class.OwnMethods() {
				if m.Visibility != domain.VisibilityPublic || set[strings.ToLower(m.Name)] {
					continue
				}
				return newViolation(category, RuleAllowedMethods, class).
					method(m).
					title("%s may only expose the allowed public methods", noun).
					statement("%s `%s` exposes `%s()`, which is not an allowed method.", noun, class.ShortName, m.Name).
					reason(reasonText).
					detail("`%s()` is declared at lines %d-%d.", m.Name, m.Span.StartLine, m.Span.EndLine).
					options(options).
					fix("Move `%s()` out of `%s` or rename it to one of the allowed methods.", m.Name, class.ShortName).
					outcome()
			}
			return domain.Pass()
		},
	}
}

// NoNonPublicMethods rejects any protected or private method declared in the class body
func NoNonPublicMethods(category domain.Category, reasonText string) Predicate {
	noun := Noun(category)

	return Predicate{
		ID:          RuleNoNonPublic,
		Description: fmt.Sprintf("%s declares no protected or private methods", noun),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			for _, m := range class.OwnMethods() {
				if m.Visibility == domain.VisibilityPublic {
					continue
				}
				return newViolation(category, RuleNoNonPublic, class).
					method(m).
					title("%s must not have helper methods", noun).
					statement("%s `%s` declares %s method `%s()`.", noun, class.ShortName, m.Visibility, m.Name).
					reason(reasonText).
					detail("`%s()` is declared at lines %d-%d.", m.Name, m.Span.StartLine, m.Span.EndLine).
					fix("Extract `%s()` into a dedicated class and inject it.", m.Name).
					outcome()
			}
			return domain.Pass()
		},
	}
}
