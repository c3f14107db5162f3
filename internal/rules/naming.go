package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// VerbPrefix requires the short class name to start with one of verbs.
// Matching is case-sensitive; the first verb in list order that matches wins.
func VerbPrefix(category domain.Category, verbs []string) Predicate {
	verbs = append([]string(nil), verbs...)
	noun := Noun(category)

	return Predicate{
		ID:          RuleNamingPrefix,
		Description: fmt.Sprintf("%s names start with an action verb", noun),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			if _, ok := MatchPrefix(class.ShortName, verbs); ok {
				return domain.Pass()
			}
			example := exampleName(category)
			return newViolation(category, RuleNamingPrefix, class).
				title("%s name must start with an action verb", noun).
				statement("%s `%s` does not start with a recognised verb.", noun, class.ShortName).
				reason(fmt.Sprintf("A %s is something the application does; a leading verb makes its purpose obvious wherever it is dispatched.", strings.ToLower(noun))).
				options(verbs).
				fix("Rename `%s` so it starts with one of the valid verbs.", class.ShortName).
				example(fmt.Sprintf("class %s", example)).
				outcome()
		},
	}
}

// NameSuffix requires the short class name to end with one of suffixes.
// The first suffix in list order that matches wins.
func NameSuffix(category domain.Category, suffixes []string) Predicate {
	suffixes = append([]string(nil), suffixes...)
	noun := Noun(category)

	return Predicate{
		ID:          RuleNamingSuffix,
		Description: fmt.Sprintf("%s names end with %s", noun, strings.Join(suffixes, " or ")),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			if _, ok := MatchSuffix(class.ShortName, suffixes); ok {
				return domain.Pass()
			}
			v := newViolation(category, RuleNamingSuffix, class).
				title("%s name must end with %s", noun, quoteList(suffixes)).
				statement("%s `%s` does not end with a valid suffix.", noun, class.ShortName).
				options(suffixes).
				fix("Rename `%s` to end with `%s`.", class.ShortName, suffixes[0]).
				example(fmt.Sprintf("class %s", exampleName(category)))
			if category == domain.CategoryEvent {
				v.reason("Events describe something that already happened, so their names read in the past tense.")
			} else {
				v.reason(fmt.Sprintf("The suffix tells readers and the framework's auto-discovery that this class is a %s.", strings.ToLower(noun)))
			}
			return v.outcome()
		},
	}
}

// NamePattern requires the short class name to match pattern
func NamePattern(category domain.Category, pattern *regexp.Regexp, options []string) Predicate {
	noun := Noun(category)

	return Predicate{
		ID:          RuleNamingPattern,
		Description: fmt.Sprintf("%s names match %s", noun, pattern.String()),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			if pattern.MatchString(class.ShortName) {
				return domain.Pass()
			}
			return newViolation(category, RuleNamingPattern, class).
				title("%s name must match %s", noun, pattern.String()).
				statement("%s `%s` does not match the naming pattern.", noun, class.ShortName).
				reason(fmt.Sprintf("Each %s validates exactly one write operation, and the name says which one.", strings.ToLower(noun))).
				options(options).
				fix("Rename `%s` after the controller action it validates.", class.ShortName).
				example(fmt.Sprintf("class %s", exampleName(category))).
				outcome()
		},
	}
}

// MatchPrefix returns the first entry of prefixes that name starts with
func MatchPrefix(name string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return p, true
		}
	}
	return "", false
}

// MatchSuffix returns the first entry of suffixes that name ends with
func MatchSuffix(name string, suffixes []string) (string, bool) {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return s, true
		}
	}
	return "", false
}
