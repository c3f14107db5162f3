package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// match is one forbidden element found in a class
type match struct {
	kind string // "import", "call" or "content"
	name string
	line int
}

// ForbiddenDependency rejects HTTP-layer imports and global helper calls.
// In AST mode parsed use statements and call nodes are inspected; in text
// mode the raw source is scanned with regular expressions. Imports are
// checked before calls, each in list order.
func ForbiddenDependency(category domain.Category, mode domain.ScanMode, imports, calls []string) Predicate {
	noun := Noun(category)
	imports = append([]string(nil), imports...)
	calls = append([]string(nil), calls...)

	var find func(*domain.ClassDescriptor) (match, bool)
	if mode == domain.ScanModeText {
		find = textDependencyFinder(imports, calls)
	} else {
		find = func(class *domain.ClassDescriptor) (match, bool) {
			return astDependency(class, imports, calls)
		}
	}

	options := append([]string(nil), imports...)
	for _, fn := range calls {
		options = append(options, fn+"()")
	}

	return Predicate{
		ID:          RuleForbiddenImport,
		Description: fmt.Sprintf("%s does not depend on the HTTP request, session or container helpers", noun),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			m, found := find(class)
			if !found {
				return domain.Pass()
			}
			v := newViolation(category, RuleForbiddenImport, class).
				at(m.line).
				title("%s must not depend on the HTTP layer", noun).
				reason(fmt.Sprintf("A %s can run outside of a request (queue worker, console, tests); request state is not available there and hides real dependencies.", strings.ToLower(noun))).
				options(options)
			if m.kind == "import" {
				v.statement("%s `%s` imports `%s`.", noun, class.ShortName, m.name).
					detail("`use %s;` on line %d.", m.name, m.line).
					fix("Pass the values the %s needs through its constructor or method arguments instead of importing `%s`.", strings.ToLower(noun), domain.ShortClassName(m.name))
			} else {
				v.statement("%s `%s` calls the global `%s()` helper.", noun, class.ShortName, m.name).
					detail("`%s()` is called on line %d.", m.name, m.line).
					fix("Inject the dependency through the constructor instead of calling `%s()`.", m.name)
			}
			return v.example("public function __construct(\n    private readonly InvoiceRepository $invoices,\n) {}").outcome()
		},
	}
}

func astDependency(class *domain.ClassDescriptor, imports, calls []string) (match, bool) {
	for _, name := range imports {
		for _, imp := range class.Imports {
			if strings.EqualFold(imp.Name, name) {
				return match{kind: "import", name: name, line: imp.Span.StartLine}, true
			}
		}
	}
	for _, fn := range calls {
		for _, call := range class.Calls {
			if call.Function == strings.ToLower(fn) {
				return match{kind: "call", name: fn, line: call.Span.StartLine}, true
			}
		}
	}
	return match{}, false
}

func textDependencyFinder(imports, calls []string) func(*domain.ClassDescriptor) (match, bool) {
	importPatterns := make([]*regexp.Regexp, len(imports))
	for i, name := range imports {
		importPatterns[i] = regexp.MustCompile(`\buse\s+\\?` + regexp.QuoteMeta(name) + `\b`)
	}
	callPatterns := make([]*regexp.Regexp, len(calls))
	for i, fn := range calls {
		callPatterns[i] = regexp.MustCompile(`(?:^|[^\w$>:\\])\\?(` + regexp.QuoteMeta(fn) + `)\s*\(`)
	}

	return func(class *domain.ClassDescriptor) (match, bool) {
		for i, re := range importPatterns {
			if loc := re.FindStringIndex(class.Source); loc != nil {
				return match{kind: "import", name: imports[i], line: LineAt(class.Source, loc[0])}, true
			}
		}
		for i, re := range callPatterns {
			if loc := re.FindStringSubmatchIndex(class.Source); loc != nil {
				return match{kind: "call", name: calls[i], line: LineAt(class.Source, loc[2])}, true
			}
		}
		return match{}, false
	}
}

var staticCallPattern = regexp.MustCompile(`\b([A-Z]\w*)::(\w+)\s*\(`)

// NoDatabaseQueries rejects Eloquent queries issued statically on a model
// class and any call through the DB facade. Calls are visited in source order.
func NoDatabaseQueries(category domain.Category, mode domain.ScanMode, methods []string) Predicate {
	noun := Noun(category)
	queryMethods := make(map[string]bool, len(methods))
	for _, m := range methods {
		queryMethods[strings.ToLower(m)] = true
	}

	var find func(*domain.ClassDescriptor) (match, bool)
	if mode == domain.ScanModeText {
		find = func(class *domain.ClassDescriptor) (match, bool) {
			for _, loc := range staticCallPattern.FindAllStringSubmatchIndex(class.Source, -1) {
				target := class.Source[loc[2]:loc[3]]
				fn := class.Source[loc[4]:loc[5]]
				if isQueryCall(target, fn, queryMethods) {
					return match{kind: "call", name: target + "::" + fn, line: LineAt(class.Source, loc[0])}, true
				}
			}
			return match{}, false
		}
	} else {
		find = func(class *domain.ClassDescriptor) (match, bool) {
			for _, call := range class.StaticCalls {
				if isQueryCall(call.Class, call.Function, queryMethods) {
					name := domain.ShortClassName(call.Class) + "::" + call.Function
					return match{kind: "call", name: name, line: call.Span.StartLine}, true
				}
			}
			return match{}, false
		}
	}

	return Predicate{
		ID:          RuleNoDatabaseQueries,
		Description: fmt.Sprintf("%s does not query the database", noun),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			m, found := find(class)
			if !found {
				return domain.Pass()
			}
			return newViolation(category, RuleNoDatabaseQueries, class).
				at(m.line).
				title("%s must not run database queries", noun).
				statement("%s `%s` calls `%s()`.", noun, class.ShortName, m.name).
				reason(fmt.Sprintf("A %s only transforms data it is given; queries inside it run once per item and cause N+1 problems.", strings.ToLower(noun))).
				detail("`%s()` is called on line %d.", m.name, m.line).
				fix("Load the data before building the %s, e.g. with eager loading, and read it from the model.", strings.ToLower(noun)).
				example("return [\n    'posts' => PostResource::collection($this->whenLoaded('posts')),\n];").
				outcome()
		},
	}
}

func isQueryCall(target, fn string, queryMethods map[string]bool) bool {
	short := domain.ShortClassName(target)
	if short == "DB" || strings.EqualFold(target, DBFacade) {
		return true
	}
	switch strings.ToLower(target) {
	case "self", "static", "parent":
		return false
	}
	if facadeNames[short] || strings.HasPrefix(target, `Illuminate\`) {
		return false
	}
	return queryMethods[strings.ToLower(fn)]
}

// ForbiddenContent rejects classes whose source contains any marker.
// Markers are tried in list order; the first one found is reported.
func ForbiddenContent(category domain.Category, markers []string, reasonText, fixText string) Predicate {
	noun := Noun(category)
	markers = append([]string(nil), markers...)

	return Predicate{
		ID:          RuleForbiddenContent,
		Description: fmt.Sprintf("%s source contains none of %d markers", noun, len(markers)),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			for _, marker := range markers {
				offset := strings.Index(class.Source, marker)
				if offset < 0 {
					continue
				}
				line := LineAt(class.Source, offset)
				return newViolation(category, RuleForbiddenContent, class).
					at(line).
					title("%s syntax is not allowed", noun).
					statement("`%s` contains `%s`.", class.File, marker).
					reason(reasonText).
					detail("`%s` found on line %d.", marker, line).
					options(markers).
					fix("%s", fixText).
					outcome()
			}
			return domain.Pass()
		},
	}
}
