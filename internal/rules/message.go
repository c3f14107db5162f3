package rules

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// violation collects the parts of a diagnostic while a predicate builds it
type violation struct {
	d domain.Diagnostic
}

func newViolation(category domain.Category, rule string, class *domain.ClassDescriptor) *violation {
	return &violation{d: domain.Diagnostic{
		Category:  category,
		Rule:      rule,
		Class:     class.Name,
		FilePath:  class.File,
		StartLine: class.Span.StartLine,
		EndLine:   class.Span.EndLine,
		Reference: References[category],
	}}
}

func (v *violation) title(format string, args ...any) *violation {
	v.d.Title = fmt.Sprintf(format, args...)
	return v
}

func (v *violation) statement(format string, args ...any) *violation {
	v.d.Statement = fmt.Sprintf(format, args...)
	return v
}

func (v *violation) reason(text string) *violation {
	v.d.Reason = text
	return v
}

func (v *violation) detail(format string, args ...any) *violation {
	v.d.Detail = fmt.Sprintf(format, args...)
	return v
}

func (v *violation) options(opts []string) *violation {
	v.d.Options = append([]string(nil), opts...)
	return v
}

func (v *violation) fix(format string, args ...any) *violation {
	v.d.Fix = fmt.Sprintf(format, args...)
	return v
}

func (v *violation) example(code string) *violation {
	v.d.Example = strings.TrimSpace(code)
	return v
}

// method points the diagnostic at a method declaration
func (v *violation) method(m domain.MethodDescriptor) *violation {
	v.d.Method = m.Name
	v.d.StartLine = m.Span.StartLine
	v.d.EndLine = m.Span.EndLine
	return v
}

// at points the diagnostic at a single line
func (v *violation) at(line int) *violation {
	v.d.StartLine = line
	v.d.EndLine = line
	return v
}

func (v *violation) span(s domain.SourceSpan) *violation {
	v.d.StartLine = s.StartLine
	v.d.EndLine = s.EndLine
	return v
}

func (v *violation) outcome() domain.Outcome {
	return domain.Violation(v.d)
}

// Noun returns the display name of a category, e.g. "Form request"
func Noun(category domain.Category) string {
	s := string(category)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// exampleName returns a well-formed class name for the category
func exampleName(category domain.Category) string {
	if name, ok := exampleNames[category]; ok {
		return name
	}
	return "Example"
}

// quoteList renders names as a comma separated list of quoted identifiers
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
