package domain

import (
	"fmt"
	"strings"
)

// Category tags the scaffolding category a rule belongs to
type Category string

const (
	CategoryCommand         Category = "command"
	CategoryJob             Category = "job"
	CategoryModel           Category = "model"
	CategoryEvent           Category = "event"
	CategoryListener        Category = "listener"
	CategoryMiddleware      Category = "middleware"
	CategoryPolicy          Category = "policy"
	CategoryServiceProvider Category = "service provider"
	CategoryResource        Category = "resource"
	CategoryObserver        Category = "observer"
	CategoryFormRequest     Category = "form request"
	CategoryAction          Category = "action"
	CategoryController      Category = "controller"
	CategoryLivewire        Category = "livewire"
	CategoryVolt            Category = "volt"
)

// Tag returns the upper-case violation banner, e.g. "JOB VIOLATION"
func (c Category) Tag() string {
	return fmt.Sprintf("%s VIOLATION", strings.ToUpper(string(c)))
}

// Diagnostic is the structured description of a single convention violation
type Diagnostic struct {
	Category  Category `json:"category" yaml:"category"`
	Rule      string   `json:"rule" yaml:"rule"`
	Title     string   `json:"title" yaml:"title"`
	Statement string   `json:"statement" yaml:"statement"`
	Reason    string   `json:"reason" yaml:"reason"`

	Class     string `json:"class" yaml:"class"`
	Method    string `json:"method,omitempty" yaml:"method,omitempty"`
	FilePath  string `json:"file" yaml:"file"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`

	// Detail names the offending element (method, import, call) in one sentence
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	Options   []string `json:"options,omitempty" yaml:"options,omitempty"`
	Fix       string   `json:"fix" yaml:"fix"`
	Example   string   `json:"example,omitempty" yaml:"example,omitempty"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Location returns file:start-end
func (d *Diagnostic) Location() string {
	if d.EndLine > d.StartLine {
		return fmt.Sprintf("%s:%d-%d", d.FilePath, d.StartLine, d.EndLine)
	}
	return fmt.Sprintf("%s:%d", d.FilePath, d.StartLine)
}

// Outcome is the binary result of applying one predicate to one class
type Outcome struct {
	Passed     bool        `json:"passed" yaml:"passed"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// Pass returns a passing outcome
func Pass() Outcome {
	return Outcome{Passed: true}
}

// Violation returns a failing outcome carrying d
func Violation(d Diagnostic) Outcome {
	return Outcome{Passed: false, Diagnostic: &d}
}

// IsViolation reports whether the outcome failed
func (o Outcome) IsViolation() bool {
	return !o.Passed
}
