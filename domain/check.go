package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported report formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ScanMode selects how textual predicates inspect a class
type ScanMode string

const (
	// ScanModeAST matches parsed import statements and call nodes
	ScanModeAST ScanMode = "ast"

	// ScanModeText matches regular expressions against the raw source
	ScanModeText ScanMode = "text"
)

// CheckRequest describes one invocation of the check use case
type CheckRequest struct {
	// ProjectRoot is the Laravel project directory
	ProjectRoot string

	// Presets to run, in order. Empty means every enabled preset.
	Presets []string

	// Aggregate collects every violation instead of stopping at the first one
	Aggregate bool

	// ScanMode overrides the configured scan mode when set
	ScanMode ScanMode

	// ConfigPath is an explicit config file; empty means discover one
	ConfigPath string

	// Timeout bounds preset evaluation; zero keeps the executor default
	Timeout time.Duration

	OutputFormat OutputFormat
	OutputWriter io.Writer
}

// PresetResult is the outcome of running one preset
type PresetResult struct {
	Preset        string       `json:"preset" yaml:"preset"`
	Category      Category     `json:"category" yaml:"category"`
	Passed        bool         `json:"passed" yaml:"passed"`
	ClassesScoped int          `json:"classes_scoped" yaml:"classes_scoped"`
	Violations    []Diagnostic `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// CheckSummary provides aggregate statistics
type CheckSummary struct {
	FilesParsed     int `json:"files_parsed" yaml:"files_parsed"`
	ClassesFound    int `json:"classes_found" yaml:"classes_found"`
	PresetsRun      int `json:"presets_run" yaml:"presets_run"`
	PresetsFailed   int `json:"presets_failed" yaml:"presets_failed"`
	TotalViolations int `json:"total_violations" yaml:"total_violations"`
}

// CheckResponse is the full result of a check run
type CheckResponse struct {
	Passed      bool           `json:"passed" yaml:"passed"`
	Results     []PresetResult `json:"results" yaml:"results"`
	Summary     CheckSummary   `json:"summary" yaml:"summary"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	DurationMs  int64          `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Version     string         `json:"version" yaml:"version"`
}

// ScanResult is what the discovery front end hands to the rule engine
type ScanResult struct {
	Classes  []*ClassDescriptor
	Files    int
	Warnings []string
}

// ClassSource turns collected PHP files and view templates into class descriptors
type ClassSource interface {
	Scan(ctx context.Context, files []string, templates []string) (*ScanResult, error)
}

// ReportFormatter renders a check response
type ReportFormatter interface {
	Write(response *CheckResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager creates progress tasks for long running stages
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
