package config

import "strings"

// ProjectType represents the kind of Laravel application being initialized
type ProjectType string

const (
	ProjectTypeStandard ProjectType = "standard"
	ProjectTypeLivewire ProjectType = "livewire"
	ProjectTypeAPI      ProjectType = "api"
)

// Strictness represents how much of the preset table is enabled
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds the presets and exclusions suited to a project type
type ProjectPreset struct {
	Presets         []string
	ExcludePatterns []string
}

// StrictnessPreset controls preset coverage and reporting for a strictness level
type StrictnessPreset struct {
	// CoreOnly limits the enabled presets to the class kinds every Laravel app has
	CoreOnly  bool
	Aggregate bool
}

var corePresets = map[string]bool{
	"commands":  true,
	"jobs":      true,
	"models":    true,
	"events":    true,
	"listeners": true,
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	common := []string{
		"commands", "jobs", "models", "events", "listeners", "middleware",
		"policies", "providers", "observers", "requests", "actions", "controllers",
	}
	exclude := []string{"**/vendor/**", "**/node_modules/**", "**/storage/**"}

	return map[ProjectType]ProjectPreset{
		ProjectTypeStandard: {
			Presets:         append(append([]string{}, common...), "resources"),
			ExcludePatterns: exclude,
		},
		ProjectTypeLivewire: {
			Presets:         append(append([]string{}, common...), "livewire", "volt"),
			ExcludePatterns: exclude,
		},
		ProjectTypeAPI: {
			Presets:         append(append([]string{}, common...), "resources"),
			ExcludePatterns: append(append([]string{}, exclude...), "**/resources/views/**"),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed:  {CoreOnly: true, Aggregate: false},
		StrictnessStandard: {CoreOnly: false, Aggregate: false},
		StrictnessStrict:   {CoreOnly: false, Aggregate: true},
	}
}

// EnabledPresets returns the preset names a project type and strictness enable
func EnabledPresets(projectType ProjectType, strictness Strictness) []string {
	project, ok := GetProjectPresets()[projectType]
	if !ok {
		project = GetProjectPresets()[ProjectTypeStandard]
	}
	strict := GetStrictnessPresets()[strictness]

	var names []string
	for _, name := range project.Presets {
		if strict.CoreOnly && !corePresets[name] {
			continue
		}
		names = append(names, name)
	}
	return names
}

// GetFullConfigTemplate returns the documented config template as YAML.
// An empty scanMode writes "ast".
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness, scanMode string) string {
	project, ok := GetProjectPresets()[projectType]
	if !ok {
		project = GetProjectPresets()[ProjectTypeStandard]
	}
	strict := GetStrictnessPresets()[strictness]

	if scanMode == "" {
		scanMode = "ast"
	}

	aggregate := "false"
	if strict.Aggregate {
		aggregate = "true"
	}

	return `# larascan configuration
# Documentation: https://github.com/ludo-technologies/larascan

# =============================================================================
# PROJECT LAYOUT
# =============================================================================
project:
  # Directory holding PSR-4 application classes
  app_path: app

  # Directory searched for Volt single-file components
  views_path: resources/views

  # Namespace mapped to app_path
  root_namespace: App

# =============================================================================
# ANALYSIS SCOPE
# =============================================================================
analysis:
  # Glob patterns, relative to app_path, of files to parse
  include_patterns:
    - "**/*.php"

  # Glob patterns of files and directories to skip
  exclude_patterns:
` + formatYAMLList(project.ExcludePatterns, "    ") + `

  # Skip files ignored by the project's .gitignore
  respect_gitignore: true

  # Number of parallel parsers (0 = one per CPU)
  max_workers: 0

# =============================================================================
# RULES
# =============================================================================
rules:
  # "ast" matches parsed imports and calls; "text" matches the raw source,
  # including comments and strings
  scan_mode: ` + scanMode + `

  # Public controller methods accepted besides index, create, store, show,
  # edit, update, destroy and __invoke
  controller_extra_methods: []

  # Replace the verb list a preset accepts as a name prefix
  # verbs:
  #   jobs: [Send, Process, Sync]

  # Replace the past-tense suffixes accepted on event names
  # event_suffixes: [Created, Updated, Deleted]

# =============================================================================
# PRESETS
# =============================================================================
presets:
  # Presets run when none are named on the command line (empty = all)
  enabled:
` + formatYAMLList(EnabledPresets(projectType, strictness), "    ") + `

  # Override the namespace a preset scans, relative to root_namespace
  # unless it starts with a backslash
  # namespaces:
  #   actions: Domain\Actions

# =============================================================================
# OUTPUT SETTINGS
# =============================================================================
report:
  # Output format: "text", "json", "yaml"
  format: text

  # Report every violation instead of stopping each preset at the first one
  aggregate: ` + aggregate + `

  # Show a progress bar on interactive terminals
  progress: true

log:
  # debug, info, warn or error
  level: warn
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# larascan configuration (minimal)
# See full options: https://github.com/ludo-technologies/larascan

project:
  app_path: app
  root_namespace: App

presets:
  enabled: []

report:
  format: text
`
}

// formatYAMLList formats a string slice as a YAML block sequence
func formatYAMLList(items []string, indent string) string {
	if len(items) == 0 {
		return indent + "[]"
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = indent + `- "` + item + `"`
	}
	return strings.Join(lines, "\n")
}
