package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/larascan/internal/constants"
)

// Config represents the main configuration structure
type Config struct {
	// Project describes the Laravel application layout
	Project ProjectConfig `json:"project" mapstructure:"project" yaml:"project"`

	// Analysis controls which files are parsed and how
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Rules tunes the predicate vocabularies
	Rules RulesConfig `json:"rules" mapstructure:"rules" yaml:"rules"`

	// Presets selects presets and overrides their namespaces
	Presets PresetsConfig `json:"presets" mapstructure:"presets" yaml:"presets"`

	// Report controls output
	Report ReportConfig `json:"report" mapstructure:"report" yaml:"report"`

	// Log controls diagnostic logging on stderr
	Log LogConfig `json:"log" mapstructure:"log" yaml:"log"`
}

// ProjectConfig holds paths relative to the project root
type ProjectConfig struct {
	AppPath       string `json:"app_path" mapstructure:"app_path" yaml:"app_path"`
	ViewsPath     string `json:"views_path" mapstructure:"views_path" yaml:"views_path"`
	RootNamespace string `json:"root_namespace" mapstructure:"root_namespace" yaml:"root_namespace"`
}

// AnalysisConfig holds file selection and parsing configuration
type AnalysisConfig struct {
	// IncludePatterns are doublestar globs matched against paths relative to the app directory
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns are doublestar globs; a match on a directory skips it entirely
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// MaxWorkers bounds parallel parsing; 0 uses one worker per CPU
	MaxWorkers int `json:"max_workers" mapstructure:"max_workers" yaml:"max_workers"`
}

// RulesConfig holds predicate tuning
type RulesConfig struct {
	// ScanMode is "ast" (parsed imports and calls) or "text" (regular expressions over source)
	ScanMode string `json:"scan_mode" mapstructure:"scan_mode" yaml:"scan_mode"`

	// ControllerExtraMethods are accepted on controllers in addition to the REST verbs
	ControllerExtraMethods []string `json:"controller_extra_methods" mapstructure:"controller_extra_methods" yaml:"controller_extra_methods"`

	// Verbs replaces the verb list of commands, jobs, listeners or middleware
	Verbs map[string][]string `json:"verbs,omitempty" mapstructure:"verbs" yaml:"verbs,omitempty"`

	// EventSuffixes replaces the past-tense suffix list of events
	EventSuffixes []string `json:"event_suffixes,omitempty" mapstructure:"event_suffixes" yaml:"event_suffixes,omitempty"`
}

// PresetsConfig holds preset selection
type PresetsConfig struct {
	// Enabled lists the presets run when none are named on the command line; empty means all
	Enabled []string `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Namespaces overrides the namespace of a preset, relative to the root namespace
	// unless it starts with a backslash
	Namespaces map[string]string `json:"namespaces,omitempty" mapstructure:"namespaces" yaml:"namespaces,omitempty"`
}

// ReportConfig holds output configuration
type ReportConfig struct {
	// Format is text, json or yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Aggregate reports every violation instead of stopping each preset at the first one
	Aggregate bool `json:"aggregate" mapstructure:"aggregate" yaml:"aggregate"`

	// Progress shows a progress bar while parsing on interactive terminals
	Progress bool `json:"progress" mapstructure:"progress" yaml:"progress"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `json:"level" mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			AppPath:       constants.DefaultAppPath,
			ViewsPath:     constants.DefaultViewsPath,
			RootNamespace: constants.DefaultRootNamespace,
		},
		Analysis: AnalysisConfig{
			IncludePatterns:  []string{"**/*.php"},
			ExcludePatterns:  []string{"**/vendor/**", "**/node_modules/**", "**/storage/**"},
			RespectGitignore: true,
			MaxWorkers:       0,
		},
		Rules: RulesConfig{
			ScanMode:               "ast",
			ControllerExtraMethods: []string{},
		},
		Presets: PresetsConfig{
			Enabled: []string{},
		},
		Report: ReportConfig{
			Format:    "text",
			Aggregate: false,
			Progress:  true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\\[A-Za-z_][A-Za-z0-9_]*)*$`)

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Project.AppPath) == "" {
		return fmt.Errorf("project.app_path cannot be empty")
	}

	if ns := strings.Trim(c.Project.RootNamespace, `\`); ns != "" && !namespacePattern.MatchString(ns) {
		return fmt.Errorf("project.root_namespace %q is not a valid PHP namespace", c.Project.RootNamespace)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Analysis.MaxWorkers < 0 {
		return fmt.Errorf("analysis.max_workers must be >= 0, got %d", c.Analysis.MaxWorkers)
	}

	switch c.Rules.ScanMode {
	case "ast", "text":
	default:
		return fmt.Errorf("invalid rules.scan_mode '%s', must be one of: ast, text", c.Rules.ScanMode)
	}

	switch c.Report.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid report.format '%s', must be one of: text, json, yaml", c.Report.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	for name, verbs := range c.Rules.Verbs {
		if len(verbs) == 0 {
			return fmt.Errorf("rules.verbs.%s cannot be empty", name)
		}
	}

	return nil
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file upward
// from targetPath when configPath is empty. Environment variables prefixed
// with LARASCAN_ override file values (LARASCAN_REPORT_FORMAT=json).
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = FindConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file; an empty path
// yields defaults plus environment overrides
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	setDefaults(v, config)

	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers scalar keys so environment overrides are visible to Unmarshal
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("project.app_path", c.Project.AppPath)
	v.SetDefault("project.views_path", c.Project.ViewsPath)
	v.SetDefault("project.root_namespace", c.Project.RootNamespace)
	v.SetDefault("analysis.include_patterns", c.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", c.Analysis.ExcludePatterns)
	v.SetDefault("analysis.respect_gitignore", c.Analysis.RespectGitignore)
	v.SetDefault("analysis.max_workers", c.Analysis.MaxWorkers)
	v.SetDefault("rules.scan_mode", c.Rules.ScanMode)
	v.SetDefault("report.format", c.Report.Format)
	v.SetDefault("report.aggregate", c.Report.Aggregate)
	v.SetDefault("report.progress", c.Report.Progress)
	v.SetDefault("log.level", c.Log.Level)
}

// searchConfigInDirectory returns the first candidate config file present in dir
func searchConfigInDirectory(dir string) string {
	for _, candidate := range constants.ConfigFileNames {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// FindConfigFile searches from targetPath up to the filesystem root, then the
// current directory, then $XDG_CONFIG_HOME/larascan. Returns "" when nothing is found.
func FindConfigFile(targetPath string) string {
	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir); config != "" {
					return config
				}
				parent := filepath.Dir(dir)
				if parent == dir || dir == volume || (volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory("."); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName)); config != "" {
			return config
		}
	}

	return ""
}
