package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/larascan/internal/constants"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig should not return nil")
	}

	if config.Project.AppPath != constants.DefaultAppPath {
		t.Errorf("Expected AppPath %s, got %s", constants.DefaultAppPath, config.Project.AppPath)
	}
	if config.Project.RootNamespace != "App" {
		t.Errorf("Expected RootNamespace App, got %s", config.Project.RootNamespace)
	}
	if config.Rules.ScanMode != "ast" {
		t.Errorf("Expected ScanMode 'ast', got '%s'", config.Rules.ScanMode)
	}
	if config.Report.Format != "text" {
		t.Errorf("Expected Format 'text', got '%s'", config.Report.Format)
	}
	if config.Report.Aggregate {
		t.Error("Aggregate should be false by default")
	}
	if !config.Analysis.RespectGitignore {
		t.Error("RespectGitignore should be true by default")
	}
	if len(config.Analysis.IncludePatterns) == 0 {
		t.Error("IncludePatterns should not be empty")
	}
	if len(config.Presets.Enabled) != 0 {
		t.Errorf("Expected no enabled presets (all), got %v", config.Presets.Enabled)
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty app path", func(c *Config) { c.Project.AppPath = " " }, "app_path"},
		{"bad namespace", func(c *Config) { c.Project.RootNamespace = "App-Core" }, "root_namespace"},
		{"no include patterns", func(c *Config) { c.Analysis.IncludePatterns = nil }, "include_patterns"},
		{"negative workers", func(c *Config) { c.Analysis.MaxWorkers = -1 }, "max_workers"},
		{"scan mode", func(c *Config) { c.Rules.ScanMode = "regex" }, "scan_mode"},
		{"format", func(c *Config) { c.Report.Format = "html" }, "format"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty verbs", func(c *Config) { c.Rules.Verbs = map[string][]string{"jobs": {}} }, "rules.verbs.jobs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Validate_NamespaceWithBackslashes(t *testing.T) {
	config := DefaultConfig()
	config.Project.RootNamespace = `\Acme\Shop`

	if err := config.Validate(); err != nil {
		t.Errorf("Nested namespace should be valid, got %v", err)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with empty path should not fail: %v", err)
	}
	if config.Report.Format != "text" {
		t.Errorf("Expected default format, got %s", config.Report.Format)
	}
}

func TestLoadConfig_NonExistent(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/larascan.yaml")
	if err == nil {
		t.Error("Expected error for non-existent config file")
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "larascan.yaml")
	content := `
project:
  root_namespace: Acme
rules:
  scan_mode: text
  controller_extra_methods: [export]
  verbs:
    jobs: [Ship]
presets:
  enabled: [jobs, controllers]
  namespaces:
    actions: '\Domain\Actions'
report:
  aggregate: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Project.RootNamespace != "Acme" {
		t.Errorf("Expected root namespace Acme, got %s", config.Project.RootNamespace)
	}
	if config.Project.AppPath != "app" {
		t.Errorf("Unset keys should keep defaults, got app_path %s", config.Project.AppPath)
	}
	if config.Rules.ScanMode != "text" {
		t.Errorf("Expected scan mode text, got %s", config.Rules.ScanMode)
	}
	if got := config.Rules.Verbs["jobs"]; len(got) != 1 || got[0] != "Ship" {
		t.Errorf("Expected jobs verbs [Ship], got %v", got)
	}
	if len(config.Presets.Enabled) != 2 {
		t.Errorf("Expected 2 enabled presets, got %v", config.Presets.Enabled)
	}
	if config.Presets.Namespaces["actions"] != `\Domain\Actions` {
		t.Errorf("Unexpected actions namespace %q", config.Presets.Namespaces["actions"])
	}
	if !config.Report.Aggregate {
		t.Error("Expected aggregate to be true")
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "larascan.yaml")
	if err := os.WriteFile(path, []byte("report:\n  format: html\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected invalid configuration error, got %v", err)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LARASCAN_REPORT_FORMAT", "json")
	t.Setenv("LARASCAN_RULES_SCAN_MODE", "text")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Report.Format != "json" {
		t.Errorf("Expected env override json, got %s", config.Report.Format)
	}
	if config.Rules.ScanMode != "text" {
		t.Errorf("Expected env override text, got %s", config.Rules.ScanMode)
	}
}

func TestSearchConfigInDirectory(t *testing.T) {
	tempDir := t.TempDir()

	if result := searchConfigInDirectory(tempDir); result != "" {
		t.Errorf("Expected empty result for empty dir, got %s", result)
	}

	// .larascan.yaml ranks below larascan.yml
	for _, name := range []string{".larascan.yaml", "larascan.yml"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	result := searchConfigInDirectory(tempDir)
	if filepath.Base(result) != "larascan.yml" {
		t.Errorf("Expected larascan.yml, got %s", result)
	}
}

func TestFindConfigFile_WalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "Jobs")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, constants.DefaultConfigFile)
	if err := os.WriteFile(configPath, []byte("report:\n  format: yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != configPath {
		t.Errorf("Expected %s, got %s", configPath, got)
	}

	config, err := LoadConfigWithTarget("", nested)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if config.Report.Format != "yaml" {
		t.Errorf("Expected discovered format yaml, got %s", config.Report.Format)
	}
}

func TestFullConfigTemplate_ParsesAndValidates(t *testing.T) {
	for _, pt := range []ProjectType{ProjectTypeStandard, ProjectTypeLivewire, ProjectTypeAPI} {
		for _, st := range []Strictness{StrictnessRelaxed, StrictnessStandard, StrictnessStrict} {
			t.Run(string(pt)+"/"+string(st), func(t *testing.T) {
				config := DefaultConfig()
				if err := yaml.Unmarshal([]byte(GetFullConfigTemplate(pt, st, "")), config); err != nil {
					t.Fatalf("template is not valid YAML: %v", err)
				}
				if err := config.Validate(); err != nil {
					t.Errorf("template config invalid: %v", err)
				}
				if len(config.Presets.Enabled) == 0 {
					t.Error("template should enable presets")
				}
				if config.Report.Aggregate != (st == StrictnessStrict) {
					t.Errorf("unexpected aggregate %v for %s", config.Report.Aggregate, st)
				}
			})
		}
	}
}

func TestFullConfigTemplate_ScanMode(t *testing.T) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(GetFullConfigTemplate(ProjectTypeAPI, StrictnessStandard, "text")), config); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	if config.Rules.ScanMode != "text" {
		t.Errorf("Expected scan mode text, got %s", config.Rules.ScanMode)
	}
}

func TestMinimalConfigTemplate_Parses(t *testing.T) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(GetMinimalConfigTemplate()), config); err != nil {
		t.Fatalf("minimal template is not valid YAML: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("minimal template invalid: %v", err)
	}
}

func TestEnabledPresets(t *testing.T) {
	relaxed := EnabledPresets(ProjectTypeLivewire, StrictnessRelaxed)
	if len(relaxed) != len(corePresets) {
		t.Errorf("Relaxed should enable core presets only, got %v", relaxed)
	}

	livewire := EnabledPresets(ProjectTypeLivewire, StrictnessStandard)
	if !contains(livewire, "volt") || !contains(livewire, "livewire") {
		t.Errorf("Livewire project should enable livewire and volt, got %v", livewire)
	}

	api := EnabledPresets(ProjectTypeAPI, StrictnessStandard)
	if contains(api, "volt") || !contains(api, "resources") {
		t.Errorf("API project should enable resources and skip volt, got %v", api)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
