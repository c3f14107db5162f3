package service

import (
	"strings"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/config"
	"github.com/ludo-technologies/larascan/internal/preset"
)

// ConfigurationLoaderImpl loads larascan configuration and translates it for the check use case
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from path, or discovers it upward from
// projectRoot when path is empty
func (c *ConfigurationLoaderImpl) LoadConfig(path, projectRoot string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, projectRoot)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// MergeConfig builds the effective request: config values first, then any
// non-zero field of override
func (c *ConfigurationLoaderImpl) MergeConfig(cfg *config.Config, override *domain.CheckRequest) *domain.CheckRequest {
	merged := c.convertToCheckRequest(cfg)

	if override == nil {
		return merged
	}

	merged.ProjectRoot = override.ProjectRoot
	merged.ConfigPath = override.ConfigPath

	if len(override.Presets) > 0 {
		merged.Presets = override.Presets
	}

	// Aggregate can only be switched on from the command line
	if override.Aggregate {
		merged.Aggregate = true
	}

	if override.ScanMode != "" {
		merged.ScanMode = override.ScanMode
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	merged.Timeout = override.Timeout

	return merged
}

// PresetOptions converts the rules and presets sections into preset build options
func (c *ConfigurationLoaderImpl) PresetOptions(cfg *config.Config, mode domain.ScanMode) preset.Options {
	opts := preset.DefaultOptions()
	opts.RootNamespace = strings.Trim(cfg.Project.RootNamespace, `\`)

	if mode != "" {
		opts.ScanMode = mode
	} else if cfg.Rules.ScanMode != "" {
		opts.ScanMode = domain.ScanMode(cfg.Rules.ScanMode)
	}

	if len(cfg.Presets.Namespaces) > 0 {
		opts.Namespaces = make(map[string]string, len(cfg.Presets.Namespaces))
		for name, ns := range cfg.Presets.Namespaces {
			opts.Namespaces[strings.ToLower(name)] = ns
		}
	}

	if len(cfg.Rules.Verbs) > 0 {
		opts.Verbs = make(map[string][]string, len(cfg.Rules.Verbs))
		for name, verbs := range cfg.Rules.Verbs {
			opts.Verbs[strings.ToLower(name)] = verbs
		}
	}

	opts.EventSuffixes = cfg.Rules.EventSuffixes
	opts.ControllerExtraMethods = cfg.Rules.ControllerExtraMethods
	return opts
}

// ValidateRequest checks the request fields that config validation cannot see
func (c *ConfigurationLoaderImpl) ValidateRequest(req *domain.CheckRequest) error {
	switch req.ScanMode {
	case domain.ScanModeAST, domain.ScanModeText, "":
	default:
		return domain.NewInvalidInputError("invalid scan mode: "+string(req.ScanMode)+" (must be one of: ast, text)", nil)
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, "":
	default:
		return domain.NewInvalidInputError("invalid output format: "+string(req.OutputFormat)+" (must be one of: text, json, yaml)", nil)
	}

	if req.Timeout < 0 {
		return domain.NewInvalidInputError("timeout must not be negative: "+req.Timeout.String(), nil)
	}

	return nil
}

// convertToCheckRequest converts a Config to CheckRequest
func (c *ConfigurationLoaderImpl) convertToCheckRequest(cfg *config.Config) *domain.CheckRequest {
	return &domain.CheckRequest{
		Presets:      append([]string(nil), cfg.Presets.Enabled...),
		Aggregate:    cfg.Report.Aggregate,
		ScanMode:     domain.ScanMode(cfg.Rules.ScanMode),
		OutputFormat: domain.OutputFormat(cfg.Report.Format),
	}
}
