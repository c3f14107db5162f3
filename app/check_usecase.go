package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/config"
	"github.com/ludo-technologies/larascan/internal/discovery"
	"github.com/ludo-technologies/larascan/internal/preset"
	"github.com/ludo-technologies/larascan/service"
)

// CheckUseCase orchestrates a check run: load config, collect files, scan,
// run presets and write the report
type CheckUseCase struct {
	loader     *service.ConfigurationLoaderImpl
	checker    *service.CheckService
	formatter  domain.ReportFormatter
	fileHelper *FileHelper
	progress   domain.ProgressManager
	source     domain.ClassSource
	logger     *slog.Logger
}

// Plan is the resolved input of a check run
type Plan struct {
	Config    *config.Config
	Request   *domain.CheckRequest
	Presets   []preset.Preset
	Files     []string
	Templates []string
}

// NewCheckUseCase creates a check use case with the default services
func NewCheckUseCase(logger *slog.Logger) *CheckUseCase {
	return NewCheckUseCaseBuilder().WithLogger(logger).Build()
}

// Execute runs the check described by req. Violations are reported through
// the response, not the error; an error means the run itself failed.
func (uc *CheckUseCase) Execute(ctx context.Context, req domain.CheckRequest) (*domain.CheckResponse, error) {
	plan, err := uc.Prepare(req)
	if err != nil {
		return nil, err
	}
	return uc.Run(ctx, plan)
}

// Prepare resolves configuration, presets and the file set without parsing anything
func (uc *CheckUseCase) Prepare(req domain.CheckRequest) (*Plan, error) {
	if req.ProjectRoot == "" {
		req.ProjectRoot = "."
	}
	if !uc.fileHelper.DirExists(req.ProjectRoot) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("project root is not a directory: %s", req.ProjectRoot), nil)
	}

	cfg, err := uc.loader.LoadConfig(req.ConfigPath, req.ProjectRoot)
	if err != nil {
		return nil, err
	}

	merged := uc.loader.MergeConfig(cfg, &req)
	if err := uc.loader.ValidateRequest(merged); err != nil {
		return nil, err
	}

	table := preset.Build(uc.loader.PresetOptions(cfg, merged.ScanMode))
	presets, err := table.Select(merged.Presets)
	if err != nil {
		return nil, err
	}

	opts := CollectOptions{
		IncludePatterns:  cfg.Analysis.IncludePatterns,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		RespectGitignore: cfg.Analysis.RespectGitignore,
	}

	appDir := filepath.Join(req.ProjectRoot, cfg.Project.AppPath)
	if !uc.fileHelper.DirExists(appDir) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("application directory not found: %s", appDir), nil)
	}
	files, err := uc.fileHelper.CollectPHPFiles(req.ProjectRoot, cfg.Project.AppPath, opts)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect PHP files", err)
	}

	var templates []string
	if needsTemplates(presets) {
		templates, err = uc.fileHelper.CollectTemplates(req.ProjectRoot, cfg.Project.ViewsPath, opts)
		if err != nil {
			return nil, domain.NewInvalidInputError("failed to collect view templates", err)
		}
	}

	uc.logger.Debug("check planned",
		slog.String("root", req.ProjectRoot),
		slog.Int("files", len(files)),
		slog.Int("templates", len(templates)),
		slog.Int("presets", len(presets)))

	return &Plan{
		Config:    cfg,
		Request:   merged,
		Presets:   presets,
		Files:     files,
		Templates: templates,
	}, nil
}

// Run scans the planned files, runs the presets and writes the report when
// the request carries a writer
func (uc *CheckUseCase) Run(ctx context.Context, plan *Plan) (*domain.CheckResponse, error) {
	source := uc.source
	if source == nil {
		scanner := discovery.NewScanner(uc.logger).WithProgress(uc.progress)
		if n := plan.Config.Analysis.MaxWorkers; n > 0 {
			scanner = scanner.WithMaxWorkers(n)
		}
		source = scanner
	}

	scan, err := source.Scan(ctx, plan.Files, plan.Templates)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to scan project", err)
	}
	for _, w := range scan.Warnings {
		uc.logger.Warn("scan warning", slog.String("detail", w))
	}

	executor := service.NewParallelExecutorFromConfig(&plan.Config.Analysis).WithProgress(uc.progress)
	executor.SetTimeout(plan.Request.Timeout)
	response, err := uc.checker.WithExecutor(executor).Run(ctx, plan.Presets, scan, plan.Request.Aggregate)
	if err != nil {
		return nil, err
	}

	if plan.Request.OutputWriter != nil {
		if err := uc.formatter.Write(response, plan.Request.OutputFormat, plan.Request.OutputWriter); err != nil {
			return response, err
		}
	}
	return response, nil
}

func needsTemplates(presets []preset.Preset) bool {
	for _, p := range presets {
		for _, step := range p.Steps {
			if step.Scope.Templates {
				return true
			}
		}
	}
	return false
}

// CheckUseCaseBuilder builds a CheckUseCase
type CheckUseCaseBuilder struct {
	uc CheckUseCase
}

// NewCheckUseCaseBuilder creates a new builder
func NewCheckUseCaseBuilder() *CheckUseCaseBuilder {
	return &CheckUseCaseBuilder{}
}

// WithLogger sets the logger
func (b *CheckUseCaseBuilder) WithLogger(logger *slog.Logger) *CheckUseCaseBuilder {
	b.uc.logger = logger
	return b
}

// WithFormatter sets the report formatter
func (b *CheckUseCaseBuilder) WithFormatter(f domain.ReportFormatter) *CheckUseCaseBuilder {
	b.uc.formatter = f
	return b
}

// WithProgress sets the progress manager used while parsing
func (b *CheckUseCaseBuilder) WithProgress(pm domain.ProgressManager) *CheckUseCaseBuilder {
	b.uc.progress = pm
	return b
}

// WithClassSource replaces the file scanner
func (b *CheckUseCaseBuilder) WithClassSource(src domain.ClassSource) *CheckUseCaseBuilder {
	b.uc.source = src
	return b
}

// WithFileHelper sets the file helper
func (b *CheckUseCaseBuilder) WithFileHelper(fh *FileHelper) *CheckUseCaseBuilder {
	b.uc.fileHelper = fh
	return b
}

// Build creates the CheckUseCase, filling unset dependencies with defaults
func (b *CheckUseCaseBuilder) Build() *CheckUseCase {
	uc := b.uc
	if uc.logger == nil {
		uc.logger = slog.Default()
	}
	if uc.formatter == nil {
		uc.formatter = service.NewReportFormatter()
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}
	if uc.progress == nil {
		uc.progress = &service.NoOpProgressManager{}
	}
	uc.loader = service.NewConfigurationLoader()
	uc.checker = service.NewCheckService(uc.logger)
	return &uc
}
