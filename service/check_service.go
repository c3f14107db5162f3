package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/preset"
	"github.com/ludo-technologies/larascan/internal/version"
)

// CheckService runs presets against scanned classes. It keeps no state
// between runs, so repeated runs over the same classes give the same result.
type CheckService struct {
	logger   *slog.Logger
	executor *ParallelExecutor
}

// NewCheckService creates a new check service
func NewCheckService(logger *slog.Logger) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{logger: logger, executor: NewParallelExecutor()}
}

// WithExecutor returns a copy of the service that evaluates presets on e
func (s *CheckService) WithExecutor(e *ParallelExecutor) *CheckService {
	return &CheckService{logger: s.logger, executor: e}
}

// RunPreset visits classes sorted by name and applies the preset's steps to
// each in declaration order. A class stops at its first failing step. In
// fail-fast mode the first violation ends the whole preset; with aggregate
// each failing class contributes one violation.
func (s *CheckService) RunPreset(ctx context.Context, p preset.Preset, classes []*domain.ClassDescriptor, aggregate bool) (domain.PresetResult, error) {
	result := domain.PresetResult{
		Preset:   p.Name,
		Category: p.Category,
		Passed:   true,
	}

	sorted := make([]*domain.ClassDescriptor, len(classes))
	copy(sorted, classes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	scoped := make(map[string]bool)
	for _, class := range sorted {
		for _, step := range p.Steps {
			if !step.Scope.Contains(class) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return result, err
			}
			scoped[class.Name] = true

			outcome := step.Predicate.Evaluate(class)
			if outcome.Passed {
				continue
			}

			result.Passed = false
			result.Violations = append(result.Violations, *outcome.Diagnostic)
			s.logger.Debug("violation",
				slog.String("preset", p.Name),
				slog.String("rule", outcome.Diagnostic.Rule),
				slog.String("class", class.Name))

			if !aggregate {
				result.ClassesScoped = len(scoped)
				return result, nil
			}
			// the first failing step ends this class's checks
			break
		}
	}

	result.ClassesScoped = len(scoped)
	return result, nil
}

// Run evaluates presets concurrently over a scan result and assembles the
// response in preset order. A failing preset does not stop the others.
func (s *CheckService) Run(ctx context.Context, presets []preset.Preset, scan *domain.ScanResult, aggregate bool) (*domain.CheckResponse, error) {
	start := time.Now()

	response := &domain.CheckResponse{
		Passed:   true,
		Results:  make([]domain.PresetResult, 0, len(presets)),
		Warnings: scan.Warnings,
		Version:  version.Short(),
		Summary: domain.CheckSummary{
			FilesParsed:  scan.Files,
			ClassesFound: len(scan.Classes),
		},
	}

	results := make([]domain.PresetResult, len(presets))
	tasks := make([]Task, len(presets))
	for i, p := range presets {
		tasks[i] = Task{
			Name: p.Name,
			Run: func(ctx context.Context) error {
				result, err := s.RunPreset(ctx, p, scan.Classes, aggregate)
				results[i] = result
				return err
			},
		}
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewAnalysisError("preset run interrupted", err)
	}

	for _, result := range results {
		s.logger.Info("preset finished",
			slog.String("preset", result.Preset),
			slog.Bool("passed", result.Passed),
			slog.Int("classes", result.ClassesScoped))

		response.Results = append(response.Results, result)
		response.Summary.PresetsRun++
		if !result.Passed {
			response.Passed = false
			response.Summary.PresetsFailed++
			response.Summary.TotalViolations += len(result.Violations)
		}
	}

	response.DurationMs = time.Since(start).Milliseconds()
	response.GeneratedAt = time.Now().Format(time.RFC3339)
	return response, nil
}
