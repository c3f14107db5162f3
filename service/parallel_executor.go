package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/config"
)

// Default values for parallel executor
const (
	// DefaultMaxConcurrency is used when the configured worker count is not positive
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 5 * time.Minute
)

// Task is one unit of work, usually the evaluation of a single preset
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures in task order
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutor runs independent tasks with bounded concurrency.
// Every task runs to completion; failures are collected, not short-circuited.
type ParallelExecutor struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	mu             sync.RWMutex
}

// NewParallelExecutor creates an executor using one worker per CPU
func NewParallelExecutor() *ParallelExecutor {
	return &ParallelExecutor{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig bounds concurrency by analysis.max_workers
func NewParallelExecutorFromConfig(cfg *config.AnalysisConfig) *ParallelExecutor {
	maxConcurrency := cfg.MaxWorkers
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &ParallelExecutor{
		maxConcurrency: maxConcurrency,
		timeout:        DefaultTimeout,
	}
}

// WithProgress attaches a progress manager
func (e *ParallelExecutor) WithProgress(pm domain.ProgressManager) *ParallelExecutor {
	e.progress = pm
	return e
}

// Execute runs tasks with the configured concurrency and timeout
func (e *ParallelExecutor) Execute(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	e.mu.RLock()
	maxConcurrency := e.maxConcurrency
	timeout := e.timeout
	e.mu.RUnlock()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var progress domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		progress = e.progress.StartTask("Evaluating presets", len(tasks))
	}
	defer progress.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(maxConcurrency)

	failures := make([]error, len(tasks))
	for i, t := range tasks {
		g.Go(func() error {
			defer progress.Increment(1)
			if err := gCtx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			failures[i] = t.Run(gCtx)
			return nil
		})
	}

	// goroutines never return an error, so Wait only synchronises
	_ = g.Wait()

	var taskErrors []TaskError
	for i, err := range failures {
		if err != nil {
			taskErrors = append(taskErrors, TaskError{TaskName: tasks[i].Name, Err: err})
		}
	}
	if len(taskErrors) > 0 {
		return &AggregatedError{Errors: taskErrors}
	}
	return nil
}

// SetTimeout sets the timeout for a whole Execute call
func (e *ParallelExecutor) SetTimeout(timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timeout > 0 {
		e.timeout = timeout
	}
}
