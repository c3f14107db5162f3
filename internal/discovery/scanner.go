// Package discovery turns PHP source files into linked class descriptors.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/parser"
)

// DefaultMaxWorkers is used when no positive worker count is configured
const DefaultMaxWorkers = 4

// Scanner parses files in parallel and links the resulting class hierarchy.
// Each Scan starts from scratch; nothing is cached between scans.
type Scanner struct {
	maxWorkers int
	progress   domain.ProgressManager
	logger     *slog.Logger
}

// NewScanner creates a scanner using one worker per CPU
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		maxWorkers: runtime.NumCPU(),
		logger:     logger,
	}
}

// WithMaxWorkers bounds the number of files parsed concurrently
func (s *Scanner) WithMaxWorkers(n int) *Scanner {
	if n <= 0 {
		n = DefaultMaxWorkers
	}
	s.maxWorkers = n
	return s
}

// WithProgress attaches a progress manager
func (s *Scanner) WithProgress(pm domain.ProgressManager) *Scanner {
	s.progress = pm
	return s
}

// Scan parses PHP files and reads template files, returning linked descriptors
// sorted by name. Files that fail to read or parse become warnings.
func (s *Scanner) Scan(ctx context.Context, files []string, templates []string) (*domain.ScanResult, error) {
	var task domain.TaskProgress = noopTask{}
	if s.progress != nil {
		task = s.progress.StartTask("Parsing PHP files", len(files)+len(templates))
	}
	defer task.Complete()

	results := make([]*parser.FileResult, len(files))
	var warnMu sync.Mutex
	var warnings []string
	warn := func(msg string) {
		warnMu.Lock()
		warnings = append(warnings, msg)
		warnMu.Unlock()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			defer task.Increment(1)

			content, err := os.ReadFile(path)
			if err != nil {
				warn(fmt.Sprintf("[%s] failed to read file: %v", path, err))
				return nil
			}

			p := parser.NewParser()
			defer p.Close()

			result, err := p.ParseFile(gCtx, path, content)
			if err != nil {
				warn(fmt.Sprintf("[%s] %v", path, err))
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	var classes []*domain.ClassDescriptor
	parsed := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		parsed++
		classes = append(classes, r.Classes...)
	}

	index := NewIndex(classes)
	for _, dup := range index.Duplicates() {
		warn(fmt.Sprintf("duplicate class %s, keeping the first declaration", dup))
	}
	classes = index.Link()

	for _, path := range templates {
		content, err := os.ReadFile(path)
		task.Increment(1)
		if err != nil {
			warn(fmt.Sprintf("[%s] failed to read template: %v", path, err))
			continue
		}
		classes = append(classes, templateDescriptor(path, string(content)))
	}

	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})
	sort.Strings(warnings)

	s.logger.Debug("scan complete",
		slog.Int("files", parsed),
		slog.Int("templates", len(templates)),
		slog.Int("classes", len(classes)),
		slog.Int("warnings", len(warnings)))

	return &domain.ScanResult{
		Classes:  classes,
		Files:    parsed + len(templates),
		Warnings: warnings,
	}, nil
}

// templateDescriptor wraps a view file so text predicates can inspect it
func templateDescriptor(path, content string) *domain.ClassDescriptor {
	lines := strings.Count(content, "\n") + 1
	return &domain.ClassDescriptor{
		Name:      filepath.ToSlash(path),
		ShortName: filepath.Base(path),
		File:      path,
		Kind:      domain.ClassKindTemplate,
		Span: domain.SourceSpan{
			StartLine: 1,
			EndLine:   lines,
			EndByte:   len(content),
		},
		Source: content,
	}
}

type noopTask struct{}

func (noopTask) Increment(int)   {}
func (noopTask) Describe(string) {}
func (noopTask) Complete()       {}
