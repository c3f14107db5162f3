package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// bladeSuffix marks view templates, which Volt components live in
const bladeSuffix = ".blade.php"

// CollectOptions selects files under a directory
type CollectOptions struct {
	// IncludePatterns are doublestar globs relative to the walked directory; empty matches everything
	IncludePatterns []string

	// ExcludePatterns are doublestar globs relative to the walked directory
	ExcludePatterns []string

	// RespectGitignore skips paths matched by <project root>/.gitignore
	RespectGitignore bool
}

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectPHPFiles collects class files (*.php, excluding Blade views) below
// projectRoot/dir. Returned paths are joined onto projectRoot and sorted.
func (h *FileHelper) CollectPHPFiles(projectRoot, dir string, opts CollectOptions) ([]string, error) {
	return h.collect(projectRoot, dir, opts, func(path string) bool {
		return h.IsPHPFile(path) && !h.IsTemplateFile(path)
	})
}

// CollectTemplates collects Blade templates below projectRoot/dir. A missing
// directory yields no templates rather than an error.
func (h *FileHelper) CollectTemplates(projectRoot, dir string, opts CollectOptions) ([]string, error) {
	base := filepath.Join(projectRoot, dir)
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return nil, nil
	}
	opts.IncludePatterns = nil
	return h.collect(projectRoot, dir, opts, h.IsTemplateFile)
}

func (h *FileHelper) collect(projectRoot, dir string, opts CollectOptions, accept func(string) bool) ([]string, error) {
	base := filepath.Join(projectRoot, dir)
	info, err := os.Stat(base)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "collect", Path: base, Err: fs.ErrInvalid}
	}

	var gitignore *ignore.GitIgnore
	if opts.RespectGitignore {
		gitignore = h.loadGitignore(projectRoot)
	}

	var files []string
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == base {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || h.isExcludedDir(rel, opts.ExcludePatterns) || h.ignored(gitignore, projectRoot, path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !accept(path) {
			return nil
		}
		if !h.isIncluded(rel, opts.IncludePatterns) || h.isExcluded(rel, opts.ExcludePatterns) {
			return nil
		}
		if h.ignored(gitignore, projectRoot, path, false) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// IsPHPFile checks if a file is PHP based on extension
func (h *FileHelper) IsPHPFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".php")
}

// IsTemplateFile checks if a file is a Blade template
func (h *FileHelper) IsTemplateFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), bladeSuffix)
}

// DirExists checks if a directory exists
func (h *FileHelper) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (h *FileHelper) loadGitignore(projectRoot string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(projectRoot, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func (h *FileHelper) ignored(gi *ignore.GitIgnore, projectRoot, path string, isDir bool) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return gi.MatchesPath(rel)
}

func (h *FileHelper) isIncluded(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (h *FileHelper) isExcluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isExcludedDir treats "x/**" patterns as matching the directory x itself
func (h *FileHelper) isExcludedDir(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if trimmed := strings.TrimSuffix(pattern, "/**"); trimmed != pattern {
			if ok, _ := doublestar.Match(trimmed, rel); ok {
				return true
			}
		}
	}
	return false
}
