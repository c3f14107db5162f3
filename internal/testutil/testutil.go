// Package testutil provides helper functions for testing larascan components
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/discovery"
	"github.com/ludo-technologies/larascan/internal/parser"
)

// ParsePHP parses one PHP source as if it lived at filename and returns its
// classes without hierarchy linking
func ParsePHP(t *testing.T, filename, source string) []*domain.ClassDescriptor {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	result, err := p.ParseFile(context.Background(), filename, []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return result.Classes
}

// ScanPHP parses a set of files (path -> source) and links them the way a
// real scan does. Classes are returned sorted by name.
func ScanPHP(t *testing.T, files map[string]string) []*domain.ClassDescriptor {
	t.Helper()
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var classes []*domain.ClassDescriptor
	for _, path := range paths {
		classes = append(classes, ParsePHP(t, path, files[path])...)
	}
	linked := discovery.NewIndex(classes).Link()
	sort.Slice(linked, func(i, j int) bool { return linked[i].Name < linked[j].Name })
	return linked
}

// Class parses source and returns the class named fqcn after linking
func Class(t *testing.T, fqcn, source string) *domain.ClassDescriptor {
	t.Helper()
	for _, c := range ScanPHP(t, map[string]string{"app/" + domain.ShortClassName(fqcn) + ".php": source}) {
		if c.Name == fqcn {
			return c
		}
	}
	t.Fatalf("class %s not found in source", fqcn)
	return nil
}

// WriteProject creates files (relative path -> content) under a temp dir and returns its root
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}
