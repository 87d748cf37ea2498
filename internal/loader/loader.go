// Package loader reads annotated SQL files from disk and parses them
// into query collections. It owns the file boundary: path walking, name
// derivation from filenames, and watch mode.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ulule/pyesql/pkg/core"
	"github.com/ulule/pyesql/pkg/parser"
)

// Collection is the parsed content of one SQL source file.
type Collection struct {
	// Name is the file's basename without the .sql extension.
	Name string

	// Path is the path the file was read from.
	Path string

	// Queries holds the parsed records, ordered by first definition.
	Queries *core.Queries
}

// maxConcurrentParses bounds the parse fan-out when loading directories.
const maxConcurrentParses = 8

// LoadFile reads and parses a single annotated SQL file.
func LoadFile(path string) (*Collection, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	queries, err := parser.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Collection{
		Name:    strings.TrimSuffix(filepath.Base(path), ".sql"),
		Path:    path,
		Queries: queries,
	}, nil
}

// LoadDir recursively loads every .sql file under dir. Hidden files are
// skipped. Files are parsed concurrently and returned in path order so
// repeated loads are deterministic.
func LoadDir(dir string) ([]*Collection, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	return loadAll(paths)
}

// LoadGlob loads every file matching the glob pattern.
func LoadGlob(pattern string) ([]*Collection, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return loadAll(paths)
}

func loadAll(paths []string) ([]*Collection, error) {
	sort.Strings(paths)

	collections := make([]*Collection, len(paths))
	var g errgroup.Group
	g.SetLimit(maxConcurrentParses)

	for i, path := range paths {
		g.Go(func() error {
			c, err := LoadFile(path)
			if err != nil {
				return err
			}
			collections[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return collections, nil
}

// MergeQueries folds collections into one query set, in collection
// order. Duplicate names across files follow the same last-write-wins
// rule as duplicates within a file.
func MergeQueries(collections []*Collection) *core.Queries {
	merged := core.NewQueries()
	for _, c := range collections {
		merged.Merge(c.Queries)
	}
	return merged
}
