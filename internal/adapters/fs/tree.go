package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceTree = (*Tree)(nil)

// Tree implements the SourceTree interface on the local file system.
type Tree struct{}

// NewTree creates a new Tree.
func NewTree() *Tree {
	return &Tree{}
}

// IsEmpty reports whether dir is missing or contains no entries.
func (t *Tree) IsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", dir)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dir)
	}
	return false, nil
}

// Glob expands each pattern relative to root. Matches are deduplicated and sorted.
// A pattern without matches contributes nothing.
func (t *Tree) Glob(patterns []string, root string) ([]string, error) {
	unique := make(map[string]bool)

	for _, pattern := range patterns {
		path := filepath.Join(root, pattern)

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrGlobFailed, err), "pattern", path)
		}
		for _, match := range matches {
			unique[match] = true
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)

	return result, nil
}
