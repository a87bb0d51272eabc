package fs

import (
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Canonicalizer = (*Canonicalizer)(nil)

const (
	verbatimPrefix    = `\\?\`
	verbatimUNCPrefix = `\\?\UNC\`
)

// Canonicalizer resolves paths to absolute, symlink free form.
type Canonicalizer struct{}

// NewCanonicalizer creates a new Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

// Canonicalize returns the canonical form of path. The path must exist.
func (c *Canonicalizer) Canonicalize(path string) (domain.CanonicalPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrPathResolution, err), "path", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrPathResolution, err), "path", path)
	}

	return domain.CanonicalPath(StripVerbatim(filepath.Clean(resolved))), nil
}

// StripVerbatim removes the extended-length prefix some Windows APIs return,
// which compilers do not accept in #include directives.
func StripVerbatim(path string) string {
	if rest, ok := strings.CutPrefix(path, verbatimUNCPrefix); ok {
		return `\\` + rest
	}
	if rest, ok := strings.CutPrefix(path, verbatimPrefix); ok {
		return rest
	}
	return path
}
