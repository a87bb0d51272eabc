package ports

import "go.trai.ch/rockbuild/internal/core/domain"

// Canonicalizer turns relative paths into stable absolute paths.
//
//go:generate mockgen -source=canonicalizer.go -destination=mocks/mock_canonicalizer.go -package=mocks
type Canonicalizer interface {
	// Canonicalize resolves path against the working directory, following symlinks.
	// It fails with domain.ErrPathResolution when the path does not exist.
	Canonicalize(path string) (domain.CanonicalPath, error)
}
