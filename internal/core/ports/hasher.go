package ports

import "go.trai.ch/rockbuild/internal/core/domain"

// Hasher defines the interface for fingerprinting build inputs and outputs.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the content hash of a single file.
	ComputeFileHash(path string) (uint64, error)

	// ComputeUnitHash fingerprints the compile unit definition and the content of its sources.
	ComputeUnitHash(unit *domain.CompileUnit) (string, error)

	// ComputeOutputHash fingerprints a produced artifact.
	ComputeOutputHash(path string) (string, error)
}
