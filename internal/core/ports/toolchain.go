// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// Toolchain compiles a unit into a static archive.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Compile compiles every source of the unit and archives the objects.
	// Failures wrap domain.ErrToolchain and carry the compiler output.
	Compile(ctx context.Context, unit *domain.CompileUnit) (*domain.Artifact, error)
}
