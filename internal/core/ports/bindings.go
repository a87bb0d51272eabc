package ports

import (
	"context"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// BindingGenerator turns a C header into an API surface description.
//
//go:generate mockgen -source=bindings.go -destination=mocks/mock_bindings.go -package=mocks
type BindingGenerator interface {
	// Generate reads header and writes the description to outPath.
	Generate(ctx context.Context, header, outPath string) (*domain.APISurface, error)
}
