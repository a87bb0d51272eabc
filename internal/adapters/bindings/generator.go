// Package bindings generates a machine readable description of the C API surface.
package bindings

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BindingGenerator = (*Generator)(nil)

// Generator implements ports.BindingGenerator by parsing the header directly.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate parses header and writes the API surface as JSON to outPath.
func (g *Generator) Generate(ctx context.Context, header, outPath string) (*domain.APISurface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(header) //nolint:gosec // header path comes from the project layout
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrBindingGeneration, err), "header", header)
	}

	surface := Parse(filepath.ToSlash(header), string(src))
	if len(surface.Functions) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrBindingGeneration, "header declares no exported functions"), "header", header)
	}

	data, err := json.MarshalIndent(surface, "", "  ")
	if err != nil {
		return nil, errors.Join(domain.ErrBindingGeneration, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrBindingGeneration, err), "path", outPath)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), domain.FilePerm); err != nil { //nolint:gosec // generated artifact
		return nil, zerr.With(errors.Join(domain.ErrBindingGeneration, err), "path", outPath)
	}

	return surface, nil
}
