// Package unity synthesizes the single translation unit the primary library is compiled from.
package unity

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Synthesizer builds and writes the unity translation unit.
type Synthesizer struct {
	canon ports.Canonicalizer
}

// NewSynthesizer creates a Synthesizer that canonicalizes entries with canon.
func NewSynthesizer(canon ports.Canonicalizer) *Synthesizer {
	return &Synthesizer{canon: canon}
}

// Synthesize canonicalizes every entry of set below srcDir, in order.
// Two entries naming the same file fail with domain.ErrDuplicateSource.
func (s *Synthesizer) Synthesize(srcDir string, set domain.ResolvedSourceSet) (*domain.UnityUnit, error) {
	paths := make([]domain.CanonicalPath, 0, len(set))
	for _, entry := range set {
		p, err := s.canon.Canonicalize(filepath.Join(srcDir, filepath.FromSlash(entry)))
		if err != nil {
			return nil, zerr.With(err, "entry", entry)
		}
		paths = append(paths, p)
	}
	return domain.NewUnityUnit(paths)
}

// Write renders the unit to <outDir>/unity.cc and returns the file path.
// The file is closed before Write returns.
func (s *Synthesizer) Write(unit *domain.UnityUnit, outDir string) (string, error) {
	path := filepath.Join(outDir, domain.UnityFileName)
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrOutDirCreateFailed, err), "path", outDir)
	}
	//nolint:gosec // path is the fixed unity file name under the output directory
	if err := os.WriteFile(path, unit.Render(), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrUnityWriteFailed.Error()), "path", path)
	}
	return path, nil
}
