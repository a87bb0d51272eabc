package orchestrator

import (
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func manifestPath(req *domain.BuildRequest) string {
	if req.ManifestPath != "" {
		return req.ManifestPath
	}
	return filepath.Join(req.Root, domain.ManifestFileName)
}

// resolveSources reads the manifest at path and applies the platform substitutions.
func resolveSources(path string, facts domain.Facts) (domain.ResolvedSourceSet, error) {
	//nolint:gosec // path is the configured manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m := domain.ParseManifest(string(data))
	if len(m) == 0 {
		return nil, zerr.With(domain.ErrEmptyManifest, "path", path)
	}
	return domain.ResolveForPlatform(m, facts), nil
}
