// Package bundle turns vendored component sources into compile units.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Input is the per-run context every builder reads.
type Input struct {
	// Root is the absolute directory holding the vendored source trees.
	Root     string
	OutDir   string
	Facts    domain.Facts
	Features domain.Features
	Tools    domain.Tools
	Env      domain.Env
	// Jobs is copied into every compile unit.
	Jobs int
}

// Builder produces the compile unit of each bundled component.
type Builder struct {
	canon ports.Canonicalizer
	tree  ports.SourceTree
}

// NewBuilder creates a Builder.
func NewBuilder(canon ports.Canonicalizer, tree ports.SourceTree) *Builder {
	return &Builder{canon: canon, tree: tree}
}

type compressionFunc func(b *Builder, in Input) (*domain.CompileUnit, error)

var compressionBuilders = map[domain.ComponentID]compressionFunc{
	domain.ComponentSnappy: (*Builder).snappy,
	domain.ComponentLZ4:    (*Builder).lz4,
	domain.ComponentZstd:   (*Builder).zstd,
	domain.ComponentZlib:   (*Builder).zlib,
	domain.ComponentBzip2:  (*Builder).bzip2,
}

// Compression returns the compile unit of an optional compression library.
func (b *Builder) Compression(c domain.Component, in Input) (*domain.CompileUnit, error) {
	build, ok := compressionBuilders[c.ID]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownComponent, "component", string(c.ID))
	}
	unit, err := build(b, in)
	if err != nil {
		return nil, err
	}
	if len(unit.Sources) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrNoSources, "component", string(c.ID)), "dir", filepath.Join(in.Root, c.Dir))
	}
	return unit, nil
}

// newUnit fills the fields shared by every component.
func newUnit(c domain.ComponentID, in Input) *domain.CompileUnit {
	comp, _ := domain.LookupComponent(c)
	return &domain.CompileUnit{
		Component:     c,
		Archive:       comp.Archive,
		Target:        in.Facts,
		Tools:         in.Tools,
		ExtraWarnings: true,
		OutDir:        in.OutDir,
		Jobs:          in.Jobs,
	}
}

// canonical resolves a path relative to the vendored root.
func (b *Builder) canonical(in Input, rel string) (string, error) {
	p, err := b.canon.Canonicalize(filepath.Join(in.Root, filepath.FromSlash(rel)))
	if err != nil {
		return "", zerr.With(err, "include", rel)
	}
	return p.String(), nil
}

// canonicalAll resolves each path relative to the vendored root.
func (b *Builder) canonicalAll(in Input, rel ...string) ([]string, error) {
	out := make([]string, len(rel))
	for i, r := range rel {
		p, err := b.canonical(in, r)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// files anchors fixed relative source paths at the vendored root.
func files(in Input, rel ...string) []string {
	out := make([]string, len(rel))
	for i, r := range rel {
		out[i] = filepath.Join(in.Root, filepath.FromSlash(r))
	}
	return out
}

// cxxStandardFlags selects the C++ dialect flag for the toolchain family.
func cxxStandardFlags(facts domain.Facts) []string {
	if facts.MSVC {
		return []string{"-EHsc"}
	}
	return []string{"-std=c++11"}
}

// BuildVersion returns the build version source compiled next to the unity unit.
// A build_version.cc in the project root wins; otherwise one is rendered into the output directory.
func (b *Builder) BuildVersion(in Input) (string, error) {
	local := filepath.Join(in.Root, domain.BuildVersionFileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", local)
	}

	sha, date := "unknown", "unknown"
	if v, ok := in.Env.Lookup("ROCKSDB_GIT_SHA"); ok && v != "" {
		sha = v
	}
	if v, ok := in.Env.Lookup("ROCKSDB_GIT_DATE"); ok && v != "" {
		date = v
	}

	if err := os.MkdirAll(in.OutDir, domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrOutDirCreateFailed, err), "path", in.OutDir)
	}
	path := filepath.Join(in.OutDir, domain.BuildVersionFileName)
	//nolint:gosec // path is the fixed build version file name under the output directory
	if err := os.WriteFile(path, RenderBuildVersion(sha, date), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildVersionWriteFailed.Error()), "path", path)
	}
	return path, nil
}

// RenderBuildVersion returns a build version source carrying the given git sha and date.
func RenderBuildVersion(sha, date string) []byte {
	return fmt.Appendf(nil,
		"const char* rocksdb_build_git_sha = \"rocksdb_build_git_sha:%s\";\n"+
			"const char* rocksdb_build_git_date = \"rocksdb_build_git_date:%s\";\n"+
			"const char* rocksdb_build_compile_date = __DATE__;\n",
		sha, date)
}
