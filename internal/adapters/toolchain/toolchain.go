// Package toolchain compiles compile units into static archives by driving
// the platform C/C++ compiler and archiver.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain implements ports.Toolchain on top of an Executor.
type Toolchain struct {
	executor ports.Executor
	logger   ports.Logger
	jobs     int

	// flagSupport caches flag support per compiler: key is compiler + "\x00" + flag.
	flagSupport sync.Map
}

// New creates a Toolchain compiling up to runtime.NumCPU objects at once unless the unit sets Jobs.
func New(executor ports.Executor, logger ports.Logger) *Toolchain {
	return &Toolchain{
		executor: executor,
		logger:   logger,
		jobs:     runtime.NumCPU(),
	}
}

// Compile compiles every source of the unit and archives the objects.
func (t *Toolchain) Compile(ctx context.Context, unit *domain.CompileUnit) (*domain.Artifact, error) {
	if len(unit.Sources) == 0 {
		return nil, zerr.With(domain.ErrNoSources, "component", string(unit.Component))
	}

	fam := familyFor(unit.Target)
	compiler := t.compiler(fam, unit)

	objDir := filepath.Join(unit.OutDir, "obj", unit.Archive)
	if err := os.MkdirAll(objDir, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrOutDirCreateFailed, err), "path", objDir)
	}

	supported := t.supportedFlags(ctx, fam, compiler, unit, objDir)
	common := fam.CommonArgs(unit, supported)

	objects := make([]string, len(unit.Sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.limit(unit))

	for i, src := range unit.Sources {
		obj := filepath.Join(objDir, objectName(src, fam.ObjectExt()))
		objects[i] = obj

		g.Go(func() error {
			args := append(append([]string(nil), common...), fam.ObjectArgs(src, obj, unit.CXX)...)
			return t.invoke(gctx, &domain.Command{Name: compiler, Args: args, Dir: unit.OutDir, Component: unit.Component}, "source", src)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive := filepath.Join(unit.OutDir, fam.ArchiveFileName(unit.Archive))
	if err := os.Remove(archive); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, zerr.With(errors.Join(domain.ErrToolchain, err), "archive", archive)
	}

	ar := unit.Tools.AR
	if ar == "" {
		ar = fam.DefaultAR()
	}
	cmd := &domain.Command{Name: ar, Args: fam.ArchiveArgs(archive, objects), Dir: unit.OutDir, Component: unit.Component}
	if err := t.invoke(ctx, cmd, "archive", archive); err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Component: unit.Component,
		Name:      unit.Archive,
		Path:      archive,
		Dir:       unit.OutDir,
		Objects:   objects,
	}, nil
}

func (t *Toolchain) compiler(fam family, unit *domain.CompileUnit) string {
	if unit.CXX {
		if unit.Tools.CXX != "" {
			return unit.Tools.CXX
		}
		return fam.DefaultCXX()
	}
	if unit.Tools.CC != "" {
		return unit.Tools.CC
	}
	return fam.DefaultCC()
}

// invoke runs one toolchain command. On failure the captured output is attached verbatim.
func (t *Toolchain) invoke(ctx context.Context, cmd *domain.Command, key, value string) error {
	var out bytes.Buffer
	if err := t.executor.Execute(ctx, cmd, &out, &out); err != nil {
		err = zerr.With(errors.Join(domain.ErrToolchain, err), key, value)
		err = zerr.With(err, "command", cmd.String())
		return zerr.With(err, "output", strings.TrimRight(out.String(), "\r\n"))
	}
	return nil
}

// supportedFlags returns the unit's optional flags the compiler accepts, in order.
func (t *Toolchain) supportedFlags(
	ctx context.Context,
	fam family,
	compiler string,
	unit *domain.CompileUnit,
	objDir string,
) []string {
	var supported []string
	for _, flag := range unit.FlagsIfSupported {
		if t.supports(ctx, fam, compiler, flag, unit.CXX, objDir) {
			supported = append(supported, flag)
			continue
		}
		t.logger.Warn(fmt.Sprintf("%s: compiler %s does not support %s, skipping", unit.Component, compiler, flag))
	}
	return supported
}

func (t *Toolchain) supports(ctx context.Context, fam family, compiler, flag string, cxx bool, dir string) bool {
	key := compiler + "\x00" + flag
	if v, ok := t.flagSupport.Load(key); ok {
		return v.(bool) //nolint:forcetypeassert // only bools are stored
	}

	ext := ".c"
	if cxx {
		ext = ".cpp"
	}
	src := filepath.Join(dir, "flag_check"+ext)
	obj := filepath.Join(dir, "flag_check"+fam.ObjectExt())
	ok := false
	if err := os.WriteFile(src, nil, domain.PrivateFilePerm); err == nil {
		var out bytes.Buffer
		cmd := &domain.Command{Name: compiler, Args: fam.CheckArgs(flag, src, obj), Dir: dir}
		ok = t.executor.Execute(ctx, cmd, &out, &out) == nil && !fam.Rejected(out.String())
		_ = os.Remove(obj)
	}

	actual, _ := t.flagSupport.LoadOrStore(key, ok)
	return actual.(bool) //nolint:forcetypeassert // only bools are stored
}

// objectName derives a unique object file name from the full source path,
// so sources sharing a base name in different directories never collide.
func objectName(src, ext string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return fmt.Sprintf("%016x-%s%s", xxhash.Sum64String(src), base, ext)
}

func (t *Toolchain) limit(unit *domain.CompileUnit) int {
	if unit.Jobs > 0 {
		return unit.Jobs
	}
	return t.jobs
}
