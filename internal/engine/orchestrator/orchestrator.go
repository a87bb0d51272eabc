// Package orchestrator drives one native build: platform classification, vendored tree checks,
// API surface generation, per-component resolution and compilation, and metadata emission.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/rockbuild/internal/engine/bundle"
	"go.trai.ch/rockbuild/internal/engine/unity"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// componentAttribute tags the span covering one component build.
const componentAttribute = "component"

// Orchestrator runs builds against the given ports.
type Orchestrator struct {
	toolchain ports.Toolchain
	bindings  ports.BindingGenerator
	canon     ports.Canonicalizer
	tree      ports.SourceTree
	hasher    ports.Hasher
	store     ports.RecordStore
	emitter   ports.MetadataEmitter
	tracer    ports.Tracer
	logger    ports.Logger

	builder *bundle.Builder
	unity   *unity.Synthesizer
	now     func() time.Time
}

// New creates a new Orchestrator with the given dependencies.
func New(
	toolchain ports.Toolchain,
	bindings ports.BindingGenerator,
	canon ports.Canonicalizer,
	tree ports.SourceTree,
	hasher ports.Hasher,
	store ports.RecordStore,
	emitter ports.MetadataEmitter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		toolchain: toolchain,
		bindings:  bindings,
		canon:     canon,
		tree:      tree,
		hasher:    hasher,
		store:     store,
		emitter:   emitter,
		tracer:    tracer,
		logger:    logger,
		builder:   bundle.NewBuilder(canon, tree),
		unity:     unity.NewSynthesizer(canon),
		now:       time.Now,
	}
}

// outcome is how one enabled component was provided.
type outcome struct {
	res      domain.Resolution
	unit     *domain.CompileUnit
	artifact *domain.Artifact
}

// Run performs one build and emits its metadata.
//
//nolint:cyclop // orchestration function
func (o *Orchestrator) Run(ctx context.Context, req *domain.BuildRequest) (*domain.BuildMetadata, error) {
	facts := domain.Classify(req.Target)

	ctx, span := o.tracer.Start(ctx, "build")
	defer span.End()
	span.SetAttribute("target", req.Target.String())
	span.SetAttribute("platform", facts.Platform.String())

	comps := enabledComponents(req.Features)
	o.tracer.EmitPlan(ctx, componentNames(comps))

	if err := o.checkVendored(req.Root); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := os.MkdirAll(req.OutDir, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrOutDirCreateFailed, err), "path", req.OutDir)
	}

	req, err := o.canonicalRequest(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	linkage := domain.NewLinkage(req.Target, req.OutDir)
	if err := watch(linkage, req); err != nil {
		return nil, err
	}

	if err := o.generateBindings(ctx, req, linkage); err != nil {
		span.RecordError(err)
		return nil, err
	}

	for _, d := range domain.SystemLibraries(facts.Platform) {
		if err := linkage.Record(d); err != nil {
			return nil, err
		}
	}

	in := bundle.Input{
		Root:     req.Root,
		OutDir:   req.OutDir,
		Facts:    facts,
		Features: req.Features,
		Tools:    req.Tools,
		Env:      req.Env,
		Jobs:     req.Jobs,
	}

	primary, err := o.provide(ctx, comps[0], req, in, o.rocksdbBuild(manifestPath(req)))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	outcomes := []outcome{primary}

	rest, err := o.provideCompression(ctx, comps[1:], req, in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	outcomes = append(outcomes, rest...)

	for _, out := range outcomes {
		if err := record(linkage, out); err != nil {
			return nil, err
		}
	}

	o.saveRecords(req, outcomes)

	meta, err := linkage.Flush()
	if err != nil {
		return nil, err
	}
	meta.DirectivePrefix = req.Prefix

	if err := o.emitter.Emit(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// canonicalRequest returns a copy of req whose root and output directory are canonical,
// so every path derived from them shares one prefix.
func (o *Orchestrator) canonicalRequest(req *domain.BuildRequest) (*domain.BuildRequest, error) {
	root, err := o.canon.Canonicalize(req.Root)
	if err != nil {
		return nil, err
	}
	outDir, err := o.canon.Canonicalize(req.OutDir)
	if err != nil {
		return nil, err
	}

	canonical := *req
	canonical.Root = root.String()
	canonical.OutDir = outDir.String()
	return &canonical, nil
}

// watch registers every path whose change should trigger a rebuild.
func watch(linkage *domain.Linkage, req *domain.BuildRequest) error {
	var paths []string
	if req.ConfigPath != "" {
		paths = append(paths, req.ConfigPath)
	}
	for _, c := range domain.Components() {
		paths = append(paths, filepath.Join(req.Root, c.Dir))
	}
	paths = append(paths, manifestPath(req))

	for _, p := range paths {
		if err := linkage.Watch(p); err != nil {
			return err
		}
	}
	return nil
}

// checkVendored fails when any vendored source directory is missing or empty.
// Every directory is checked, whether or not its component is enabled.
func (o *Orchestrator) checkVendored(root string) error {
	for _, c := range domain.Components() {
		dir := filepath.Join(root, c.Dir)
		empty, err := o.tree.IsEmpty(dir)
		if err != nil {
			return err
		}
		if empty {
			err := zerr.With(domain.ErrVendoredDirEmpty, "dir", dir)
			return zerr.With(err, "hint", domain.SubmoduleHint)
		}
	}
	return nil
}

func (o *Orchestrator) generateBindings(ctx context.Context, req *domain.BuildRequest, linkage *domain.Linkage) error {
	header := req.HeaderPath
	if header == "" {
		header = filepath.Join(req.Root, filepath.FromSlash(domain.HeaderPath))
	}
	out := filepath.Join(req.OutDir, domain.BindingsFileName)

	surface, err := o.bindings.Generate(ctx, header, out)
	if err != nil {
		return err
	}
	o.logger.Info(fmt.Sprintf("generated bindings for %d functions", len(surface.Functions)))
	return linkage.SetBindings(out)
}

type buildFunc func(ctx context.Context, in bundle.Input) (*domain.CompileUnit, *domain.Artifact, error)

// provide resolves one component and builds it when it is bundled.
func (o *Orchestrator) provide(
	ctx context.Context,
	c domain.Component,
	req *domain.BuildRequest,
	in bundle.Input,
	build buildFunc,
) (outcome, error) {
	res := domain.Resolve(c, req.Env)
	if res.Kind == domain.ResolutionExternal {
		if res.Dir == "" {
			o.logger.Warn(fmt.Sprintf("%s is set but empty, linking %s without a search path", c.LibDirVar(), c.ExternalLibName()))
		} else {
			o.logger.Info(fmt.Sprintf("using external %s from %s", c.ID, res.Dir))
		}
		return outcome{res: res}, nil
	}

	ctx, span := o.tracer.Start(ctx, "build "+string(c.ID))
	defer span.End()
	span.SetAttribute(componentAttribute, string(c.ID))

	o.logger.Info(fmt.Sprintf("building %s", c.ID))
	unit, artifact, err := build(ctx, in)
	if err != nil {
		span.RecordError(err)
		return outcome{}, zerr.With(err, "component", string(c.ID))
	}
	return outcome{res: res, unit: unit, artifact: artifact}, nil
}

// provideCompression provides the enabled compression libraries.
// With more than one job they build concurrently; outcomes keep component order.
func (o *Orchestrator) provideCompression(
	ctx context.Context,
	comps []domain.Component,
	req *domain.BuildRequest,
	in bundle.Input,
) ([]outcome, error) {
	outcomes := make([]outcome, len(comps))

	if req.Jobs < 2 {
		for i, c := range comps {
			out, err := o.provide(ctx, c, req, in, o.compressionBuild(c))
			if err != nil {
				return nil, err
			}
			outcomes[i] = out
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Jobs)
	for i, c := range comps {
		g.Go(func() error {
			out, err := o.provide(gctx, c, req, in, o.compressionBuild(c))
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (o *Orchestrator) compressionBuild(c domain.Component) buildFunc {
	return func(ctx context.Context, in bundle.Input) (*domain.CompileUnit, *domain.Artifact, error) {
		unit, err := o.builder.Compression(c, in)
		if err != nil {
			return nil, nil, err
		}
		artifact, err := o.toolchain.Compile(ctx, unit)
		if err != nil {
			return nil, nil, err
		}
		return unit, artifact, nil
	}
}

// rocksdbBuild compiles the primary library from the platform resolved manifest.
func (o *Orchestrator) rocksdbBuild(manifest string) buildFunc {
	return func(ctx context.Context, in bundle.Input) (*domain.CompileUnit, *domain.Artifact, error) {
		set, err := resolveSources(manifest, in.Facts)
		if err != nil {
			return nil, nil, err
		}

		unit, err := o.unity.Synthesize(filepath.Join(in.Root, "rocksdb"), set)
		if err != nil {
			return nil, nil, err
		}
		unityPath, err := o.unity.Write(unit, in.OutDir)
		if err != nil {
			return nil, nil, err
		}

		buildVersion, err := o.builder.BuildVersion(in)
		if err != nil {
			return nil, nil, err
		}

		cu, err := o.builder.RocksDB(in, unityPath, buildVersion)
		if err != nil {
			return nil, nil, err
		}

		artifact, err := o.toolchain.Compile(ctx, cu)
		if err != nil {
			return nil, nil, err
		}
		return cu, artifact, nil
	}
}

// record adds the link directive, include paths and artifact of one outcome.
func record(linkage *domain.Linkage, out outcome) error {
	if d, ok := out.res.Directive(); ok {
		return linkage.Record(d)
	}

	for _, inc := range out.unit.ExportIncludes {
		if err := linkage.Include(inc); err != nil {
			return err
		}
	}
	if err := linkage.Record(out.artifact.Directive()); err != nil {
		return err
	}
	return linkage.AddArtifact(*out.artifact)
}

// saveRecords replaces the stored records with one record per outcome. Records are
// informational, so failures are logged and the run still succeeds.
func (o *Orchestrator) saveRecords(req *domain.BuildRequest, outcomes []outcome) {
	if err := o.store.Clear(req.OutDir); err != nil {
		o.logger.Warn(fmt.Sprintf("failed to clear previous build records: %v", err))
	}

	now := o.now()
	for _, out := range outcomes {
		rec := domain.BuildRecord{
			Component: out.res.Component.ID,
			Kind:      out.res.Kind,
			Mode:      out.res.Mode,
			LibDir:    out.res.Dir,
			Target:    req.Target.String(),
			Timestamp: now,
		}

		if out.artifact != nil {
			rec.Artifact = out.artifact.Path
			if h, err := o.hasher.ComputeUnitHash(out.unit); err == nil {
				rec.InputHash = h
			} else {
				o.logger.Warn(fmt.Sprintf("%s: failed to fingerprint inputs: %v", rec.Component, err))
			}
			if h, err := o.hasher.ComputeOutputHash(out.artifact.Path); err == nil {
				rec.OutputHash = h
			} else {
				o.logger.Warn(fmt.Sprintf("%s: failed to fingerprint archive: %v", rec.Component, err))
			}
		}

		if err := o.store.Put(req.OutDir, rec); err != nil {
			o.logger.Warn(fmt.Sprintf("%s: failed to save build record: %v", rec.Component, err))
		}
	}
}

// enabledComponents returns the primary library followed by the enabled compression libraries.
func enabledComponents(features domain.Features) []domain.Component {
	var comps []domain.Component
	for _, c := range domain.Components() {
		if features.Enabled(c) {
			comps = append(comps, c)
		}
	}
	return comps
}

func componentNames(comps []domain.Component) []string {
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = string(c.ID)
	}
	return names
}
