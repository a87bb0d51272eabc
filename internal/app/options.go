package app

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options are the command line settings of one invocation.
// Zero values fall back to the environment, then rockbuild.yaml, then the defaults.
type Options struct {
	Root   string
	Target string
	OutDir string
	// Features replaces the feature set when non-nil.
	Features          []string
	NoDefaultFeatures bool
	Jobs              int
	Prefix            string
}

// request merges the options with the environment and the project configuration.
//
//nolint:cyclop // precedence resolution
func (a *App) request(opts Options) (*domain.BuildRequest, error) {
	if opts.Jobs < 0 {
		return nil, zerr.With(domain.ErrInvalidJobs, "jobs", opts.Jobs)
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPathResolution, err), "path", opts.Root)
	}

	cfg, err := a.configLoader.Load(root)
	if err != nil {
		return nil, err
	}

	env := domain.EnvFromList(a.environ())

	req := &domain.BuildRequest{
		Root:         root,
		Target:       domain.TargetTriple(first(opts.Target, env["TARGET"], cfg.Target, string(domain.HostTriple()))),
		OutDir:       first(opts.OutDir, env["OUT_DIR"], cfg.OutDir, filepath.Join(root, domain.DefaultOutDir)),
		Env:          env,
		Jobs:         opts.Jobs,
		Prefix:       first(opts.Prefix, cfg.Prefix, domain.DefaultDirectivePrefix),
		ManifestPath: cfg.Manifest,
		HeaderPath:   cfg.Header,
		Tools: domain.Tools{
			CC:  first(env["CC"], cfg.Tools.CC),
			CXX: first(env["CXX"], cfg.Tools.CXX),
			AR:  first(env["AR"], cfg.Tools.AR),
		},
	}
	if cfg.SourceDir != "" {
		req.Root = cfg.SourceDir
	}
	if req.Jobs == 0 {
		req.Jobs = cfg.Jobs
	}
	if req.OutDir, err = filepath.Abs(req.OutDir); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPathResolution, err), "path", req.OutDir)
	}

	if req.Features, err = features(opts, cfg); err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		req.ConfigPath = configPath
	}

	return req, nil
}

// features starts from the defaults, applies the configured toggles, and lets the flag replace the result.
func features(opts Options, cfg *domain.Config) (domain.Features, error) {
	if opts.Features != nil {
		return domain.ParseFeatures(opts.Features)
	}

	f := domain.DefaultFeatures()
	if opts.NoDefaultFeatures {
		f = domain.Features{}
	}
	for name, on := range cfg.Features {
		f[domain.ComponentID(name)] = on
	}
	return f, nil
}

// first returns the first non-empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
