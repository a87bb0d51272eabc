// Package config provides the configuration loader for rockbuild.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads rockbuild.yaml from root. A missing file yields an empty config.
func (l *Loader) Load(root string) (*domain.Config, error) {
	path := filepath.Join(root, domain.ConfigFileName)

	var rf Rockfile
	found, err := readAndUnmarshalYAML(path, &rf)
	if err != nil {
		return nil, err
	}
	if !found {
		return &domain.Config{}, nil
	}

	if rf.Version != "" && rf.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("%s: unsupported version %q, reading it as version 1", domain.ConfigFileName, rf.Version))
	}

	if rf.Jobs < 0 {
		return nil, zerr.With(domain.ErrInvalidJobs, "jobs", rf.Jobs)
	}

	for name := range rf.Features {
		c, err := domain.LookupComponent(domain.ComponentID(name))
		if err != nil || !c.Optional {
			return nil, zerr.With(zerr.With(domain.ErrUnknownFeature, "feature", name), "file", path)
		}
	}

	return &domain.Config{
		Target:    rf.Target,
		OutDir:    resolvePath(root, rf.OutDir),
		Features:  rf.Features,
		Jobs:      rf.Jobs,
		Tools:     domain.Tools{CC: rf.Toolchain.CC, CXX: rf.Toolchain.CXX, AR: rf.Toolchain.AR},
		Manifest:  resolvePath(root, rf.Sources.Manifest),
		Header:    resolvePath(root, rf.Bindings.Header),
		Prefix:    rf.Directives.Prefix,
		SourceDir: resolvePath(root, rf.Sources.Root),
	}, nil
}

// resolvePath anchors relative configured paths at the project root.
func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// readAndUnmarshalYAML decodes path strictly. It reports false when the file does not exist.
func readAndUnmarshalYAML(path string, v any) (bool, error) {
	//nolint:gosec // path is the fixed config file name under the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	return true, nil
}
