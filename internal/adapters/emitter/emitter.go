// Package emitter surfaces build metadata as line directives and a JSON document.
package emitter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataEmitter = (*Emitter)(nil)

// Emitter writes line directives to a stream and build-metadata.json to the output directory.
type Emitter struct {
	out io.Writer
}

// New creates an Emitter writing directives to out. A nil writer selects os.Stdout.
func New(out io.Writer) *Emitter {
	if out == nil {
		out = os.Stdout
	}
	return &Emitter{out: out}
}

// Emit writes the directives in order: rerun triggers, include path, then link directives.
func (e *Emitter) Emit(meta *domain.BuildMetadata) error {
	if err := e.writeDirectives(meta); err != nil {
		return errors.Join(domain.ErrMetadataWriteFailed, err)
	}

	if meta.OutDir == "" {
		return nil
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrMetadataWriteFailed, err)
	}

	path := filepath.Join(meta.OutDir, domain.MetadataFileName)
	//nolint:gosec // generated artifact inside the output directory
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrMetadataWriteFailed, err), "path", path)
	}
	return nil
}

func (e *Emitter) writeDirectives(meta *domain.BuildMetadata) error {
	prefix := meta.DirectivePrefix
	if prefix == "" {
		prefix = domain.DefaultDirectivePrefix
	}

	w := bufio.NewWriter(e.out)
	line := func(format string, args ...any) {
		_, _ = w.WriteString(prefix)
		_, _ = fmt.Fprintf(w, format, args...)
		_ = w.WriteByte('\n')
	}

	for _, path := range meta.RerunIfChanged {
		line("rerun-if-changed=%s", path)
	}
	if len(meta.IncludePaths) > 0 {
		line("include=%s", meta.JoinedIncludePath())
	}
	for _, d := range meta.Links {
		if d.SearchPath != "" {
			line("rustc-link-search=native=%s", d.SearchPath)
		}
		line("rustc-link-lib=%s=%s", linkKind(d.Mode), d.Name)
	}

	return w.Flush()
}

func linkKind(m domain.LinkMode) string {
	if m == domain.LinkDynamic {
		return "dylib"
	}
	return "static"
}
