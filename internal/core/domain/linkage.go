package domain

import (
	"path/filepath"
	"strings"
)

// LinkMode is the way a library is linked.
type LinkMode int

const (
	// LinkStatic links a static archive.
	LinkStatic LinkMode = iota
	// LinkDynamic links a shared library.
	LinkDynamic
)

// String returns "static" or "dynamic".
func (m LinkMode) String() string {
	if m == LinkDynamic {
		return "dynamic"
	}
	return "static"
}

// MarshalText implements encoding.TextMarshaler.
func (m LinkMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LinkMode) UnmarshalText(text []byte) error {
	if string(text) == "dynamic" {
		*m = LinkDynamic
	} else {
		*m = LinkStatic
	}
	return nil
}

// LinkDirective tells the caller to link one library.
type LinkDirective struct {
	Name string `json:"name"`
	// SearchPath is the directory the library is found in. Empty for system libraries.
	SearchPath string   `json:"search_path,omitempty"`
	Mode       LinkMode `json:"mode"`
}

// BuildMetadata is everything surfaced to the caller's build description after a run.
type BuildMetadata struct {
	Target         TargetTriple    `json:"target"`
	OutDir         string          `json:"out_dir"`
	RerunIfChanged []string        `json:"rerun_if_changed"`
	IncludePaths   []string        `json:"include_paths,omitempty"`
	Links          []LinkDirective `json:"links"`
	Artifacts      []Artifact      `json:"artifacts,omitempty"`
	Bindings       string          `json:"bindings,omitempty"`

	// DirectivePrefix prefixes every emitted line directive. It is not part of the document.
	DirectivePrefix string `json:"-"`
}

// JoinedIncludePath joins the include paths with the host path-list separator.
func (m *BuildMetadata) JoinedIncludePath() string {
	return strings.Join(m.IncludePaths, string(filepath.ListSeparator))
}

// Linkage accumulates link directives and caller metadata during a run.
// It is owned by the orchestrating goroutine and flushed exactly once.
type Linkage struct {
	meta    BuildMetadata
	flushed bool
}

// NewLinkage creates an empty accumulator for the given target and output directory.
func NewLinkage(target TargetTriple, outDir string) *Linkage {
	return &Linkage{meta: BuildMetadata{Target: target, OutDir: outDir}}
}

// Record appends a link directive.
func (l *Linkage) Record(d LinkDirective) error {
	if l.flushed {
		return ErrLinkageFlushed
	}
	l.meta.Links = append(l.meta.Links, d)
	return nil
}

// Watch adds a path whose change should trigger a rebuild.
func (l *Linkage) Watch(path string) error {
	if l.flushed {
		return ErrLinkageFlushed
	}
	l.meta.RerunIfChanged = append(l.meta.RerunIfChanged, path)
	return nil
}

// Include adds an include directory exported to downstream consumers.
func (l *Linkage) Include(path string) error {
	if l.flushed {
		return ErrLinkageFlushed
	}
	l.meta.IncludePaths = append(l.meta.IncludePaths, path)
	return nil
}

// AddArtifact records a produced static archive.
func (l *Linkage) AddArtifact(a Artifact) error {
	if l.flushed {
		return ErrLinkageFlushed
	}
	l.meta.Artifacts = append(l.meta.Artifacts, a)
	return nil
}

// SetBindings records where the API surface description was written.
func (l *Linkage) SetBindings(path string) error {
	if l.flushed {
		return ErrLinkageFlushed
	}
	l.meta.Bindings = path
	return nil
}

// Flush returns the accumulated metadata. Any further use fails with ErrLinkageFlushed.
func (l *Linkage) Flush() (*BuildMetadata, error) {
	if l.flushed {
		return nil, ErrLinkageFlushed
	}
	l.flushed = true
	meta := l.meta
	return &meta, nil
}
