package domain

import (
	"slices"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// ComponentID identifies a native library taking part in the build.
type ComponentID string

const (
	// ComponentRocksDB is the primary library. It is always built or overridden.
	ComponentRocksDB ComponentID = "rocksdb"
	// ComponentSnappy is the snappy compression library.
	ComponentSnappy ComponentID = "snappy"
	// ComponentLZ4 is the lz4 compression library.
	ComponentLZ4 ComponentID = "lz4"
	// ComponentZstd is the zstd compression library.
	ComponentZstd ComponentID = "zstd"
	// ComponentZlib is the zlib compression library.
	ComponentZlib ComponentID = "zlib"
	// ComponentBzip2 is the bzip2 compression library.
	ComponentBzip2 ComponentID = "bzip2"
)

// Component is the static description of one library.
type Component struct {
	ID ComponentID
	// EnvPrefix names the override variables, e.g. SNAPPY_LIB_DIR and SNAPPY_STATIC.
	EnvPrefix string
	// Dir is the vendored source directory, relative to the project root.
	Dir string
	// Archive is the name of the static archive produced by a bundled build.
	Archive string
	// Optional components are gated by a feature flag of the same name.
	Optional bool
}

// LibDirVar returns the environment variable that selects an external library directory.
func (c Component) LibDirVar() string {
	return c.EnvPrefix + "_LIB_DIR"
}

// StaticVar returns the environment variable that forces static linking of an external library.
func (c Component) StaticVar() string {
	return c.EnvPrefix + "_STATIC"
}

// ExternalLibName returns the library name linked when the component is supplied externally.
func (c Component) ExternalLibName() string {
	return strings.ToLower(c.EnvPrefix)
}

var components = []Component{
	{ID: ComponentRocksDB, EnvPrefix: "ROCKSDB", Dir: "rocksdb", Archive: "rocksdb"},
	{ID: ComponentSnappy, EnvPrefix: "SNAPPY", Dir: "snappy", Archive: "snappy", Optional: true},
	{ID: ComponentLZ4, EnvPrefix: "LZ4", Dir: "lz4", Archive: "lz4", Optional: true},
	{ID: ComponentZstd, EnvPrefix: "ZSTD", Dir: "zstd", Archive: "zstd", Optional: true},
	{ID: ComponentZlib, EnvPrefix: "ZLIB", Dir: "zlib", Archive: "z", Optional: true},
	{ID: ComponentBzip2, EnvPrefix: "BZIP2", Dir: "bzip2", Archive: "bz2", Optional: true},
}

// Components returns every component in build order: the primary library first,
// then each compression library.
func Components() []Component {
	return slices.Clone(components)
}

// LookupComponent returns the component with the given identifier.
func LookupComponent(id ComponentID) (Component, error) {
	for _, c := range components {
		if c.ID == id {
			return c, nil
		}
	}
	return Component{}, zerr.With(ErrUnknownComponent, "component", string(id))
}

// Features records which optional components are enabled.
type Features map[ComponentID]bool

// DefaultFeatures enables every optional component.
func DefaultFeatures() Features {
	f := make(Features, len(components))
	for _, c := range components {
		if c.Optional {
			f[c.ID] = true
		}
	}
	return f
}

// ParseFeatures builds a feature set from a list of names. Only the named components are enabled.
func ParseFeatures(names []string) (Features, error) {
	f := make(Features, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		c, err := LookupComponent(ComponentID(name))
		if err != nil || !c.Optional {
			return nil, zerr.With(ErrUnknownFeature, "feature", name)
		}
		f[c.ID] = true
	}
	return f, nil
}

// Enabled reports whether the component takes part in the build.
// Non-optional components are always enabled.
func (f Features) Enabled(c Component) bool {
	if !c.Optional {
		return true
	}
	return f[c.ID]
}

// Names returns the enabled feature names in sorted order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for id, on := range f {
		if on {
			names = append(names, string(id))
		}
	}
	sort.Strings(names)
	return names
}
