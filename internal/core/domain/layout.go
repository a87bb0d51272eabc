package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory inside the output directory.
	StateDirName = ".rockbuild"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "rockbuild.yaml"

	// ManifestFileName is the name of the primary library source manifest.
	ManifestFileName = "rocksdb_lib_sources.txt"

	// UnityFileName is the name of the synthesized translation unit.
	UnityFileName = "unity.cc"

	// BuildVersionFileName is the name of the locally provided build version source.
	BuildVersionFileName = "build_version.cc"

	// BindingsFileName is the name of the generated API surface description.
	BindingsFileName = "bindings.json"

	// MetadataFileName is the name of the emitted build metadata document.
	MetadataFileName = "build-metadata.json"

	// HeaderPath is the C header the API surface is generated from, relative to the project root.
	HeaderPath = "rocksdb/include/rocksdb/c.h"

	// DefaultOutDir is the output directory used when none is configured.
	DefaultOutDir = "target/rockbuild"

	// DefaultDirectivePrefix prefixes every emitted metadata line.
	DefaultDirectivePrefix = "cargo:"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// StorePath returns the build record store directory under the given output directory.
func StorePath(outDir string) string {
	return filepath.Join(outDir, StateDirName, StoreDirName)
}
