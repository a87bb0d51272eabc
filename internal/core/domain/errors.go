package domain

import "go.trai.ch/zerr"

var (
	// ErrVendoredDirEmpty is returned when a vendored source directory is missing or empty.
	// It is a setup error: the nested source checkout has not been fetched.
	ErrVendoredDirEmpty = zerr.New("vendored source directory is empty")

	// ErrPathResolution is returned when a path that must exist cannot be canonicalized.
	ErrPathResolution = zerr.New("failed to canonicalize path")

	// ErrToolchain is returned when the compiler or archiver invocation fails.
	ErrToolchain = zerr.New("toolchain invocation failed")

	// ErrBindingGeneration is returned when the API surface cannot be generated from the header.
	ErrBindingGeneration = zerr.New("failed to generate bindings")

	// ErrDuplicateSource is returned when two source entries resolve to the same file.
	ErrDuplicateSource = zerr.New("duplicate source file")

	// ErrLinkageFlushed is returned when the link directive accumulator is used after it was flushed.
	ErrLinkageFlushed = zerr.New("linkage already flushed")

	// ErrUnknownComponent is returned when a component identifier is not part of the build.
	ErrUnknownComponent = zerr.New("unknown component")

	// ErrUnknownFeature is returned when a feature name does not match an optional component.
	ErrUnknownFeature = zerr.New("unknown feature")

	// ErrEmptyManifest is returned when the source manifest lists no files.
	ErrEmptyManifest = zerr.New("source manifest is empty")

	// ErrManifestReadFailed is returned when the source manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read source manifest")

	// ErrNoSources is returned when a bundled component resolves to no source files.
	ErrNoSources = zerr.New("component has no source files")

	// ErrGlobFailed is returned when a source glob pattern is malformed.
	ErrGlobFailed = zerr.New("failed to expand source pattern")

	// ErrUnityWriteFailed is returned when the unity translation unit cannot be written.
	ErrUnityWriteFailed = zerr.New("failed to write unity translation unit")

	// ErrBuildVersionWriteFailed is returned when the generated build version source cannot be written.
	ErrBuildVersionWriteFailed = zerr.New("failed to write build version source")

	// ErrBuildFailed is returned when the build orchestration fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidJobs is returned when the configured parallelism is negative.
	ErrInvalidJobs = zerr.New("jobs must not be negative")

	// ErrOutDirCreateFailed is returned when the output directory cannot be created.
	ErrOutDirCreateFailed = zerr.New("failed to create output directory")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrStoreClearFailed is returned when the records of a previous run cannot be removed.
	ErrStoreClearFailed = zerr.New("failed to clear build records")

	// ErrMetadataWriteFailed is returned when the build metadata cannot be emitted.
	ErrMetadataWriteFailed = zerr.New("failed to write build metadata")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")
)

// SubmoduleHint is the operator instruction attached to ErrVendoredDirEmpty.
const SubmoduleHint = "did you forget to pull the submodules? Try `git submodule update --init --recursive`"
