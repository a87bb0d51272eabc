package domain

// Define is a preprocessor definition, with or without a value.
type Define struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value"`
}

// DefineValue returns NAME=VALUE.
func DefineValue(name, value string) Define {
	return Define{Name: name, Value: value, HasValue: true}
}

// DefineFlag returns a bare NAME definition.
func DefineFlag(name string) Define {
	return Define{Name: name}
}

// String renders the define as NAME or NAME=VALUE.
func (d Define) String() string {
	if !d.HasValue {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// Tools names the programs used to compile and archive.
type Tools struct {
	CC  string `yaml:"cc" json:"cc,omitempty"`
	CXX string `yaml:"cxx" json:"cxx,omitempty"`
	AR  string `yaml:"ar" json:"ar,omitempty"`
}

// CompileUnit is everything the toolchain needs to produce one static archive.
type CompileUnit struct {
	Component ComponentID
	// Archive is the library name; the toolchain derives the file name from it.
	Archive string
	Target  Facts
	Tools   Tools

	Sources  []string
	Includes []string
	Defines  []Define
	// Flags are passed as given. FlagsIfSupported are dropped when the compiler rejects them.
	Flags            []string
	FlagsIfSupported []string
	// OptLevel is the optimization level; empty selects the toolchain default.
	OptLevel string
	CXX      bool
	// ExtraWarnings enables -Wextra on POSIX-style toolchains.
	ExtraWarnings bool

	// ExportIncludes are reported to downstream consumers of the artifact.
	ExportIncludes []string

	OutDir string
	// Jobs bounds concurrent compiler invocations; zero selects the toolchain default.
	Jobs int
}

// Artifact is a static archive produced by a bundled build.
type Artifact struct {
	Component ComponentID `json:"component"`
	// Name is the library name used in link directives.
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Dir     string   `json:"dir"`
	Objects []string `json:"objects,omitempty"`
}

// Directive returns the static link directive for the artifact.
func (a Artifact) Directive() LinkDirective {
	return LinkDirective{Name: a.Name, SearchPath: a.Dir, Mode: LinkStatic}
}
