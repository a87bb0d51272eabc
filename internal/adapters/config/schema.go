package config

// Rockfile represents the structure of the rockbuild.yaml configuration file.
type Rockfile struct {
	Version    string          `yaml:"version"`
	Target     string          `yaml:"target"`
	OutDir     string          `yaml:"outDir"`
	Jobs       int             `yaml:"jobs"`
	Features   map[string]bool `yaml:"features"`
	Toolchain  ToolchainDTO    `yaml:"toolchain"`
	Sources    SourcesDTO      `yaml:"sources"`
	Bindings   BindingsDTO     `yaml:"bindings"`
	Directives DirectivesDTO   `yaml:"directives"`
}

// ToolchainDTO names the compiler and archiver programs.
type ToolchainDTO struct {
	CC  string `yaml:"cc"`
	CXX string `yaml:"cxx"`
	AR  string `yaml:"ar"`
}

// SourcesDTO locates the vendored source trees and the primary library manifest.
type SourcesDTO struct {
	Root     string `yaml:"root"`
	Manifest string `yaml:"manifest"`
}

// BindingsDTO configures the API surface generator.
type BindingsDTO struct {
	Header string `yaml:"header"`
}

// DirectivesDTO configures the emitted line directives.
type DirectivesDTO struct {
	Prefix string `yaml:"prefix"`
}
