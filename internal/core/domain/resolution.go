package domain

import "strings"

// ResolutionKind says how a component is provided to the link.
type ResolutionKind int

const (
	// ResolutionBundled compiles the vendored sources into a static archive.
	ResolutionBundled ResolutionKind = iota
	// ResolutionExternal links against a library supplied through the environment.
	ResolutionExternal
)

// String returns the lowercase name of the resolution kind.
func (k ResolutionKind) String() string {
	if k == ResolutionExternal {
		return "external"
	}
	return "bundled"
}

// MarshalText implements encoding.TextMarshaler.
func (k ResolutionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ResolutionKind) UnmarshalText(text []byte) error {
	if string(text) == "external" {
		*k = ResolutionExternal
	} else {
		*k = ResolutionBundled
	}
	return nil
}

// Env is a snapshot of process environment variables.
type Env map[string]string

// EnvFromList parses "KEY=VALUE" entries as returned by os.Environ.
func EnvFromList(list []string) Env {
	env := make(Env, len(list))
	for _, entry := range list {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Lookup returns the value of key and whether it is set.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Resolution is the outcome of deciding how one component is provided.
type Resolution struct {
	Component Component
	Kind      ResolutionKind
	// Dir is the external library directory. It is empty for bundled builds.
	Dir string
	// Mode is the link mode of an external library. Bundled archives always link statically.
	Mode LinkMode
}

// Resolve decides between an external override and a bundled build.
// Only the component's own variables are consulted.
func Resolve(c Component, env Env) Resolution {
	dir, ok := env.Lookup(c.LibDirVar())
	if !ok {
		return Resolution{Component: c, Kind: ResolutionBundled, Mode: LinkStatic}
	}

	mode := LinkDynamic
	if _, static := env.Lookup(c.StaticVar()); static {
		mode = LinkStatic
	}
	return Resolution{Component: c, Kind: ResolutionExternal, Dir: dir, Mode: mode}
}

// Directive returns the link directive of an external resolution.
// The second result is false for bundled resolutions, whose directive comes from the artifact.
func (r Resolution) Directive() (LinkDirective, bool) {
	if r.Kind != ResolutionExternal {
		return LinkDirective{}, false
	}
	return LinkDirective{
		Name:       r.Component.ExternalLibName(),
		SearchPath: r.Dir,
		Mode:       r.Mode,
	}, true
}
