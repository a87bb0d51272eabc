package domain

// Config is the optional project configuration read from rockbuild.yaml.
// Zero values mean "not configured".
type Config struct {
	Target    string
	OutDir    string
	Features  map[string]bool
	Jobs      int
	Tools     Tools
	Manifest  string
	Header    string
	Prefix    string
	SourceDir string
}

// BuildRequest is the fully resolved input of one orchestration run.
type BuildRequest struct {
	// Root is the project root holding the vendored source trees.
	Root   string
	OutDir string
	Target TargetTriple

	Features Features
	Env      Env
	Tools    Tools
	// Jobs bounds the number of concurrent compression library builds. Values below 2 build sequentially.
	Jobs int
	// Prefix is the line directive prefix, e.g. "cargo:".
	Prefix string

	ManifestPath string
	HeaderPath   string
	ConfigPath   string
}

// PlannedComponent is the resolution preview of one component.
type PlannedComponent struct {
	Component ComponentID    `json:"component"`
	Enabled   bool           `json:"enabled"`
	Kind      ResolutionKind `json:"kind"`
	Dir       string         `json:"dir,omitempty"`
	Mode      LinkMode       `json:"mode"`
}

// BuildPlan is what a run would do, computed without invoking the toolchain.
type BuildPlan struct {
	Facts      Facts              `json:"facts"`
	Components []PlannedComponent `json:"components"`
	Sources    ResolvedSourceSet  `json:"sources"`
	Links      []LinkDirective    `json:"links"`
}
