package ports

// SourceTree defines the interface for inspecting vendored source directories.
//
//go:generate mockgen -source=source_tree.go -destination=mocks/mock_source_tree.go -package=mocks
type SourceTree interface {
	// IsEmpty reports whether dir is missing or has no entries.
	IsEmpty(dir string) (bool, error)

	// Glob expands the patterns relative to root into a sorted, duplicate free file list.
	Glob(patterns []string, root string) ([]string, error)
}
