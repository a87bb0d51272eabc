package domain

import (
	"slices"
	"strings"
)

// BuildVersionSource is the manifest entry replaced by a locally provided build version source.
// It is compiled on its own, never as part of the unity unit.
const BuildVersionSource = "util/build_version.cc"

// Manifest is the ordered list of primary library sources, relative to the vendored root.
type Manifest []string

// ParseManifest reads a newline separated manifest. Entries are trimmed and blank lines dropped.
func ParseManifest(text string) Manifest {
	lines := strings.Split(text, "\n")
	m := make(Manifest, 0, len(lines))
	for _, line := range lines {
		entry := strings.TrimSpace(line)
		if entry == "" {
			continue
		}
		m = append(m, entry)
	}
	return m
}

// ResolvedSourceSet is the platform specific, ordered source list for one build.
type ResolvedSourceSet []string

// ResolveForPlatform applies the platform substitutions to the manifest.
// Manifest order is kept; replacement entries are appended in table order.
func ResolveForPlatform(m Manifest, facts Facts) ResolvedSourceSet {
	drop := PlatformExcludedSources(facts.Platform)
	add := PlatformReplacementSources(facts.Platform)

	set := make(ResolvedSourceSet, 0, len(m)+len(add))
	for _, entry := range m {
		if entry == BuildVersionSource || slices.Contains(drop, entry) {
			continue
		}
		set = append(set, entry)
	}
	return append(set, add...)
}
