package domain

import (
	"bytes"

	"go.trai.ch/zerr"
)

// CanonicalPath is an absolute, symlink free path. Two spellings of the same file
// canonicalize to the same value.
type CanonicalPath string

// String returns the path.
func (p CanonicalPath) String() string {
	return string(p)
}

// UnityUnit is a synthesized translation unit that includes every primary library source.
type UnityUnit struct {
	Entries []CanonicalPath
}

// NewUnityUnit builds a unit from canonical paths in order.
// The same file appearing twice is rejected.
func NewUnityUnit(paths []CanonicalPath) (*UnityUnit, error) {
	seen := make(map[CanonicalPath]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			return nil, zerr.With(ErrDuplicateSource, "path", p.String())
		}
		seen[p] = struct{}{}
	}
	return &UnityUnit{Entries: append([]CanonicalPath(nil), paths...)}, nil
}

// Render returns the unit's file content: one #include directive per entry.
func (u *UnityUnit) Render() []byte {
	var buf bytes.Buffer
	for _, p := range u.Entries {
		buf.WriteString(`#include "`)
		buf.WriteString(p.String())
		buf.WriteString("\"\n")
	}
	return buf.Bytes()
}
