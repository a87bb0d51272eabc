package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints compile units and archives.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeUnitHash computes a single hash representing the unit's definition
// and the content of its sources. Include directories are walked so header edits count.
// The output directory is never walked: it holds the previous run's objects and records.
func (h *Hasher) ComputeUnitHash(unit *domain.CompileUnit) (string, error) {
	hasher := xxhash.New()

	h.hashUnitDefinition(unit, hasher)

	for _, src := range unit.Sources {
		if err := h.hashFile(src, hasher); err != nil {
			return "", err
		}
	}
	_, _ = hasher.Write([]byte{0})

	for _, dir := range unit.Includes {
		if err := h.hashPath(dir, hasher, outputExclusion(dir, unit.OutDir)...); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// ComputeOutputHash computes the hash of a produced archive.
func (h *Hasher) ComputeOutputHash(path string) (string, error) {
	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}

// hashUnitDefinition hashes everything that changes the compiler invocation.
func (h *Hasher) hashUnitDefinition(unit *domain.CompileUnit, hasher *xxhash.Digest) {
	field := func(s string) {
		_, _ = hasher.WriteString(s)
		_, _ = hasher.Write([]byte{0})
	}
	section := func(items []string) {
		for _, s := range items {
			field(s)
		}
		_, _ = hasher.Write([]byte{0})
	}

	field(string(unit.Component))
	field(unit.Archive)
	field(unit.Target.Triple.String())
	field(unit.Tools.CC)
	field(unit.Tools.CXX)
	field(unit.Tools.AR)
	field(unit.OptLevel)
	field(fmt.Sprintf("%t/%t", unit.CXX, unit.ExtraWarnings))

	defines := make([]string, 0, len(unit.Defines))
	for _, d := range unit.Defines {
		defines = append(defines, d.String())
	}
	section(defines)
	section(unit.Flags)
	section(unit.FlagsIfSupported)
	section(unit.Includes)
}

// outputExclusion returns the directory to leave out when walking include so the output
// directory is not fingerprinted. When out lies below include, the whole top-level entry
// leading to it is excluded, which covers build trees like target/ that hold out.
func outputExclusion(include, out string) []string {
	if out == "" {
		return nil
	}
	rel, err := filepath.Rel(include, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	if rel == "." {
		return []string{filepath.Clean(include)}
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return []string{filepath.Join(include, first)}
}

// hashPath hashes a file, or every file below a directory. Missing include directories are skipped.
func (h *Hasher) hashPath(path string, mainHasher io.Writer, excludeDirs ...string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, mainHasher)
	}
	for filePath := range h.walker.WalkFiles(path, nil, excludeDirs...) {
		if err := h.hashFile(filePath, mainHasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
