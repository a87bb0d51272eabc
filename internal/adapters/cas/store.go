// Package cas implements the build record store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore using a file-per-component strategy.
type Store struct{}

// NewStore creates a new RecordStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build record for a component.
func (s *Store) Get(outDir string, component domain.ComponentID) (*domain.BuildRecord, error) {
	filename := s.getFilename(outDir, component)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "component", string(component))
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "component", string(component))
	}

	return &record, nil
}

// Put stores the build record.
func (s *Store) Put(outDir string, record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(outDir, record.Component)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Clear removes the records of the previous run.
func (s *Store) Clear(outDir string) error {
	dir := domain.StorePath(outDir)
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreClearFailed.Error()), "path", dir)
	}
	return nil
}

// List returns the stored records in component build order. Components without a record are skipped.
func (s *Store) List(outDir string) ([]domain.BuildRecord, error) {
	var records []domain.BuildRecord
	for _, c := range domain.Components() {
		record, err := s.Get(outDir, c.ID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (s *Store) getFilename(outDir string, component domain.ComponentID) string {
	hash := sha256.Sum256([]byte(component))
	return filepath.Join(domain.StorePath(outDir), hex.EncodeToString(hash[:])+".json")
}
