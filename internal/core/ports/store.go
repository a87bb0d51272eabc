package ports

import "go.trai.ch/rockbuild/internal/core/domain"

// RecordStore defines the interface for storing and retrieving build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the build record for a component.
	// Returns nil, nil if not found.
	Get(outDir string, component domain.ComponentID) (*domain.BuildRecord, error)

	// Put stores the build record.
	Put(outDir string, record domain.BuildRecord) error

	// Clear removes every stored record. Clearing an empty store is not an error.
	Clear(outDir string) error

	// List returns every stored record, ordered by component build order.
	List(outDir string) ([]domain.BuildRecord, error)
}
