package ports

import "go.trai.ch/rockbuild/internal/core/domain"

// MetadataEmitter surfaces the build metadata to the caller's build description.
//
//go:generate mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type MetadataEmitter interface {
	// Emit writes the metadata. It is called once per successful run.
	Emit(meta *domain.BuildMetadata) error
}
