package emitter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rockbuild/internal/core/ports"
)

// NodeID is the unique identifier for the metadata emitter Graft node.
const NodeID graft.ID = "adapter.emitter"

func init() {
	graft.Register(graft.Node[ports.MetadataEmitter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataEmitter, error) {
			return New(nil), nil
		},
	})
}
