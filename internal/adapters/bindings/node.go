package bindings

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rockbuild/internal/core/ports"
)

// NodeID is the unique identifier for the binding generator Graft node.
const NodeID graft.ID = "adapter.bindings"

func init() {
	graft.Register(graft.Node[ports.BindingGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BindingGenerator, error) {
			return NewGenerator(), nil
		},
	})
}
