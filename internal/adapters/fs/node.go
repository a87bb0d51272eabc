package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rockbuild/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// TreeNodeID is the unique identifier for the source tree Graft node.
	TreeNodeID graft.ID = "adapter.fs.tree"
	// CanonicalizerNodeID is the unique identifier for the path canonicalizer Graft node.
	CanonicalizerNodeID graft.ID = "adapter.fs.canonicalizer"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})

	graft.Register(graft.Node[ports.SourceTree]{
		ID:        TreeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceTree, error) {
			return NewTree(), nil
		},
	})

	graft.Register(graft.Node[ports.Canonicalizer]{
		ID:        CanonicalizerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Canonicalizer, error) {
			return NewCanonicalizer(), nil
		},
	})
}
