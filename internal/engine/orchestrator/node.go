package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rockbuild/internal/adapters/bindings"
	"go.trai.ch/rockbuild/internal/adapters/cas"
	"go.trai.ch/rockbuild/internal/adapters/emitter"
	"go.trai.ch/rockbuild/internal/adapters/fs"
	"go.trai.ch/rockbuild/internal/adapters/logger"
	"go.trai.ch/rockbuild/internal/adapters/telemetry"
	"go.trai.ch/rockbuild/internal/adapters/toolchain"
	"go.trai.ch/rockbuild/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			bindings.NodeID,
			fs.CanonicalizerNodeID,
			fs.TreeNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			emitter.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runNode,
	})
}

//nolint:cyclop // dependency collection
func runNode(ctx context.Context) (*Orchestrator, error) {
	tc, err := graft.Dep[ports.Toolchain](ctx)
	if err != nil {
		return nil, err
	}
	gen, err := graft.Dep[ports.BindingGenerator](ctx)
	if err != nil {
		return nil, err
	}
	canon, err := graft.Dep[ports.Canonicalizer](ctx)
	if err != nil {
		return nil, err
	}
	tree, err := graft.Dep[ports.SourceTree](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.RecordStore](ctx)
	if err != nil {
		return nil, err
	}
	emit, err := graft.Dep[ports.MetadataEmitter](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(tc, gen, canon, tree, hasher, store, emit, tracer, log), nil
}
