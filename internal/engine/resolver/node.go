package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/toil/internal/adapters/cmake"
	"go.trai.ch/toil/internal/adapters/logger"
	"go.trai.ch/toil/internal/adapters/session"
	"go.trai.ch/toil/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cmake.NodeID, session.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			presets, err := graft.Dep[ports.PresetLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.SessionStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(presets, store, log), nil
		},
	})
}
