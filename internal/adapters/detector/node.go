package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/toil/internal/adapters/logger"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
)

// NodeID is the unique identifier for the detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Detector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(domain.DefaultRegistry(), log), nil
		},
	})
}
