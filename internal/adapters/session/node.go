package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/toil/internal/core/ports"
)

// NodeID is the unique identifier for the session store Graft node.
const NodeID graft.ID = "adapter.session"

func init() {
	graft.Register(graft.Node[ports.SessionStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SessionStore, error) {
			return NewStore(), nil
		},
	})
}
