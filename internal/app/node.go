package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/toil/internal/adapters/cmake"
	"go.trai.ch/toil/internal/adapters/config"
	"go.trai.ch/toil/internal/adapters/detector"
	"go.trai.ch/toil/internal/adapters/logger"
	"go.trai.ch/toil/internal/adapters/session"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/toil/internal/engine/resolver"
	"go.trai.ch/toil/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			detector.NodeID,
			cmake.NodeID,
			session.NodeID,
			config.NodeID,
			resolver.NodeID,
			runner.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	det, err := graft.Dep[ports.Detector](ctx)
	if err != nil {
		return nil, err
	}

	presets, err := graft.Dep[ports.PresetLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SessionStore](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(det, presets, store, cfg, res, run, log), nil
}
