package ports

import "go.trai.ch/toil/internal/core/domain"

// Detector finds the project root and its backend.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type Detector interface {
	// FindRoot walks upward from startDir and returns the shallowest
	// directory matching a registered backend, together with that backend.
	// Returns domain.ErrNoProject if no directory up to the filesystem root
	// matches.
	FindRoot(startDir string) (string, domain.Backend, error)

	// Backend re-applies detection at a known root without walking.
	Backend(root string) (domain.Backend, error)
}
