package ports

import "go.trai.ch/toil/internal/core/domain"

// PresetLoader parses build-system metadata rooted at a project directory.
// All methods re-read from disk; nothing is cached between calls.
//
//go:generate mockgen -source=preset_loader.go -destination=mocks/mock_preset_loader.go -package=mocks
type PresetLoader interface {
	// Load parses the presets file at root. A nil set (with nil error) means
	// no presets file exists, which signals the resolver to use fallback
	// commands. Malformed JSON also degrades to a nil set; only structural
	// errors such as circular inheritance are reported as errors.
	Load(root string) (*domain.PresetSet, error)

	// Targets reads the File API reply under buildDir and returns the
	// configured targets. A nil slice (with nil error) means no reply exists
	// yet, i.e. the project has not been configured.
	Targets(root, buildDir string) ([]domain.Target, error)

	// SeedQuery writes the File API query files under buildDir so the next
	// configure produces a reply.
	SeedQuery(buildDir string) error
}
