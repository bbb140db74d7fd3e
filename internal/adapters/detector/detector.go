// Package detector finds project roots by walking upward from a starting
// directory and probing each level against the registered backend markers.
package detector

import (
	"os"
	"path/filepath"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Detector implements ports.Detector against the local filesystem.
// All probes are read-only and safe to repeat; nothing is cached.
type Detector struct {
	registry *domain.Registry
	logger   ports.Logger
}

// New creates a Detector over the given registry.
func New(registry *domain.Registry, logger ports.Logger) *Detector {
	return &Detector{registry: registry, logger: logger}
}

// FindRoot walks from startDir upward through parent directories. At each
// level every registered backend's markers are probed in registry order;
// the first match at the shallowest directory wins. Reaching the filesystem
// root without a match is the expected "no project here" outcome, reported
// as domain.ErrNoProject.
func (d *Detector) FindRoot(startDir string) (string, domain.Backend, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", domain.Backend{}, zerr.Wrap(err, "failed to resolve start directory")
	}

	for {
		if backend, ok := d.match(dir); ok {
			return dir, backend, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", domain.Backend{}, zerr.With(domain.ErrNoProject, "start_dir", startDir)
}

// Backend re-applies detection at a known root without walking upward.
func (d *Detector) Backend(root string) (domain.Backend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Backend{}, zerr.Wrap(err, "failed to resolve root directory")
	}

	if backend, ok := d.match(abs); ok {
		return backend, nil
	}
	return domain.Backend{}, zerr.With(domain.ErrNoProject, "root", root)
}

func (d *Detector) match(dir string) (domain.Backend, bool) {
	for _, backend := range d.registry.Backends() {
		for _, marker := range backend.Markers {
			info, err := os.Stat(filepath.Join(dir, marker))
			if err == nil && !info.IsDir() {
				return backend, true
			}
		}
	}
	return domain.Backend{}, false
}
