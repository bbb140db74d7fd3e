// Package config loads the optional host configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileName is the host configuration file read at the project root.
const FileName = "toil.yaml"

// Config holds the host-tunable knobs of the engine. Everything has a
// working default; the file is optional.
type Config struct {
	// OutputMode selects the sink variant: "auto", "stream" or "problems".
	OutputMode string `yaml:"outputMode"`

	// BuildDir is the fallback build directory name, relative to the
	// project root, used when no preset provides one.
	BuildDir string `yaml:"buildDir"`

	// Debugger is the argv prefix the debug task prepends to the resolved
	// executable.
	Debugger []string `yaml:"debugger"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputMode: "auto",
		BuildDir:   "build",
		Debugger:   []string{"gdb", "--args"},
	}
}

// Loader reads toil.yaml from a project root.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration at root, applying defaults for anything the
// file leaves unset. A missing file yields the defaults.
func (l *Loader) Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // path rooted at detected project root
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrConfigReadFailed, "path", path), "cause", err.Error())
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "path", path), "cause", err.Error())
	}

	if cfg.OutputMode == "" {
		cfg.OutputMode = "auto"
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = "build"
	}
	if len(cfg.Debugger) == 0 {
		cfg.Debugger = Default().Debugger
	}

	return cfg, nil
}
