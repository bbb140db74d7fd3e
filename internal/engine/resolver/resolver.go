// Package resolver turns a (root, backend, task) triple plus the session's
// selections into a concrete command line. Resolution is a decision table:
// the preset branch applies when selectable presets exist and one is chosen,
// the artifact branch covers run/debug style tasks, and the fallback branch
// covers everything else.
package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBuildDirName is the build directory used when neither a preset nor
// the host configuration names one.
const DefaultBuildDirName = "build"

// DefaultDebugger wraps a target executable for a debug run.
var DefaultDebugger = []string{"gdb", "--args"}

// Options carries the per-invocation knobs the host passes through.
type Options struct {
	// Prompt forces a fresh selection even when the session already holds
	// one. The resolver answers with ErrNeedsSelection listing the choices.
	Prompt bool

	// ExtraArgs are appended verbatim to the resolved argument vector.
	ExtraArgs []string

	// Env is the environment overlay for the child process.
	Env map[string]string

	// BuildDirName overrides the fallback build directory name, relative to
	// the project root. Empty means DefaultBuildDirName.
	BuildDirName string

	// Debugger is the command prefix prepended to the artifact path for a
	// debug run. Empty means DefaultDebugger.
	Debugger []string
}

func (o Options) buildDirName() string {
	if o.BuildDirName != "" {
		return o.BuildDirName
	}
	return DefaultBuildDirName
}

func (o Options) debugger() []string {
	if len(o.Debugger) > 0 {
		return o.Debugger
	}
	return DefaultDebugger
}

// Resolver computes executable command lines from backend task templates,
// preset metadata and session selections. It is stateless; every call
// re-reads presets and targets from disk through the loader.
type Resolver struct {
	presets ports.PresetLoader
	session ports.SessionStore
	logger  ports.Logger
}

// New creates a resolver.
func New(presets ports.PresetLoader, session ports.SessionStore, logger ports.Logger) *Resolver {
	return &Resolver{presets: presets, session: session, logger: logger}
}

// Resolve produces the command line for task at root. It returns
// ErrUnsupportedTask when the backend has no template for the task,
// ErrNeedsSelection when a preset or target choice is required first, and
// ErrTargetNotFound when a run/debug target cannot be located.
func (r *Resolver) Resolve(root string, backend domain.Backend, task domain.TaskName, opts Options) (*domain.ResolvedCommand, error) {
	spec, ok := backend.Tasks[task]
	if !ok {
		return nil, zerr.With(zerr.With(zerr.With(domain.ErrUnsupportedTask,
			"backend", backend.Name),
			"task", string(task)),
			"supported", strings.Join(backend.TaskNames(), ", "))
	}

	set, err := r.presets.Load(root)
	if err != nil {
		return nil, err
	}

	if spec.RunsArtifact {
		return r.resolveArtifact(root, task, set, opts)
	}

	if spec.PresetKind != "" && set != nil {
		names := set.SelectableNames(spec.PresetKind)
		if len(names) > 0 {
			name, chosen := r.chosenPreset(root, spec.PresetKind, set, opts)
			if !chosen {
				return nil, needsSelection(domain.SessionKeyFor(spec.PresetKind), names)
			}
			return r.presetCommand(root, spec, set, name, opts), nil
		}
		// Selectable presets of this kind are absent, for example a presets
		// file declaring configure presets only. The fallback command runs
		// against the selected configure preset's binary directory.
	}

	return r.fallbackCommand(root, task, spec, set, opts), nil
}

// chosenPreset returns the session's preset selection for kind, when one
// exists and still names a selectable preset.
func (r *Resolver) chosenPreset(root string, kind domain.PresetKind, set *domain.PresetSet, opts Options) (string, bool) {
	if opts.Prompt {
		return "", false
	}
	name, ok := r.session.Get(root, domain.SessionKeyFor(kind))
	if !ok || name == "" {
		return "", false
	}
	if _, found := set.Lookup(kind, name); !found {
		r.logger.Warn(fmt.Sprintf("session %s preset %q no longer selectable, re-selection required", kind, name))
		return "", false
	}
	return name, true
}

func (r *Resolver) presetCommand(root string, spec domain.TaskSpec, set *domain.PresetSet, name string, opts Options) *domain.ResolvedCommand {
	cmd := &domain.ResolvedCommand{
		Args:     append(spec.PresetArgs(name), opts.ExtraArgs...),
		Dir:      root,
		Env:      opts.Env,
		BuildDir: r.presetBuildDir(root, spec.PresetKind, set, name, opts),
	}
	if spec.InBuildDir {
		cmd.Dir = cmd.BuildDir
	}
	return cmd
}

// presetBuildDir resolves the binary directory a preset invocation operates
// on. Build and test presets inherit it from their configure preset, which
// may itself be hidden.
func (r *Resolver) presetBuildDir(root string, kind domain.PresetKind, set *domain.PresetSet, name string, opts Options) string {
	p, ok := set.Find(kind, name)
	if !ok {
		return filepath.Join(root, opts.buildDirName())
	}
	if kind != domain.PresetConfigure {
		if p.ConfigurePreset == "" {
			return filepath.Join(root, opts.buildDirName())
		}
		name = p.ConfigurePreset
		p, ok = set.Find(domain.PresetConfigure, name)
		if !ok {
			return filepath.Join(root, opts.buildDirName())
		}
	}
	if p.BinaryDir != "" {
		return p.BinaryDir
	}
	// CMake's conventional default when a configure preset declares no
	// binaryDir of its own.
	return filepath.Join(root, "build", name)
}

func (r *Resolver) fallbackCommand(root string, task domain.TaskName, spec domain.TaskSpec, set *domain.PresetSet, opts Options) *domain.ResolvedCommand {
	buildDir := r.fallbackBuildDir(root, set, opts)
	in := domain.FallbackInput{BuildDir: buildDir}
	switch task {
	case domain.TaskBuild:
		// Empty or unset means build all targets.
		in.Target, _ = r.session.Get(root, domain.KeyBuildTarget)
	case domain.TaskRun, domain.TaskDebug:
		in.Target, _ = r.session.Get(root, domain.KeyTarget)
	}

	cmd := &domain.ResolvedCommand{
		Args:     append(spec.FallbackArgs(in), opts.ExtraArgs...),
		Dir:      root,
		Env:      opts.Env,
		BuildDir: buildDir,
	}
	if spec.InBuildDir {
		cmd.Dir = buildDir
	}
	return cmd
}

// BuildDir returns the build directory the project currently operates on:
// the selected configure preset's binary directory when one is selected, the
// configured fallback directory otherwise.
func (r *Resolver) BuildDir(root string, set *domain.PresetSet, opts Options) string {
	return r.fallbackBuildDir(root, set, opts)
}

// fallbackBuildDir picks the build directory for a non-preset invocation.
// When a configure preset is selected its binary directory wins, so that a
// presets file carrying only configure presets still builds in the right
// place. Otherwise the directory comes from the host configuration.
func (r *Resolver) fallbackBuildDir(root string, set *domain.PresetSet, opts Options) string {
	if set != nil {
		if name, ok := r.session.Get(root, domain.KeyPreset); ok && name != "" {
			if p, found := set.Find(domain.PresetConfigure, name); found {
				if p.BinaryDir != "" {
					return p.BinaryDir
				}
				return filepath.Join(root, "build", name)
			}
		}
	}
	return filepath.Join(root, opts.buildDirName())
}

// resolveArtifact handles run and debug: the command is the built artifact
// itself, located through the File API target list.
func (r *Resolver) resolveArtifact(root string, task domain.TaskName, set *domain.PresetSet, opts Options) (*domain.ResolvedCommand, error) {
	buildDir := r.fallbackBuildDir(root, set, opts)

	targets, err := r.presets.Targets(root, buildDir)
	if err != nil {
		return nil, err
	}
	if targets == nil {
		return nil, zerr.With(zerr.With(domain.ErrTargetNotFound,
			"build_dir", buildDir),
			"reason", "project not configured, run configure first")
	}

	runnable := make([]string, 0, len(targets))
	for _, t := range targets {
		if t.Runnable() {
			runnable = append(runnable, t.Name)
		}
	}
	if len(runnable) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrTargetNotFound,
			"build_dir", buildDir),
			"reason", "no runnable targets")
	}

	name, ok := "", false
	if !opts.Prompt {
		name, ok = r.session.Get(root, domain.KeyTarget)
	}
	if !ok || name == "" {
		return nil, needsSelection(domain.KeyTarget, runnable)
	}

	var target domain.Target
	found := false
	for _, t := range targets {
		if t.Name == name {
			target, found = t, true
			break
		}
	}
	if !found || !target.Runnable() {
		return nil, zerr.With(zerr.With(domain.ErrTargetNotFound,
			"target", name),
			"available", strings.Join(runnable, ", "))
	}

	artifact := target.Artifact
	if !filepath.IsAbs(artifact) {
		artifact = filepath.Join(buildDir, artifact)
	}

	args := []string{artifact}
	if task == domain.TaskDebug {
		args = append(opts.debugger(), artifact)
	}
	return &domain.ResolvedCommand{
		Args:     append(args, opts.ExtraArgs...),
		Dir:      root,
		Env:      opts.Env,
		BuildDir: buildDir,
	}, nil
}

func needsSelection(field string, options []string) error {
	return zerr.With(zerr.With(domain.ErrNeedsSelection,
		"field", field),
		"options", strings.Join(options, ", "))
}
