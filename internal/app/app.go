// Package app implements the application layer for toil.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/toil/internal/adapters/config"
	"go.trai.ch/toil/internal/adapters/detector"
	"go.trai.ch/toil/internal/adapters/sink"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/toil/internal/engine/resolver"
	"go.trai.ch/toil/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic: it detects the project, applies
// selections, resolves the command for a task and drives the runner.
type App struct {
	detector ports.Detector
	presets  ports.PresetLoader
	session  ports.SessionStore
	config   *config.Loader
	resolver *resolver.Resolver
	runner   *runner.Runner
	logger   ports.Logger

	stdout io.Writer
}

// New creates a new App instance.
func New(
	det ports.Detector,
	presets ports.PresetLoader,
	session ports.SessionStore,
	cfg *config.Loader,
	res *resolver.Resolver,
	run *runner.Runner,
	log ports.Logger,
) *App {
	return &App{
		detector: det,
		presets:  presets,
		session:  session,
		config:   cfg,
		resolver: res,
		runner:   run,
		logger:   log,
		stdout:   os.Stdout,
	}
}

// WithOutput redirects job output. This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// RunOptions configuration for the RunTask method.
type RunOptions struct {
	// Preset, BuildPreset, TestPreset and Target pre-select session values
	// before resolution, mirroring the CLI flags. Empty means keep the
	// session's current selection.
	Preset      string
	BuildPreset string
	TestPreset  string
	Target      string

	// BuildTarget pre-selects the build target. A non-nil pointer to an
	// empty string means "build all targets", which is different from not
	// touching the selection at all.
	BuildTarget *string

	// Prompt forces re-selection even when the session holds a value.
	Prompt bool

	// OutputMode overrides the configured sink variant: "stream", "problems"
	// or empty for the configured/auto behavior.
	OutputMode string

	// ExtraArgs are appended verbatim to the resolved command line.
	ExtraArgs []string

	// Env is the environment overlay for the child process.
	Env map[string]string
}

// RunTask detects the project containing startDir, resolves the command for
// task and runs it to completion, streaming output through the selected
// sink. It returns domain.ErrTaskFailed on a non-zero exit and
// domain.ErrTaskCancelled when the job was cancelled.
func (a *App) RunTask(ctx context.Context, startDir string, task domain.TaskName, opts RunOptions) error {
	root, backend, err := a.detector.FindRoot(startDir)
	if err != nil {
		return err
	}

	cfg, err := a.config.Load(root)
	if err != nil {
		return err
	}

	a.applySelections(root, opts)

	cmd, err := a.resolver.Resolve(root, backend, task, resolver.Options{
		Prompt:       opts.Prompt,
		ExtraArgs:    opts.ExtraArgs,
		Env:          opts.Env,
		BuildDirName: cfg.BuildDir,
		Debugger:     cfg.Debugger,
	})
	if err != nil {
		return err
	}

	// The query must exist before cmake configures, or no reply (and with
	// it no target discovery for run/debug) is produced.
	if task == domain.TaskConfigure {
		if err := a.presets.SeedQuery(cmd.BuildDir); err != nil {
			a.logger.Warn(fmt.Sprintf("could not seed file api query: %v", err))
		}
	}

	out, problems := a.newSink(cfg, opts)

	job, err := a.runner.Run(ctx, task, cmd, out)
	if err != nil {
		return err
	}
	<-job.Done()

	if problems != nil {
		a.printProblems(problems)
	}

	switch job.Status() {
	case domain.JobCancelled:
		return zerr.With(domain.ErrTaskCancelled, "task", string(task))
	case domain.JobSucceeded:
		return nil
	default:
		return zerr.With(domain.ErrTaskFailed, "task", string(task))
	}
}

// Cancel cancels the running task, if any. It reports whether a task was
// actually cancelled.
func (a *App) Cancel() bool {
	return a.runner.Cancel()
}

// IsTaskRunning reports whether a task currently owns a live child process.
func (a *App) IsTaskRunning() bool {
	return a.runner.Status().Active()
}

// DetectedBackend returns the project root containing startDir and the name
// of its backend.
func (a *App) DetectedBackend(startDir string) (string, string, error) {
	root, backend, err := a.detector.FindRoot(startDir)
	if err != nil {
		return "", "", err
	}
	return root, backend.Name, nil
}

// AvailableTasks returns the sorted task names the detected backend supports.
func (a *App) AvailableTasks(startDir string) ([]string, error) {
	_, backend, err := a.detector.FindRoot(startDir)
	if err != nil {
		return nil, err
	}
	return backend.TaskNames(), nil
}

// Presets returns the selectable presets of the given kind for the project
// containing startDir. A nil slice means the project has no presets file.
func (a *App) Presets(startDir string, kind domain.PresetKind) ([]domain.Preset, error) {
	root, _, err := a.detector.FindRoot(startDir)
	if err != nil {
		return nil, err
	}
	set, err := a.presets.Load(root)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, nil
	}
	return set.Selectable(kind), nil
}

// Targets returns the File API targets of the project containing startDir.
// A nil slice means the project has not been configured yet.
func (a *App) Targets(startDir string) ([]domain.Target, error) {
	root, _, err := a.detector.FindRoot(startDir)
	if err != nil {
		return nil, err
	}
	cfg, err := a.config.Load(root)
	if err != nil {
		return nil, err
	}
	set, err := a.presets.Load(root)
	if err != nil {
		return nil, err
	}
	buildDir := a.resolver.BuildDir(root, set, resolver.Options{BuildDirName: cfg.BuildDir})
	return a.presets.Targets(root, buildDir)
}

// Select stores a session selection for the project containing startDir.
// The key set is open; the resolver reads the well-known keys.
func (a *App) Select(startDir, key, value string) error {
	root, _, err := a.detector.FindRoot(startDir)
	if err != nil {
		return err
	}
	a.session.Set(root, key, value)
	return nil
}

// applySelections writes the flag-provided selections into the session so
// they behave exactly like interactive selections: they persist for
// subsequent tasks against the same root.
func (a *App) applySelections(root string, opts RunOptions) {
	if opts.Preset != "" {
		a.session.Set(root, domain.KeyPreset, opts.Preset)
	}
	if opts.BuildPreset != "" {
		a.session.Set(root, domain.KeyBuildPreset, opts.BuildPreset)
	}
	if opts.TestPreset != "" {
		a.session.Set(root, domain.KeyTestPreset, opts.TestPreset)
	}
	if opts.BuildTarget != nil {
		a.session.Set(root, domain.KeyBuildTarget, *opts.BuildTarget)
	}
	if opts.Target != "" {
		a.session.Set(root, domain.KeyTarget, opts.Target)
	}
}

// newSink builds the output sink for a job. The problems sink is returned
// separately so RunTask can render the collected entries after the job ends.
func (a *App) newSink(cfg *config.Config, opts RunOptions) (ports.Sink, *sink.Problems) {
	flag := opts.OutputMode
	if flag == "" || flag == "auto" {
		flag = cfg.OutputMode
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), flag)
	if mode == detector.ModeProblems {
		p := sink.NewProblems()
		return p, p
	}
	return sink.NewStream(a.stdout), nil
}

func (a *App) printProblems(p *sink.Problems) {
	for _, e := range p.Entries() {
		fmt.Fprintln(a.stdout, e.Text)
	}
}
