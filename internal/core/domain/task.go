package domain

// TaskName identifies one of the well-known project tasks a backend can run.
type TaskName string

const (
	// TaskConfigure generates the build system (cmake configure step).
	TaskConfigure TaskName = "configure"
	// TaskBuild compiles the project or a single target.
	TaskBuild TaskName = "build"
	// TaskRun executes the selected runnable target.
	TaskRun TaskName = "run"
	// TaskDebug executes the selected target under a debugger.
	TaskDebug TaskName = "debug"
	// TaskTest runs the project's test driver.
	TaskTest TaskName = "test"
	// TaskClean removes build outputs.
	TaskClean TaskName = "clean"
	// TaskPackage produces a distributable artifact.
	TaskPackage TaskName = "package"
)

// FallbackInput carries the substitution values for a fallback command
// template, used when no preset drives the invocation.
type FallbackInput struct {
	// BuildDir is the absolute build directory for the invocation.
	BuildDir string
	// Target is the selected target name. Empty means "all targets" for
	// build-style tasks and "use the backend default" for run-style tasks.
	Target string
}

// TaskSpec is the command template for one task of one backend. It is an
// explicit decision table entry: the resolver evaluates the preset branch
// when presets exist and a selection is available, the fallback branch
// otherwise, and the artifact branch for run/debug style tasks.
type TaskSpec struct {
	// PresetKind names the preset list this task selects from, or empty if
	// the task has no preset form.
	PresetKind PresetKind

	// PresetArgs builds the argument vector for a preset invocation.
	PresetArgs func(presetName string) []string

	// FallbackArgs builds the argument vector when no preset applies.
	FallbackArgs func(in FallbackInput) []string

	// RunsArtifact marks tasks that execute a built target. The resolver
	// joins the session's target selection against the File API target list
	// to produce the executable path.
	RunsArtifact bool

	// InBuildDir runs the command from the build directory instead of the
	// project root.
	InBuildDir bool
}
