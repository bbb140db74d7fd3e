package domain

import "go.trai.ch/zerr"

var (
	// ErrNoProject is returned when no registered backend matches any
	// directory between the start directory and the filesystem root. This is
	// an expected outcome, not an exceptional one.
	ErrNoProject = zerr.New("no project found")

	// ErrUnknownBackend is returned when a backend name is not registered.
	ErrUnknownBackend = zerr.New("unknown backend")

	// ErrUnsupportedTask is returned when the backend defines no template for
	// the requested task.
	ErrUnsupportedTask = zerr.New("task not supported by backend")

	// ErrNeedsSelection is returned when resolution is ambiguous and the host
	// must prompt for a preset or target before re-invoking.
	ErrNeedsSelection = zerr.New("selection required")

	// ErrTargetNotFound is returned when the named run/debug target is absent
	// from the File API target list, or no target list exists yet.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrPresetCycle is returned when preset inheritance is circular.
	ErrPresetCycle = zerr.New("circular preset inheritance")

	// ErrPresetsReadFailed is returned when a presets file exists but cannot
	// be read.
	ErrPresetsReadFailed = zerr.New("failed to read presets file")

	// ErrSpawnFailed is returned when the underlying tool executable is
	// missing or cannot be started.
	ErrSpawnFailed = zerr.New("failed to spawn process")

	// ErrTaskFailed is returned when the child process exits non-zero.
	ErrTaskFailed = zerr.New("task failed")

	// ErrTaskCancelled is returned when the user cancelled the running task.
	ErrTaskCancelled = zerr.New("task cancelled")

	// ErrEmptyCommand is returned when a resolved command has no argv.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrConfigReadFailed is returned when the host configuration file cannot
	// be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the host configuration file
	// cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrQuerySeedFailed is returned when the File API query directory cannot
	// be written.
	ErrQuerySeedFailed = zerr.New("failed to seed file api query")
)
