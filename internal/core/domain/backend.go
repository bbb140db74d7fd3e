package domain

import (
	"slices"
	"strings"
)

// Backend is a project-type definition: the marker files that identify a
// project root plus the command templates for the tasks the backend supports.
// Backends form a closed set, registered once at process start and immutable
// thereafter.
type Backend struct {
	// Name uniquely identifies the backend ("cmake", "python").
	Name string

	// Markers are the files whose presence in a directory marks that
	// directory as a project root, in priority order: a configuration-format
	// marker is listed before a bare source-file heuristic.
	Markers []string

	// Tasks maps task names to their command templates. Not every backend
	// implements every task.
	Tasks map[TaskName]TaskSpec
}

// Supports reports whether the backend defines a template for the task.
func (b Backend) Supports(task TaskName) bool {
	_, ok := b.Tasks[task]
	return ok
}

// TaskNames returns the backend's supported task names, sorted.
func (b Backend) TaskNames() []string {
	names := make([]string, 0, len(b.Tasks))
	for name := range b.Tasks {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// Registry holds the registered backends in detection priority order.
// Detection order is deterministic: when markers for several backends
// coexist at the same directory level, the first registered backend wins.
type Registry struct {
	backends []Backend
}

// NewRegistry creates a registry with the given backends in priority order.
func NewRegistry(backends ...Backend) *Registry {
	return &Registry{backends: backends}
}

// Backends returns the registered backends in priority order.
func (r *Registry) Backends() []Backend {
	return r.backends
}

// Lookup returns the backend with the given name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	for _, b := range r.backends {
		if b.Name == name {
			return b, true
		}
	}
	return Backend{}, false
}

// DefaultRegistry builds the built-in backend set. The cmake backend is
// registered before python, so a directory carrying both a CMakeLists.txt
// and a pyproject.toml detects as cmake.
func DefaultRegistry() *Registry {
	return NewRegistry(cmakeBackend(), pythonBackend())
}

func cmakeBackend() Backend {
	return Backend{
		Name:    "cmake",
		Markers: []string{"CMakePresets.json", "CMakeLists.txt"},
		Tasks: map[TaskName]TaskSpec{
			TaskConfigure: {
				PresetKind: PresetConfigure,
				PresetArgs: func(name string) []string {
					return []string{"cmake", "--preset", name}
				},
				FallbackArgs: func(in FallbackInput) []string {
					return []string{"cmake", "-S", ".", "-B", in.BuildDir}
				},
			},
			TaskBuild: {
				PresetKind: PresetBuild,
				PresetArgs: func(name string) []string {
					return []string{"cmake", "--build", "--preset", name}
				},
				FallbackArgs: func(in FallbackInput) []string {
					args := []string{"cmake", "--build", in.BuildDir}
					if in.Target != "" {
						args = append(args, "--target", in.Target)
					}
					return args
				},
			},
			TaskTest: {
				PresetKind: PresetTest,
				PresetArgs: func(name string) []string {
					return []string{"ctest", "--preset", name}
				},
				FallbackArgs: func(in FallbackInput) []string {
					return []string{"ctest", "--test-dir", in.BuildDir, "--output-on-failure"}
				},
			},
			TaskRun: {
				RunsArtifact: true,
			},
			TaskDebug: {
				RunsArtifact: true,
			},
			TaskClean: {
				FallbackArgs: func(in FallbackInput) []string {
					return []string{"cmake", "-E", "rm", "-rf", in.BuildDir}
				},
			},
			TaskPackage: {
				FallbackArgs: func(FallbackInput) []string {
					return []string{"cpack"}
				},
				InBuildDir: true,
			},
		},
	}
}

func pythonBackend() Backend {
	return Backend{
		Name:    "python",
		Markers: []string{"pyproject.toml"},
		Tasks: map[TaskName]TaskSpec{
			TaskBuild: {
				FallbackArgs: func(FallbackInput) []string {
					return []string{"uv", "sync"}
				},
			},
			TaskRun: {
				FallbackArgs: func(in FallbackInput) []string {
					entry := in.Target
					if entry == "" {
						entry = "main.py"
					}
					return []string{"uv", "run", entry}
				},
			},
			TaskTest: {
				FallbackArgs: func(FallbackInput) []string {
					return []string{"uv", "run", "pytest"}
				},
			},
			TaskClean: {
				FallbackArgs: func(FallbackInput) []string {
					return []string{"rm", "-rf", "dist"}
				},
			},
			TaskPackage: {
				FallbackArgs: func(FallbackInput) []string {
					return []string{"uv", "build"}
				},
			},
		},
	}
}

// String renders the registry's backend names, used in diagnostics.
func (r *Registry) String() string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name
	}
	return strings.Join(names, ",")
}
