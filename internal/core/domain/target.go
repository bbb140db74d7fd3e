package domain

// TargetType is the File API target type string.
type TargetType string

const (
	// TargetExecutable is a runnable binary target.
	TargetExecutable TargetType = "EXECUTABLE"
	// TargetStaticLibrary is a static library target.
	TargetStaticLibrary TargetType = "STATIC_LIBRARY"
	// TargetSharedLibrary is a shared library target.
	TargetSharedLibrary TargetType = "SHARED_LIBRARY"
	// TargetUtility is a custom/utility target.
	TargetUtility TargetType = "UTILITY"
)

// Target is one configured build target read from the CMake File API reply.
// Targets are recomputed from disk on demand and never persisted.
type Target struct {
	Name string
	Type TargetType

	// Artifact is the target's primary artifact path, relative to the build
	// directory unless the generator wrote it absolute. Empty for targets
	// without artifacts (utilities).
	Artifact string
}

// Runnable reports whether the target can back a run/debug task.
func (t Target) Runnable() bool {
	return t.Type == TargetExecutable && t.Artifact != ""
}
