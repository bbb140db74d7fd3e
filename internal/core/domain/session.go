package domain

// Session keys. The key set is open: backends may store extension keys and
// the store keeps unknown keys verbatim, these are the ones the resolver
// reads.
const (
	// KeyPreset is the selected configure preset.
	KeyPreset = "preset"
	// KeyBuildPreset is the selected build preset.
	KeyBuildPreset = "build_preset"
	// KeyTestPreset is the selected test preset.
	KeyTestPreset = "test_preset"
	// KeyBuildTarget is the build target; empty means build all targets.
	KeyBuildTarget = "build_target"
	// KeyTarget is the run/debug target name.
	KeyTarget = "target"
)

// SessionKeyFor maps a preset kind to the session key holding its selection.
func SessionKeyFor(kind PresetKind) string {
	switch kind {
	case PresetBuild:
		return KeyBuildPreset
	case PresetTest:
		return KeyTestPreset
	default:
		return KeyPreset
	}
}
