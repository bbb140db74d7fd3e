package domain

// PresetKind distinguishes the three preset lists of a CMake presets file.
type PresetKind string

const (
	// PresetConfigure is a configure preset.
	PresetConfigure PresetKind = "configure"
	// PresetBuild is a build preset.
	PresetBuild PresetKind = "build"
	// PresetTest is a test preset.
	PresetTest PresetKind = "test"
)

// Preset is one named, inheritance-resolved preset. All parent fields have
// already been deep-merged into it by the loader.
type Preset struct {
	Name   string
	Kind   PresetKind
	Hidden bool

	// ConfigurePreset links build/test presets to the configure preset whose
	// binary directory they operate on. Empty for configure presets.
	ConfigurePreset string

	// BinaryDir is the preset's build directory with macros expanded.
	// Set on configure presets; empty if the preset does not declare one.
	BinaryDir string

	// Fields retains the full merged field set for passthrough consumers.
	Fields map[string]any
}

// PresetSet is the inheritance-resolved content of a presets file.
type PresetSet struct {
	Configure []Preset
	Build     []Preset
	Test      []Preset
}

func (s *PresetSet) kind(kind PresetKind) []Preset {
	switch kind {
	case PresetBuild:
		return s.Build
	case PresetTest:
		return s.Test
	default:
		return s.Configure
	}
}

// Selectable returns the presets of the given kind that may be offered to a
// selection UI. Hidden presets are excluded; they exist only as inheritance
// bases.
func (s *PresetSet) Selectable(kind PresetKind) []Preset {
	var out []Preset
	for _, p := range s.kind(kind) {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// SelectableNames returns the names of Selectable presets of the given kind.
func (s *PresetSet) SelectableNames(kind PresetKind) []string {
	sel := s.Selectable(kind)
	names := make([]string, len(sel))
	for i, p := range sel {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a selectable preset by name. Hidden presets are not found:
// a stale session value naming a hidden preset must trigger re-selection.
func (s *PresetSet) Lookup(kind PresetKind, name string) (Preset, bool) {
	for _, p := range s.kind(kind) {
		if p.Name == name && !p.Hidden {
			return p, true
		}
	}
	return Preset{}, false
}

// Find locates a preset by name including hidden ones. Build and test
// presets may reference a hidden configure preset as their base.
func (s *PresetSet) Find(kind PresetKind, name string) (Preset, bool) {
	for _, p := range s.kind(kind) {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
