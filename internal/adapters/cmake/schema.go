package cmake

import "encoding/json"

// PresetsFileName is the presets file read at the project root.
const PresetsFileName = "CMakePresets.json"

// presetsFile mirrors the top-level structure of a CMake presets file.
// Individual presets stay raw so inheritance can deep-merge arbitrary
// passthrough fields.
type presetsFile struct {
	Version          int               `json:"version"`
	Include          []string          `json:"include"`
	ConfigurePresets []json.RawMessage `json:"configurePresets"`
	BuildPresets     []json.RawMessage `json:"buildPresets"`
	TestPresets      []json.RawMessage `json:"testPresets"`
}
