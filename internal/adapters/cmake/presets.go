// Package cmake parses the on-disk metadata formats of CMake: the presets
// file at the project root and the File API reply tree under a build
// directory. It never invokes cmake itself.
package cmake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.PresetLoader for the cmake backend. Every call
// re-reads from disk: presets and File API replies can change between
// invocations.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses the presets file at root, merging the include chain and
// resolving inheritance. Returns a nil set when no presets file exists.
// Unparsable JSON degrades to a nil set with a warning; circular
// inheritance is a load error.
func (l *Loader) Load(root string) (*domain.PresetSet, error) {
	path := filepath.Join(root, PresetsFileName)

	file, found, err := l.readPresetsFile(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	set := &domain.PresetSet{}

	set.Configure, err = l.resolveKind(file.ConfigurePresets, domain.PresetConfigure, root)
	if err != nil {
		return nil, err
	}
	set.Build, err = l.resolveKind(file.BuildPresets, domain.PresetBuild, root)
	if err != nil {
		return nil, err
	}
	set.Test, err = l.resolveKind(file.TestPresets, domain.PresetTest, root)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// readPresetsFile reads one presets file and, recursively, its includes.
// The returned bool reports whether the top-level file exists. Malformed
// JSON fails soft: the file is treated as absent after a warning.
func (l *Loader) readPresetsFile(path string, seen map[string]bool) (*presetsFile, bool, error) {
	clean := filepath.Clean(path)
	if seen[clean] {
		// Include cycle; the first read already contributed the presets.
		return &presetsFile{}, true, nil
	}
	seen[clean] = true

	data, err := os.ReadFile(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.With(zerr.With(domain.ErrPresetsReadFailed, "path", clean), "cause", err.Error())
	}

	var file presetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		l.logger.Warn(fmt.Sprintf("ignoring malformed presets file %s: %v", clean, err))
		return nil, false, nil
	}

	for _, inc := range file.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(filepath.Dir(clean), incPath)
		}
		included, found, err := l.readPresetsFile(incPath, seen)
		if err != nil {
			return nil, false, err
		}
		if !found {
			l.logger.Warn(fmt.Sprintf("presets include not found: %s", incPath))
			continue
		}
		// Included presets come before the including file's own.
		file.ConfigurePresets = append(included.ConfigurePresets, file.ConfigurePresets...)
		file.BuildPresets = append(included.BuildPresets, file.BuildPresets...)
		file.TestPresets = append(included.TestPresets, file.TestPresets...)
	}

	return &file, true, nil
}

// resolveKind decodes the raw presets of one kind and resolves inheritance.
func (l *Loader) resolveKind(raw []json.RawMessage, kind domain.PresetKind, root string) ([]domain.Preset, error) {
	byName := make(map[string]map[string]any, len(raw))
	order := make([]string, 0, len(raw))

	for _, msg := range raw {
		fields := map[string]any{}
		if err := json.Unmarshal(msg, &fields); err != nil {
			l.logger.Warn(fmt.Sprintf("ignoring malformed %s preset: %v", kind, err))
			continue
		}
		name, _ := fields["name"].(string)
		if name == "" {
			l.logger.Warn(fmt.Sprintf("ignoring unnamed %s preset", kind))
			continue
		}
		if _, dup := byName[name]; !dup {
			order = append(order, name)
		}
		byName[name] = fields
	}

	resolved := make(map[string]map[string]any, len(byName))
	presets := make([]domain.Preset, 0, len(order))

	for _, name := range order {
		fields, err := l.resolveInherits(name, byName, resolved, map[string]bool{})
		if err != nil {
			return nil, err
		}
		presets = append(presets, buildPreset(name, kind, root, fields))
	}

	return presets, nil
}

// resolveInherits deep-merges every named parent's fields before the
// preset's own, child overriding parent. Circular inheritance is rejected.
func (l *Loader) resolveInherits(
	name string,
	byName map[string]map[string]any,
	resolved map[string]map[string]any,
	visiting map[string]bool,
) (map[string]any, error) {
	if fields, ok := resolved[name]; ok {
		return fields, nil
	}
	if visiting[name] {
		return nil, zerr.With(domain.ErrPresetCycle, "preset", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	own, ok := byName[name]
	if !ok {
		// Unknown inheritance base; contribute nothing.
		l.logger.Warn(fmt.Sprintf("preset inherits unknown preset %q", name))
		return map[string]any{}, nil
	}

	out := map[string]any{}
	for _, parent := range inheritsOf(own) {
		parentFields, err := l.resolveInherits(parent, byName, resolved, visiting)
		if err != nil {
			return nil, err
		}
		deepMerge(out, parentFields)
	}
	// hidden is per-preset and never inherited, unlike every other field.
	delete(out, "hidden")
	deepMerge(out, own)
	delete(out, "inherits")

	resolved[name] = out
	return out, nil
}

// inheritsOf extracts the inherits field, which CMake allows to be either a
// single string or a list.
func inheritsOf(fields map[string]any) []string {
	switch v := fields["inherits"].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// deepMerge merges src into dst. Nested maps merge recursively; every other
// value in src replaces the one in dst.
func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
			copied := map[string]any{}
			deepMerge(copied, srcMap)
			dst[k] = copied
			continue
		}
		dst[k] = v
	}
}

func buildPreset(name string, kind domain.PresetKind, root string, fields map[string]any) domain.Preset {
	p := domain.Preset{
		Name:   name,
		Kind:   kind,
		Fields: fields,
	}
	p.Hidden, _ = fields["hidden"].(bool)

	if kind == domain.PresetConfigure {
		if dir, ok := fields["binaryDir"].(string); ok {
			p.BinaryDir = expandMacros(dir, root, name)
		}
	} else {
		p.ConfigurePreset, _ = fields["configurePreset"].(string)
	}

	return p
}

// expandMacros substitutes the presets macros the engine understands.
func expandMacros(s, sourceDir, presetName string) string {
	s = strings.ReplaceAll(s, "${sourceDir}", sourceDir)
	s = strings.ReplaceAll(s, "${presetName}", presetName)
	return s
}
