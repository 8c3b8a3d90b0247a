package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"rematierra/internal/filter"
)

// PresetStore persists named filter presets under the data directory.
type PresetStore struct {
	dir string
}

// NewPresetStore creates the data directory if needed.
func NewPresetStore(dataDir string) (*PresetStore, error) {
	dir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &PresetStore{dir: dir}, nil
}

func (s *PresetStore) path() string {
	return filepath.Join(s.dir, "presets.json")
}

// load reads the full preset map, empty when the file does not exist yet.
func (s *PresetStore) load() (map[string]*filter.Preset, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*filter.Preset{}, nil
		}
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	presets := make(map[string]*filter.Preset)
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	return presets, nil
}

func (s *PresetStore) save(presets map[string]*filter.Preset) error {
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding presets: %w", err)
	}
	if err := os.WriteFile(s.path(), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	return nil
}

// Save stores a preset under its name, overwriting an existing one while
// preserving its creation time.
func (s *PresetStore) Save(preset *filter.Preset) error {
	if preset == nil || preset.Name == "" {
		return fmt.Errorf("preset requires a name")
	}

	presets, err := s.load()
	if err != nil {
		return err
	}

	if existing, ok := presets[preset.Name]; ok {
		preset.CreatedAt = existing.CreatedAt
	}
	preset.UpdatedAt = time.Now().UTC()
	presets[preset.Name] = preset

	return s.save(presets)
}

// Get returns a preset by name.
func (s *PresetStore) Get(name string) (*filter.Preset, error) {
	presets, err := s.load()
	if err != nil {
		return nil, err
	}
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("no existe el preset %q", name)
	}
	return preset, nil
}

// List returns all presets sorted by name.
func (s *PresetStore) List() ([]*filter.Preset, error) {
	presets, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]*filter.Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a preset by name; deleting a missing preset is an error.
func (s *PresetStore) Delete(name string) error {
	presets, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := presets[name]; !ok {
		return fmt.Errorf("no existe el preset %q", name)
	}
	delete(presets, name)
	return s.save(presets)
}
