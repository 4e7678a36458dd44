package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlMapFile is the top-level YAML structure for preset map files.
type yamlMapFile struct {
	Map yamlMap `yaml:"map"`
}

// yamlMap is the YAML representation of a preset map.
type yamlMap struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Rows        []string `yaml:"rows"`
}

// Preset is a named, hand-drawn map.
type Preset struct {
	ID          string
	Name        string
	Description string
	Rows        []string
}

// Grid builds a fresh Grid from the preset. Every call returns an independent grid.
//
// Postcondition: Returns a Grid or an error if the rows are malformed.
func (p *Preset) Grid() (*Grid, error) {
	g, err := ParseGrid(p.Rows)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", p.ID, err)
	}
	return g, nil
}

// LoadMapFromFile reads and validates a single preset map YAML file.
//
// Precondition: path must point to a valid YAML map file.
// Postcondition: Returns a validated Preset or a non-nil error.
func LoadMapFromFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}
	return LoadMapFromBytes(data)
}

// LoadMapFromBytes parses and validates a preset map from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the map schema.
// Postcondition: Returns a validated Preset or a non-nil error.
func LoadMapFromBytes(data []byte) (*Preset, error) {
	var file yamlMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing map YAML: %w", err)
	}
	if file.Map.ID == "" {
		return nil, fmt.Errorf("validating map: id must not be empty")
	}
	p := &Preset{
		ID:          file.Map.ID,
		Name:        file.Map.Name,
		Description: strings.TrimSpace(file.Map.Description),
		Rows:        file.Map.Rows,
	}
	if _, err := p.Grid(); err != nil {
		return nil, fmt.Errorf("validating map: %w", err)
	}
	return p, nil
}

// LoadMapsFromDir loads all YAML files in a directory as preset maps, keyed by ID.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated presets or the first error encountered.
func LoadMapsFromDir(dir string) (map[string]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading map directory %s: %w", dir, err)
	}

	presets := make(map[string]*Preset)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		p, err := LoadMapFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading map from %s: %w", name, err)
		}
		if _, dup := presets[p.ID]; dup {
			return nil, fmt.Errorf("duplicate map ID %q in %s", p.ID, name)
		}
		presets[p.ID] = p
	}
	return presets, nil
}
