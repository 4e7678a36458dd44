// Package ruleset loads the static rule tables: player classes and their stat bonuses.
package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bonuses are added to the player's base stats by a class.
type Bonuses struct {
	Health  int `yaml:"health"`
	Stamina int `yaml:"stamina"`
	Armor   int `yaml:"armor"`
	Damage  int `yaml:"damage"`
}

// Class defines a playable character class.
//
// Precondition: ID and Name must be non-empty after loading.
type Class struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Bonuses     Bonuses `yaml:"bonuses"`
}

// Validate checks that the class satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty and no bonus is negative.
func (c *Class) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("class: id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("class %q: name must not be empty", c.ID)
	}
	b := c.Bonuses
	if b.Health < 0 || b.Stamina < 0 || b.Armor < 0 || b.Damage < 0 {
		return fmt.Errorf("class %q: bonuses must not be negative", c.ID)
	}
	return nil
}

// LoadClasses reads all .yaml files in dir and parses each as a Class.
// Classes are returned sorted by ID so menu order is stable.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed classes (may be empty slice) or a non-nil error.
func LoadClasses(dir string) ([]*Class, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", path, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("validating class file %s: %w", path, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate class ID %q in %s", c.ID, path)
		}
		seen[c.ID] = true
		classes = append(classes, &c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

// FindClass returns the class with the given ID.
//
// Postcondition: Returns (class, true) if found, or (nil, false) otherwise.
func FindClass(classes []*Class, id string) (*Class, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
