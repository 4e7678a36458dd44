// Package npc provides enemy kind definitions and live enemy management.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind defines a reusable enemy archetype loaded from YAML.
type Kind struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Health      int    `yaml:"health"`
	Armor       int    `yaml:"armor"`
	Damage      int    `yaml:"damage"`
	// Taunts are lines the enemy may shout when an encounter opens.
	Taunts []string `yaml:"taunts"`
	// TauntChance is the probability (0–1) of taunting when an encounter opens.
	TauntChance float64 `yaml:"taunt_chance"`
}

// Validate checks that the kind satisfies basic invariants.
//
// Precondition: k must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Health >= 1, Armor >= 0,
// Damage >= 0 and TauntChance is in [0, 1]; returns an error on the first violation otherwise.
func (k *Kind) Validate() error {
	if k.ID == "" {
		return fmt.Errorf("enemy kind: id must not be empty")
	}
	if k.Name == "" {
		return fmt.Errorf("enemy kind %q: name must not be empty", k.ID)
	}
	if k.Health < 1 {
		return fmt.Errorf("enemy kind %q: health must be >= 1", k.ID)
	}
	if k.Armor < 0 {
		return fmt.Errorf("enemy kind %q: armor must be >= 0", k.ID)
	}
	if k.Damage < 0 {
		return fmt.Errorf("enemy kind %q: damage must be >= 0", k.ID)
	}
	if k.TauntChance < 0 || k.TauntChance > 1 {
		return fmt.Errorf("enemy kind %q: taunt_chance must be in [0, 1]", k.ID)
	}
	return nil
}

// LoadKindFromBytes parses a single enemy kind from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Kind.
// Postcondition: Returns a validated *Kind, or an error.
func LoadKindFromBytes(data []byte) (*Kind, error) {
	var k Kind
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parsing enemy kind YAML: %w", err)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return &k, nil
}

// LoadKinds reads all *.yaml files in dir and returns the parsed kinds sorted by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all kinds or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadKinds(dir string) ([]*Kind, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var kinds []*Kind
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		k, err := LoadKindFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if seen[k.ID] {
			return nil, fmt.Errorf("loading %q: duplicate enemy kind %q", path, k.ID)
		}
		seen[k.ID] = true
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].ID < kinds[j].ID })
	return kinds, nil
}
