package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/config"
	"github.com/cory-johannsen/rogue/internal/game/dice"
	"github.com/cory-johannsen/rogue/internal/game/world"
)

// newSource returns a seeded source when seed is non-zero, a crypto-backed one
// otherwise, with every draw logged at debug level.
func newSource(seed int64, logger *zap.Logger) dice.Source {
	var src dice.Source
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	} else {
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedSource(src, logger)
}

// buildGrid selects the map named by cfg.Map: the built-in standard room, a
// freshly generated map, or a preset loaded from mapsDir.
//
// Postcondition: Returns a grid with no occupants, or an error.
func buildGrid(cfg config.GameConfig, mapsDir string, src dice.Source) (*world.Grid, error) {
	switch cfg.Map {
	case config.MapStandard:
		return world.Standard(), nil
	case config.MapGenerated:
		return world.Generate(cfg.Width, cfg.Height, cfg.WallProbability, src)
	}
	presets, err := world.LoadMapsFromDir(mapsDir)
	if err != nil {
		return nil, fmt.Errorf("loading maps: %w", err)
	}
	preset, ok := presets[cfg.Map]
	if !ok {
		return nil, fmt.Errorf("map %q not found in %s", cfg.Map, mapsDir)
	}
	return preset.Grid()
}
