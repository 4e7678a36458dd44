// Package config provides Viper-based configuration loading for the roguelike.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Map selection values for GameConfig.Map.
const (
	MapStandard  = "standard"
	MapGenerated = "generated"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds the initial configuration handed to a game session.
type GameConfig struct {
	// Map is "standard" for the fixed preset, "generated" for a random map,
	// or the ID of a preset map loaded from the maps directory.
	Map string `mapstructure:"map"`
	// Width is the interior width of a generated map.
	Width int `mapstructure:"width"`
	// Height is the interior height of a generated map.
	Height int `mapstructure:"height"`
	// WallProbability is the chance that an interior cell of a generated map is a wall.
	WallProbability float64 `mapstructure:"wall_probability"`
	// Enemies is the number of enemies spawned at session start.
	Enemies int `mapstructure:"enemies"`
	// Class is the player class ID.
	Class string `mapstructure:"class"`
	// PlayerName is the display name of the player character.
	PlayerName string `mapstructure:"player_name"`
	// Seed seeds the session random source. Zero means a crypto-backed source.
	Seed int64 `mapstructure:"seed"`
	// PlacementAttempts caps rejection sampling before falling back to a scan of free cells.
	PlacementAttempts int `mapstructure:"placement_attempts"`
}

// ContentConfig holds the locations of YAML content files.
type ContentConfig struct {
	ClassesDir string `mapstructure:"classes_dir"`
	EnemiesDir string `mapstructure:"enemies_dir"`
	MapsDir    string `mapstructure:"maps_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Map == "" {
		errs = append(errs, "game.map must not be empty")
	}
	if g.Map == MapGenerated {
		if g.Width < 1 {
			errs = append(errs, fmt.Sprintf("game.width must be >= 1, got %d", g.Width))
		}
		if g.Height < 1 {
			errs = append(errs, fmt.Sprintf("game.height must be >= 1, got %d", g.Height))
		}
	}
	if g.WallProbability < 0 || g.WallProbability > 1 {
		errs = append(errs, fmt.Sprintf("game.wall_probability must be in [0, 1], got %g", g.WallProbability))
	}
	if g.Enemies < 0 {
		errs = append(errs, fmt.Sprintf("game.enemies must be >= 0, got %d", g.Enemies))
	}
	if g.Class == "" {
		errs = append(errs, "game.class must not be empty")
	}
	if g.PlayerName == "" {
		errs = append(errs, "game.player_name must not be empty")
	}
	if g.PlacementAttempts < 1 {
		errs = append(errs, fmt.Sprintf("game.placement_attempts must be >= 1, got %d", g.PlacementAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ClassesDir == "" {
		errs = append(errs, "content.classes_dir must not be empty")
	}
	if c.EnemiesDir == "" {
		errs = append(errs, "content.enemies_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ROGUE_ prefix
	v.SetEnvPrefix("ROGUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default configuration.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.map", MapStandard)
	v.SetDefault("game.width", 20)
	v.SetDefault("game.height", 10)
	v.SetDefault("game.wall_probability", 0.1)
	v.SetDefault("game.enemies", 3)
	v.SetDefault("game.class", "knight")
	v.SetDefault("game.player_name", "Hero")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.placement_attempts", 100)

	v.SetDefault("content.classes_dir", "content/classes")
	v.SetDefault("content.enemies_dir", "content/enemies")
	v.SetDefault("content.maps_dir", "content/maps")
}
