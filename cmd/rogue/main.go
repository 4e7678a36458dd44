// Package main runs the roguelike in the terminal: it loads configuration and
// content, builds a session, and plays it against keyboard input.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rogue/internal/config"
	"github.com/cory-johannsen/rogue/internal/frontend/console"
	"github.com/cory-johannsen/rogue/internal/game/character"
	"github.com/cory-johannsen/rogue/internal/game/npc"
	"github.com/cory-johannsen/rogue/internal/game/ruleset"
	"github.com/cory-johannsen/rogue/internal/game/session"
	"github.com/cory-johannsen/rogue/internal/observability"
	"github.com/cory-johannsen/rogue/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	envPath := flag.String("env", ".env", "optional dotenv file with ROGUE_ overrides")
	className := flag.String("class", "", "player class ID (overrides game.class)")
	playerName := flag.String("name", "", "player name (overrides game.player_name)")
	seed := flag.Int64("seed", 0, "random seed (overrides game.seed; 0 keeps the configured value)")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	if _, err := config.LoadEnvFile(*envPath); err != nil {
		log.Fatalf("loading env file: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *className != "" {
		cfg.Game.Class = *className
	}
	if *playerName != "" {
		cfg.Game.PlayerName = *playerName
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	classes, err := ruleset.LoadClasses(cfg.Content.ClassesDir)
	if err != nil {
		logger.Fatal("loading classes", zap.Error(err))
	}
	class, ok := ruleset.FindClass(classes, cfg.Game.Class)
	if !ok {
		logger.Fatal("unknown class", zap.String("class", cfg.Game.Class), zap.Int("available", len(classes)))
	}
	kinds, err := npc.LoadKinds(cfg.Content.EnemiesDir)
	if err != nil {
		logger.Fatal("loading enemy kinds", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("classes", len(classes)),
		zap.Int("enemy_kinds", len(kinds)),
	)

	src := newSource(cfg.Game.Seed, logger)
	grid, err := buildGrid(cfg.Game, cfg.Content.MapsDir, src)
	if err != nil {
		logger.Fatal("building map", zap.String("map", cfg.Game.Map), zap.Error(err))
	}

	sess, err := session.New(grid, session.Options{
		PlayerName:        cfg.Game.PlayerName,
		Class:             class,
		Base:              character.DefaultBaseStats,
		Kinds:             kinds,
		Enemies:           cfg.Game.Enemies,
		PlacementAttempts: cfg.Game.PlacementAttempts,
	}, src, logger)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	renderer := console.NewRenderer(os.Stdout, !*noColor)
	source := console.NewLineSource(os.Stdin, renderer, logger)
	source.OnLook = func() { renderer.Screen(sess) }
	game := console.NewGame(sess, source, renderer, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("console", game)

	logger.Info("game initialized",
		zap.String("session_id", sess.ID()),
		zap.String("map", cfg.Game.Map),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("game error", zap.Error(err))
	}
}
