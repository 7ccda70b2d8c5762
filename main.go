package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/config"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "draw steering context maps and routines")
	arenaName := flag.String("arena", "", "arena prefab name (basename, .yaml omitted)")
	prefabDir := flag.String("prefabs", "", "directory searched for prefabs before the embedded ones")
	watch := flag.Bool("watch", false, "hot reload prefabs and policy scripts")
	seed := flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Game.Debug = true
	}
	if *arenaName != "" {
		cfg.Game.Arena = *arenaName
	}
	if *prefabDir != "" {
		cfg.Prefabs.Dir = *prefabDir
	}
	if *watch {
		cfg.Prefabs.Watch = true
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Prefabs.Dir != "" {
		prefabs.SetDiskRoot(cfg.Prefabs.Dir)
	}
	prefabs.SetSteeringDefaults(prefabs.SteeringSpec{
		Interval:   cfg.Steering.Interval.Seconds(),
		Resolution: cfg.Steering.Resolution,
		Selection:  cfg.Steering.Selection,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Game.TPS)

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
