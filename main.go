package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/platform"
	"raycaster/internal/world"

	"github.com/sirupsen/logrus"
)

// Exit codes, one per startup failure class
const (
	exitConfig   = 2
	exitAsset    = 3
	exitFormat   = 4
	exitPlatform = 5
	exitRuntime  = 1
)

func main() {
	var configPath, mode string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration")
	flag.StringVar(&mode, "mode", "", "Output mode override: window, terminal or snapshot")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to load configuration")
		os.Exit(exitConfig)
	}
	if mode != "" {
		cfg.Output.Mode = mode
		if err := cfg.Validate(); err != nil {
			logger.Log.WithError(err).Error("Invalid -mode")
			os.Exit(exitConfig)
		}
	}
	// The terminal presenter owns stderr's screen
	if cfg.Output.Mode == config.ModeTerminal && cfg.Logging.File == "" {
		cfg.Logging.File = "raycaster.log"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File); err != nil {
		logger.Log.WithError(err).Error("Failed to open log file")
		os.Exit(exitConfig)
	}

	logger.Log.WithFields(logrus.Fields{
		"config": configPath,
		"mode":   cfg.Output.Mode,
		"size":   []int{cfg.GetScreenWidth(), cfg.GetScreenHeight()},
	}).Info("Starting raycaster")

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	grid, err := world.LoadGrid(cfg.Assets.Map)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to load map")
		if errors.Is(err, world.ErrMapFormat) {
			return exitFormat
		}
		return exitAsset
	}

	key := graphics.RGB(cfg.Graphics.Sprite.TransparentKey)
	textures, err := graphics.LoadTextureStore(cfg.Assets.WallAtlas, cfg.Assets.SpriteAtlas, key)
	switch {
	case errors.Is(err, graphics.ErrTextureFormat):
		logger.Log.WithError(err).Error("Malformed texture atlas")
		return exitFormat
	case err != nil:
		logger.Log.WithError(err).Error("Failed to load textures")
		return exitAsset
	}

	g, err := game.NewGame(cfg, grid, textures)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to create game")
		return exitRuntime
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = game.Run(ctx, g)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Log.WithField("frames", g.Frames()).Info("Done.")
		return 0
	case errors.Is(err, platform.ErrInit):
		logger.Log.WithError(err).Error("Failed to initialise output")
		return exitPlatform
	default:
		logger.Log.WithError(err).Error("Render loop failed")
		return exitRuntime
	}
}
