package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/voxelworld/internal/config"
	"github.com/OCharnyshevich/voxelworld/internal/server"
)

func main() {
	cfg := config.DefaultConfig()

	var spawnX, spawnZ float64
	configSrc := flag.String("config", "", "config file path or go-getter URL (yaml or json)")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "http port")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Func("seed", "world seed, 0 to 4294967295 (default 0)", func(v string) error {
		seed, err := config.ParseSeed(v)
		if err != nil {
			return err
		}
		cfg.Seed = seed
		return nil
	})
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: default or flat")
	flag.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "chunks loaded around the observer")
	flag.IntVar(&cfg.EvictionMargin, "eviction-margin", cfg.EvictionMargin, "extra chunks kept before eviction")
	flag.IntVar(&cfg.TickMillis, "tick-ms", cfg.TickMillis, "world update period in milliseconds")
	flag.Float64Var(&spawnX, "spawn-x", 0, "preferred spawn x")
	flag.Float64Var(&spawnZ, "spawn-z", 0, "preferred spawn z")
	flag.BoolVar(&cfg.Terrain.Trees, "trees", cfg.Terrain.Trees, "decorate forests with trees")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg.SpawnX, cfg.SpawnZ = float32(spawnX), float32(spawnZ)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		pwd, err := os.Getwd()
		if err != nil {
			slog.Error("get working directory", "error", err)
			os.Exit(1)
		}
		fromFile, err := config.Load(ctx, *configSrc, pwd)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	level, err := cfg.Level()
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if *configSrc != "" {
		log.Info("loaded config", "source", *configSrc)
	}

	srv := server.New(cfg, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
