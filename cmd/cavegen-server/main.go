package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/cave-generator/internal/config"
	"github.com/OCharnyshevich/cave-generator/internal/server"
	"github.com/OCharnyshevich/cave-generator/internal/storage"
	"github.com/OCharnyshevich/cave-generator/pkg/cave"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "listen address")
	flag.IntVar(&cfg.Cave.Width, "width", cfg.Cave.Width, "grid width in tiles")
	flag.IntVar(&cfg.Cave.Height, "height", cfg.Cave.Height, "grid height in tiles")
	flag.StringVar(&cfg.Cave.Seed, "seed", cfg.Cave.Seed, "seed used when a request names none")
	flag.BoolVar(&cfg.Cave.RandomSeed, "random-seed", cfg.Cave.RandomSeed, "ignore requested seeds and use time-based ones")
	flag.StringVar(&cfg.Cave.FillMode, "fill-mode", cfg.Cave.FillMode, "initial fill: random, simplex or perlin")
	flag.BoolVar(&cfg.Cave.CarvePassages, "carve", cfg.Cave.CarvePassages, "carve corridors between connected rooms")
	dataDir := flag.String("data", ".cavegen", "directory for config.json and presets")
	presetName := flag.String("use", "", "name of a stored preset to apply")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	store, err := storage.New(*dataDir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}
	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	if *presetName != "" {
		if err := store.LoadPreset(*presetName, fromFile); err != nil {
			log.Error("apply preset", "error", err)
			os.Exit(1)
		}
	}
	config.Merge(cfg, fromFile, explicit)

	gen, err := cave.NewGenerator(cfg.Cave, cave.WithLogger(log))
	if err != nil {
		log.Error("create generator", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, gen, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
