package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cave-generator/internal/config"
	"github.com/OCharnyshevich/cave-generator/internal/export"
	"github.com/OCharnyshevich/cave-generator/internal/preview"
	"github.com/OCharnyshevich/cave-generator/internal/storage"
	"github.com/OCharnyshevich/cave-generator/pkg/cave"
)

func main() {
	cfg := config.DefaultConfig()
	c := &cfg.Cave

	flag.IntVar(&c.Width, "width", c.Width, "grid width in tiles")
	flag.IntVar(&c.Height, "height", c.Height, "grid height in tiles")
	flag.IntVar(&c.DeathLimit, "death-limit", c.DeathLimit, "solid cells with fewer solid neighbors open")
	flag.IntVar(&c.BirthLimit, "birth-limit", c.BirthLimit, "open cells with more solid neighbors close")
	flag.IntVar(&c.Steps, "steps", c.Steps, "automaton steps")
	flag.IntVar(&c.FillPercent, "fill", c.FillPercent, "initial wall percentage")
	flag.StringVar(&c.FillMode, "fill-mode", c.FillMode, "initial fill: random, simplex or perlin")
	flag.Float64Var(&c.NoiseScale, "noise-scale", c.NoiseScale, "coordinate scale for noise fill modes")
	flag.StringVar(&c.Seed, "seed", c.Seed, "generation seed")
	flag.BoolVar(&c.RandomSeed, "random-seed", c.RandomSeed, "use a time-based seed")
	flag.IntVar(&c.WallThreshold, "wall-threshold", c.WallThreshold, "wall regions smaller than this are removed")
	flag.IntVar(&c.RoomThreshold, "room-threshold", c.RoomThreshold, "rooms smaller than this are removed")
	flag.BoolVar(&c.CarvePassages, "carve", c.CarvePassages, "carve corridors between connected rooms")
	flag.IntVar(&c.PassageRadius, "passage-radius", c.PassageRadius, "corridor radius when carving")
	flag.IntVar(&c.BorderSize, "border", c.BorderSize, "solid border thickness")
	flag.Float64Var(&c.SquareSize, "square-size", c.SquareSize, "world size of one tile")
	flag.Float64Var(&c.WallHeight, "wall-height", c.WallHeight, "wall mesh height")

	flag.StringVar(&cfg.Output, "o", cfg.Output, "output file, - for stdout")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format: obj, json or ascii")
	flag.BoolVar(&cfg.Preview, "preview", cfg.Preview, "open the terminal preview instead of exporting")
	flag.StringVar(&cfg.PresetURL, "preset", cfg.PresetURL, "go-getter source of a config preset")

	dataDir := flag.String("data", ".cavegen", "directory for config.json and presets")
	presetName := flag.String("use", "", "name of a stored preset to apply")
	saveConfig := flag.Bool("save-config", false, "write the effective config to the data directory")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Stdout carries the exported level and the preview owns the terminal.
	var logOut io.Writer = os.Stderr
	if cfg.Preview {
		logOut = io.Discard
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

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

	presetURL := fromFile.PresetURL
	if explicit["preset"] {
		presetURL = cfg.PresetURL
	}
	if presetURL != "" {
		name, err := store.FetchPreset(ctx, presetURL)
		if err != nil {
			log.Error("fetch preset", "error", err)
			os.Exit(1)
		}
		*presetName = name
	}
	if *presetName != "" {
		if err := store.LoadPreset(*presetName, fromFile); err != nil {
			log.Error("apply preset", "error", err)
			os.Exit(1)
		}
	}

	config.Merge(cfg, fromFile, explicit)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if *saveConfig {
		if err := store.SaveConfig(cfg); err != nil {
			log.Error("save config", "error", err)
			os.Exit(1)
		}
	}

	gen, err := cave.NewGenerator(cfg.Cave, cave.WithLogger(log))
	if err != nil {
		log.Error("create generator", "error", err)
		os.Exit(1)
	}

	if cfg.Preview {
		if err := runPreview(ctx, gen, cfg.Cave.Seed, log); err != nil {
			log.Error("preview", "error", err)
			os.Exit(1)
		}
		return
	}

	lvl, err := gen.Generate()
	if err != nil {
		log.Error("generate level", "error", err)
		os.Exit(1)
	}

	if cfg.Output == "-" {
		err = export.Write(os.Stdout, cfg.Format, lvl)
	} else {
		err = storage.WriteFileAtomic(cfg.Output, func(w io.Writer) error {
			return export.Write(w, cfg.Format, lvl)
		})
	}
	if err != nil {
		log.Error("export level", "error", err)
		os.Exit(1)
	}
	if cfg.Output != "-" {
		log.Info("level written", "path", cfg.Output, "format", cfg.Format, "seed", lvl.Seed)
	}
}

func runPreview(ctx context.Context, gen *cave.Generator, seed string, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return preview.New(screen, gen, log).Run(ctx, seed)
}
