package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/cave-generator/internal/storage"
)

func main() {
	var (
		src  = flag.String("src", "", "go-getter source of a preset file or directory (git::, s3::, https://, local path)")
		pack = flag.Bool("pack", false, "src is a directory of presets")
		out  = flag.String("data", ".cavegen", "data directory presets are stored under")
		list = flag.Bool("list", false, "list stored presets and exit")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	store, err := storage.New(*out, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}

	if *list {
		names, err := store.Presets()
		if err != nil {
			log.Error("list presets", "error", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	if *src == "" {
		fmt.Fprintln(os.Stderr, "error: -src flag is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// e.g. git::https://github.com/example/cave-presets.git//presets
	if *pack {
		names, err := store.FetchPresetPack(ctx, *src)
		if err != nil {
			log.Error("download preset pack", "error", err)
			os.Exit(1)
		}
		log.Info("done downloading presets", "dir", store.PresetDir(), "count", len(names))
		return
	}

	name, err := store.FetchPreset(ctx, *src)
	if err != nil {
		log.Error("download preset", "error", err)
		os.Exit(1)
	}
	log.Info("done downloading preset", "name", name, "dir", store.PresetDir())
}
