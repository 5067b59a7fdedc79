// Package cave generates cave levels: a cellular-automaton occupancy grid,
// cleaned of small regions, with every room reachable from the largest one,
// plus the floor and wall meshes derived from it.
package cave

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/OCharnyshevich/cave-generator/pkg/mesh"
)

// ErrBusy is returned when Generate is called while another generation on the
// same Generator is still running.
var ErrBusy = errors.New("generation already in progress")

// Level is the result of one generation. It shares no state with the
// Generator that produced it.
type Level struct {
	// Seed is the seed actually used; it differs from Config.Seed in random
	// seed mode.
	Seed   string
	Config Config

	// Grid is the final cleaned grid; Bordered adds the solid frame the
	// meshes are built from.
	Grid     *Grid
	Bordered *Grid

	Rooms       []*Room
	Connections []Connection
	Pruned      PruneStats

	Floor    *mesh.Mesh
	Walls    *mesh.Mesh
	Outlines [][]int
}

// Generator runs the full pipeline for a configuration. It is safe to share
// between goroutines, but only one generation runs at a time.
type Generator struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for per-generation summaries.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// NewGenerator validates cfg and returns a Generator for it.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate produces a level from the configured seed.
func (g *Generator) Generate() (*Level, error) {
	return g.GenerateSeed(g.cfg.Seed)
}

// GenerateSeed produces a level from seed, ignoring Config.Seed. In random
// seed mode the seed argument is replaced with a time-based one. A call made
// while another generation is running fails with ErrBusy.
func (g *Generator) GenerateSeed(seed string) (*Level, error) {
	if !g.mu.TryLock() {
		return nil, ErrBusy
	}
	defer g.mu.Unlock()

	cfg := g.cfg
	if cfg.RandomSeed {
		seed = TimeSeed()
	}
	cfg.Seed = seed

	start := time.Now()
	lvl, err := Run(cfg)
	if err != nil {
		return nil, err
	}
	g.log.Info("level generated",
		"seed", lvl.Seed,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"rooms", len(lvl.Rooms),
		"connections", len(lvl.Connections),
		"floorTriangles", lvl.Floor.TriangleCount(),
		"wallTriangles", lvl.Walls.TriangleCount(),
		"outlines", len(lvl.Outlines),
		"elapsed", time.Since(start),
	)
	return lvl, nil
}

// Run executes fill, simulation, region cleanup, connectivity repair and mesh
// extraction for cfg. cfg.Seed is used as given.
func Run(cfg Config) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lvl := &Level{Seed: cfg.Seed, Config: cfg}
	lvl.Grid = Fill(cfg)

	if cfg.Degenerate() {
		lvl.Bordered = lvl.Grid.Bordered(cfg.BorderSize)
		lvl.Floor = &mesh.Mesh{}
		lvl.Walls = &mesh.Mesh{}
		return lvl, nil
	}

	Automaton{DeathLimit: cfg.DeathLimit, BirthLimit: cfg.BirthLimit}.Run(lvl.Grid, cfg.Steps)

	regions, stats := ProcessRegions(lvl.Grid, cfg.WallThreshold, cfg.RoomThreshold)
	lvl.Pruned = stats
	lvl.Rooms = NewRooms(lvl.Grid, regions)
	lvl.Connections = Connector{
		Grid:          lvl.Grid,
		SquareSize:    cfg.SquareSize,
		Carve:         cfg.CarvePassages,
		PassageRadius: cfg.PassageRadius,
	}.Connect(lvl.Rooms)

	b := lvl.Grid.Bordered(cfg.BorderSize)
	lvl.Bordered = b
	floor, walls, outlines, err := mesh.Build(b.Width, b.Height, func(x, y int) bool {
		return b.At(x, y) == Solid
	}, cfg.SquareSize, cfg.WallHeight)
	if err != nil {
		return nil, fmt.Errorf("build mesh for seed %q: %w", cfg.Seed, err)
	}
	lvl.Floor, lvl.Walls, lvl.Outlines = floor, walls, outlines
	return lvl, nil
}
