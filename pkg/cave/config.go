package cave

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for any out-of-range setting.
var ErrInvalidConfig = errors.New("invalid cave config")

// Fill modes for the initial noisy grid.
const (
	FillRandom  = "random"
	FillSimplex = "simplex"
	FillPerlin  = "perlin"
)

// Config holds the generation parameters.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// A Solid cell opens when fewer than DeathLimit neighbors are Solid.
	DeathLimit int `json:"death_limit"`
	// An Open cell closes when more than BirthLimit neighbors are Solid.
	BirthLimit int `json:"birth_limit"`
	Steps      int `json:"steps"`

	FillPercent int     `json:"fill_percent"`
	FillMode    string  `json:"fill_mode"`   // "random", "simplex" or "perlin"
	NoiseScale  float64 `json:"noise_scale"` // coordinate scale for noise fill modes

	Seed       string `json:"seed"`
	RandomSeed bool   `json:"random_seed"`

	WallThreshold int `json:"wall_threshold"`
	RoomThreshold int `json:"room_threshold"`

	// CarvePassages opens a corridor along every accepted room connection.
	CarvePassages bool `json:"carve_passages"`
	PassageRadius int  `json:"passage_radius"`

	BorderSize int     `json:"border_size"`
	SquareSize float64 `json:"square_size"`
	WallHeight float64 `json:"wall_height"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Width:         64,
		Height:        48,
		DeathLimit:    4,
		BirthLimit:    4,
		Steps:         5,
		FillPercent:   47,
		FillMode:      FillRandom,
		NoiseScale:    0.1,
		Seed:          "cave",
		WallThreshold: 50,
		RoomThreshold: 50,
		PassageRadius: 1,
		BorderSize:    1,
		SquareSize:    1,
		WallHeight:    5,
	}
}

// Validate rejects configurations that must not reach the pipeline.
func (c Config) Validate() error {
	switch {
	case c.DeathLimit < 1 || c.DeathLimit > 8:
		return fmt.Errorf("%w: death limit %d not in [1,8]", ErrInvalidConfig, c.DeathLimit)
	case c.BirthLimit < 1 || c.BirthLimit > 8:
		return fmt.Errorf("%w: birth limit %d not in [1,8]", ErrInvalidConfig, c.BirthLimit)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Steps < 0:
		return fmt.Errorf("%w: negative step count %d", ErrInvalidConfig, c.Steps)
	case c.FillPercent < 0 || c.FillPercent > 100:
		return fmt.Errorf("%w: fill percent %d not in [0,100]", ErrInvalidConfig, c.FillPercent)
	case c.WallThreshold < 1 || c.RoomThreshold < 1:
		return fmt.Errorf("%w: region thresholds must be positive (wall %d, room %d)", ErrInvalidConfig, c.WallThreshold, c.RoomThreshold)
	case c.BorderSize < 1:
		return fmt.Errorf("%w: border size %d must be positive", ErrInvalidConfig, c.BorderSize)
	case c.SquareSize <= 0:
		return fmt.Errorf("%w: square size %g must be positive", ErrInvalidConfig, c.SquareSize)
	case c.WallHeight <= 0:
		return fmt.Errorf("%w: wall height %g must be positive", ErrInvalidConfig, c.WallHeight)
	case c.PassageRadius < 0:
		return fmt.Errorf("%w: negative passage radius %d", ErrInvalidConfig, c.PassageRadius)
	}

	switch c.FillMode {
	case "", FillRandom:
	case FillSimplex, FillPerlin:
		if c.NoiseScale <= 0 {
			return fmt.Errorf("%w: noise scale %g must be positive", ErrInvalidConfig, c.NoiseScale)
		}
	default:
		return fmt.Errorf("%w: unknown fill mode %q", ErrInvalidConfig, c.FillMode)
	}
	return nil
}

// Degenerate reports whether the grid is too small to hold any room.
func (c Config) Degenerate() bool {
	return c.Width <= 2 || c.Height <= 2
}
