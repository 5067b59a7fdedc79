package config

import (
	"fmt"

	"github.com/OCharnyshevich/cave-generator/pkg/cave"
)

// Export formats.
const (
	FormatOBJ   = "obj"
	FormatJSON  = "json"
	FormatASCII = "ascii"
)

// Config holds the application configuration.
type Config struct {
	Cave cave.Config `json:"cave"`

	Output  string `json:"output"` // file path, "-" for stdout
	Format  string `json:"format"` // "obj", "json" or "ascii"
	Preview bool   `json:"preview"`

	Listen    string `json:"listen"`     // preview server address
	PresetURL string `json:"preset_url"` // go-getter source of a config preset
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cave:   cave.DefaultConfig(),
		Output: "-",
		Format: FormatASCII,
		Listen: ":8080",
	}
}

// Validate checks the cave parameters and the output format.
func (c *Config) Validate() error {
	if err := c.Cave.Validate(); err != nil {
		return err
	}
	switch c.Format {
	case FormatOBJ, FormatJSON, FormatASCII:
		return nil
	default:
		return fmt.Errorf("unknown export format %q", c.Format)
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	c, f := &cfg.Cave, &fromFile.Cave

	if !explicitFlags["width"] {
		c.Width = f.Width
	}
	if !explicitFlags["height"] {
		c.Height = f.Height
	}
	if !explicitFlags["death-limit"] {
		c.DeathLimit = f.DeathLimit
	}
	if !explicitFlags["birth-limit"] {
		c.BirthLimit = f.BirthLimit
	}
	if !explicitFlags["steps"] {
		c.Steps = f.Steps
	}
	if !explicitFlags["fill"] {
		c.FillPercent = f.FillPercent
	}
	if !explicitFlags["fill-mode"] {
		c.FillMode = f.FillMode
	}
	if !explicitFlags["noise-scale"] {
		c.NoiseScale = f.NoiseScale
	}
	if !explicitFlags["seed"] {
		c.Seed = f.Seed
	}
	if !explicitFlags["random-seed"] {
		c.RandomSeed = f.RandomSeed
	}
	if !explicitFlags["wall-threshold"] {
		c.WallThreshold = f.WallThreshold
	}
	if !explicitFlags["room-threshold"] {
		c.RoomThreshold = f.RoomThreshold
	}
	if !explicitFlags["carve"] {
		c.CarvePassages = f.CarvePassages
	}
	if !explicitFlags["passage-radius"] {
		c.PassageRadius = f.PassageRadius
	}
	if !explicitFlags["border"] {
		c.BorderSize = f.BorderSize
	}
	if !explicitFlags["square-size"] {
		c.SquareSize = f.SquareSize
	}
	if !explicitFlags["wall-height"] {
		c.WallHeight = f.WallHeight
	}

	if !explicitFlags["o"] {
		cfg.Output = fromFile.Output
	}
	if !explicitFlags["format"] {
		cfg.Format = fromFile.Format
	}
	if !explicitFlags["preview"] {
		cfg.Preview = fromFile.Preview
	}
	if !explicitFlags["listen"] {
		cfg.Listen = fromFile.Listen
	}
	if !explicitFlags["preset"] {
		cfg.PresetURL = fromFile.PresetURL
	}
}
