package cave

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"github.com/aquilax/go-perlin"
)

// SeedValue hashes a seed string into the integer seed of the random source.
func SeedValue(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// TimeSeed returns a seed string derived from the current time.
func TimeSeed() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// RandomFill builds the initial noisy grid. The outer ring is always Solid;
// each interior cell is Solid when its sample falls below fillPercent.
func RandomFill(width, height, fillPercent int, seed string) *Grid {
	rng := rand.New(rand.NewSource(SeedValue(seed)))
	return fillWith(width, height, func(int, int) bool {
		return rng.Intn(100) < fillPercent
	})
}

// NoiseFill is RandomFill with samples drawn from coherent noise instead of
// independent draws, which yields larger blobs before any smoothing.
func NoiseFill(width, height, fillPercent int, seed, mode string, scale float64) *Grid {
	sv := SeedValue(seed)

	var sample func(x, y float64) float64
	switch mode {
	case FillPerlin:
		p := perlin.NewPerlin(2, 2, 3, sv)
		sample = p.Noise2D
	default:
		s := newSimplex(sv)
		sample = func(x, y float64) float64 { return s.octave2D(x, y, 4) }
	}

	return fillWith(width, height, func(x, y int) bool {
		v := sample(float64(x)*scale, float64(y)*scale)
		// [-1, 1] -> [0, 100)
		pct := (min(1, max(-1, v)) + 1) * 50
		return pct < float64(fillPercent)
	})
}

// Fill builds the initial grid for cfg using its fill mode.
func Fill(cfg Config) *Grid {
	switch cfg.FillMode {
	case FillSimplex, FillPerlin:
		return NoiseFill(cfg.Width, cfg.Height, cfg.FillPercent, cfg.Seed, cfg.FillMode, cfg.NoiseScale)
	default:
		return RandomFill(cfg.Width, cfg.Height, cfg.FillPercent, cfg.Seed)
	}
}

func fillWith(width, height int, solid func(x, y int) bool) *Grid {
	g := NewGrid(width, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 || x == width-1 || y == 0 || y == height-1 || solid(x, y) {
				g.Set(x, y, Solid)
			}
		}
	}
	return g
}
