package cave

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func testConfig(seed string) Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 48, 32
	cfg.Seed = seed
	cfg.WallThreshold, cfg.RoomThreshold = 20, 20
	return cfg
}

func TestRunDeterministic(t *testing.T) {
	cfg := testConfig("deterministic")
	a, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed produced different levels")
	}

	cfg.Seed = "something else"
	c, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Grid.Equal(c.Grid) {
		t.Error("different seeds produced the same grid")
	}
}

func TestRunNoiseModesDeterministic(t *testing.T) {
	for _, mode := range []string{FillSimplex, FillPerlin} {
		t.Run(mode, func(t *testing.T) {
			cfg := testConfig("noise")
			cfg.FillMode = mode
			a, err := Run(cfg)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			b, err := Run(cfg)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !a.Bordered.Equal(b.Bordered) {
				t.Error("noise fill not deterministic")
			}
		})
	}
}

func TestRunAllRoomsReachable(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "caves", "42", "deep"} {
		lvl, err := Run(testConfig(seed))
		if err != nil {
			t.Fatalf("seed %q: Run: %v", seed, err)
		}
		if len(lvl.Rooms) == 0 {
			continue
		}
		if got := Reachable(lvl.Rooms, 0).Size(); got != len(lvl.Rooms) {
			t.Errorf("seed %q: %d of %d rooms reachable from main", seed, got, len(lvl.Rooms))
		}
		for _, r := range lvl.Rooms {
			if !r.IsAccessibleFromMainRoom {
				t.Errorf("seed %q: room %d not marked accessible", seed, r.ID)
			}
		}
		for i := 1; i < len(lvl.Rooms); i++ {
			if lvl.Rooms[i].Size() > lvl.Rooms[i-1].Size() {
				t.Errorf("seed %q: rooms not sorted by size at %d", seed, i)
			}
		}
	}
}

func TestRunPrunesBelowThreshold(t *testing.T) {
	for _, seed := range []string{"p1", "p2", "p3"} {
		cfg := testConfig(seed)
		lvl, err := Run(cfg)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		for _, r := range Regions(lvl.Grid, Open) {
			if r.Size() < cfg.RoomThreshold {
				t.Errorf("seed %q: open region of %d tiles survived", seed, r.Size())
			}
		}
		if len(lvl.Rooms) == 0 && lvl.Grid.Count(Open) > 0 {
			t.Errorf("seed %q: open tiles left with no rooms", seed)
		}
	}
}

func TestRunRoomsMatchRegions(t *testing.T) {
	lvl, err := Run(testConfig("roundtrip"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var fromRegions, fromRooms [][]Coord
	for _, r := range Regions(lvl.Grid, Open) {
		fromRegions = append(fromRegions, sortedTiles(r.Tiles))
	}
	for _, r := range lvl.Rooms {
		fromRooms = append(fromRooms, sortedTiles(r.Tiles))
	}
	less := func(a, b []Coord) int { return compareCoord(a[0], b[0]) }
	slices.SortFunc(fromRegions, less)
	slices.SortFunc(fromRooms, less)

	if !reflect.DeepEqual(fromRegions, fromRooms) {
		t.Error("room tiles differ from a fresh flood fill of the final grid")
	}
}

func TestRunOutlines(t *testing.T) {
	lvl, err := Run(testConfig("outlines"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lvl.Outlines) == 0 {
		t.Fatal("no outlines traced")
	}

	seen := make(map[int]bool)
	for i, o := range lvl.Outlines {
		if len(o) < 3 {
			t.Errorf("outline %d has %d entries, want at least 3", i, len(o))
			continue
		}
		if o[0] != o[len(o)-1] {
			t.Errorf("outline %d is not closed: %d..%d", i, o[0], o[len(o)-1])
		}
		for _, v := range o[:len(o)-1] {
			if seen[v] {
				t.Errorf("vertex %d used by more than one outline", v)
			}
			seen[v] = true
		}
	}

	wantWallTris := 0
	for _, o := range lvl.Outlines {
		wantWallTris += 2 * (len(o) - 1)
	}
	if got := lvl.Walls.TriangleCount(); got != wantWallTris {
		t.Errorf("wall triangles = %d, want %d", got, wantWallTris)
	}
}

func TestRunSingleRoomExample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.FillPercent = 0
	cfg.Steps = 0
	cfg.WallThreshold, cfg.RoomThreshold = 1, 1

	lvl, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lvl.Rooms) != 1 || lvl.Rooms[0].Size() != 9 {
		t.Fatalf("rooms = %d, want one room of 9 tiles", len(lvl.Rooms))
	}
	if len(lvl.Connections) != 0 {
		t.Errorf("connections = %d, want 0", len(lvl.Connections))
	}
	if lvl.Bordered.Width != 7 || lvl.Bordered.Height != 7 {
		t.Errorf("bordered = %dx%d, want 7x7", lvl.Bordered.Width, lvl.Bordered.Height)
	}
	if len(lvl.Outlines) != 1 {
		t.Errorf("outlines = %d, want 1", len(lvl.Outlines))
	}
	if lvl.Floor.TriangleCount() == 0 {
		t.Error("floor mesh is empty")
	}
}

func TestRunDegenerate(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {2, 10}, {10, 1}} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = size[0], size[1]

		lvl, err := Run(cfg)
		if err != nil {
			t.Fatalf("%dx%d: Run: %v", size[0], size[1], err)
		}
		if len(lvl.Rooms) != 0 || len(lvl.Connections) != 0 {
			t.Errorf("%dx%d: got %d rooms, %d connections, want none", size[0], size[1], len(lvl.Rooms), len(lvl.Connections))
		}
		if lvl.Floor.TriangleCount() != 0 || lvl.Walls.TriangleCount() != 0 {
			t.Errorf("%dx%d: got non-empty meshes", size[0], size[1])
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BirthLimit = 12
	if _, err := Run(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Run = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewGenerator(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewGenerator = %v, want ErrInvalidConfig", err)
	}
}

func TestGeneratorBusy(t *testing.T) {
	g, err := NewGenerator(testConfig("busy"))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	g.mu.Lock()
	_, err = g.Generate()
	g.mu.Unlock()
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Generate while locked = %v, want ErrBusy", err)
	}

	if _, err := g.Generate(); err != nil {
		t.Fatalf("Generate after unlock: %v", err)
	}
}

func TestGeneratorSeeds(t *testing.T) {
	cfg := testConfig("fixed")
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	lvl, err := g.GenerateSeed("override")
	if err != nil {
		t.Fatalf("GenerateSeed: %v", err)
	}
	if lvl.Seed != "override" {
		t.Errorf("Seed = %q, want %q", lvl.Seed, "override")
	}

	cfg.RandomSeed = true
	g, err = NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	lvl, err = g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if lvl.Seed == "" || lvl.Seed == "fixed" {
		t.Errorf("random seed mode used seed %q", lvl.Seed)
	}
}

func sortedTiles(tiles []Coord) []Coord {
	out := slices.Clone(tiles)
	slices.SortFunc(out, compareCoord)
	return out
}

func compareCoord(a, b Coord) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}
