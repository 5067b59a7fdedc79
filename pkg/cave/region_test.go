package cave

import (
	"slices"
	"testing"
)

// carve opens the rectangle [x0,x1]×[y0,y1] in g.
func carve(g *Grid, x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			g.Set(x, y, Open)
		}
	}
}

func solidGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	g.Fill(Solid)
	return g
}

func TestRegionsFourConnected(t *testing.T) {
	// The two open cells touch only diagonally.
	g := ParseGrid(
		"####",
		"#.##",
		"##.#",
		"####",
	)
	open := Regions(g, Open)
	if len(open) != 2 {
		t.Fatalf("Regions(Open) = %d regions, want 2 (diagonals do not connect)", len(open))
	}
	walls := Regions(g, Solid)
	if len(walls) != 1 {
		t.Fatalf("Regions(Solid) = %d regions, want 1", len(walls))
	}
	if walls[0].Size() != 14 {
		t.Errorf("wall region size = %d, want 14", walls[0].Size())
	}
}

func TestRegionsCoverEveryCellOnce(t *testing.T) {
	g := RandomFill(40, 30, 45, "cover")
	Automaton{DeathLimit: 4, BirthLimit: 4}.Run(g, 3)

	for _, state := range []Cell{Open, Solid} {
		seen := make(map[Coord]bool)
		for _, r := range Regions(g, state) {
			for _, tile := range r.Tiles {
				if seen[tile] {
					t.Fatalf("tile %v appears in two regions", tile)
				}
				if g.At(tile.X, tile.Y) != state {
					t.Fatalf("tile %v has state %d, want %d", tile, g.At(tile.X, tile.Y), state)
				}
				seen[tile] = true
			}
		}
		if len(seen) != g.Count(state) {
			t.Errorf("regions of state %d cover %d tiles, want %d", state, len(seen), g.Count(state))
		}
	}
}

func TestPruneRegions(t *testing.T) {
	g := solidGrid(20, 10)
	carve(g, 1, 1, 3, 3)   // 9 tiles
	carve(g, 10, 2, 16, 8) // 49 tiles

	kept, pruned := PruneRegions(g, Open, 10)
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if len(kept) != 1 || kept[0].Size() != 49 {
		t.Fatalf("kept = %d regions, want one of size 49", len(kept))
	}
	if g.At(2, 2) != Solid {
		t.Error("small room was not filled in")
	}
}

func TestProcessRegionsSmallRoomsRemoved(t *testing.T) {
	g := solidGrid(40, 20)
	carve(g, 2, 2, 11, 7)    // 60 tiles, main room
	carve(g, 20, 2, 24, 3)   // 10 tiles
	carve(g, 30, 12, 34, 13) // 10 tiles

	rooms, stats := ProcessRegions(g, 50, 50)
	if stats.WallRegionsPruned != 0 {
		t.Errorf("WallRegionsPruned = %d, want 0", stats.WallRegionsPruned)
	}
	if stats.RoomRegionsPruned != 2 {
		t.Errorf("RoomRegionsPruned = %d, want 2", stats.RoomRegionsPruned)
	}
	if len(rooms) != 1 || rooms[0].Size() != 60 {
		t.Fatalf("surviving rooms = %d, want one of size 60", len(rooms))
	}

	built := NewRooms(g, rooms)
	conns := Connector{Grid: g, SquareSize: 1}.Connect(built)
	if len(conns) != 0 {
		t.Errorf("connections = %d, want 0 for a single room", len(conns))
	}
	if !built[0].IsMainRoom || !built[0].IsAccessibleFromMainRoom {
		t.Error("only room must be the accessible main room")
	}
}

func TestProcessRegionsWallsBeforeRooms(t *testing.T) {
	// A single-tile pillar sits inside a 57-tile room. Pruning it first
	// brings the room up to exactly the room threshold.
	g := solidGrid(21, 5)
	carve(g, 1, 1, 19, 3)
	g.Set(10, 2, Solid)

	rooms, stats := ProcessRegions(g, 5, 57)
	if stats.WallRegionsPruned != 1 {
		t.Errorf("WallRegionsPruned = %d, want 1", stats.WallRegionsPruned)
	}
	if stats.RoomRegionsPruned != 0 {
		t.Errorf("RoomRegionsPruned = %d, want 0", stats.RoomRegionsPruned)
	}
	if len(rooms) != 1 || rooms[0].Size() != 57 {
		t.Fatalf("rooms = %v, want one room of 57 tiles", roomSizes(rooms))
	}
	if g.At(10, 2) != Open {
		t.Error("pillar was not removed")
	}
}

func TestSingleRoomExample(t *testing.T) {
	g := RandomFill(5, 5, 0, "example")
	rooms, stats := ProcessRegions(g, 1, 1)

	if stats.WallRegionsPruned != 0 || stats.RoomRegionsPruned != 0 {
		t.Errorf("pruned = %+v, want nothing pruned", stats)
	}
	if len(rooms) != 1 || rooms[0].Size() != 9 {
		t.Fatalf("rooms = %v, want one room of 9 tiles", roomSizes(rooms))
	}

	b := g.Bordered(1)
	for x := 0; x < b.Width; x++ {
		if b.At(x, 0) != Solid || b.At(x, b.Height-1) != Solid {
			t.Fatalf("bordered grid has open cell on row edge at x=%d", x)
		}
	}
}

func roomSizes(regions []Region) []int {
	sizes := make([]int, 0, len(regions))
	for _, r := range regions {
		sizes = append(sizes, r.Size())
	}
	slices.Sort(sizes)
	return sizes
}
