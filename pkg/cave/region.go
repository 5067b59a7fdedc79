package cave

// Region is a maximal 4-connected set of same-state tiles.
type Region struct {
	State Cell
	Tiles []Coord
}

// Size returns the number of tiles in the region.
func (r Region) Size() int { return len(r.Tiles) }

// axial holds the 4 orthogonal neighbor offsets used by flood fill.
var axial = [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Regions partitions every cell of the given state into 4-connected regions.
// The outer scan is column-major (x, then y); callers must not depend on the
// order of the returned regions.
func Regions(g *Grid, state Cell) []Region {
	visited := make([]bool, len(g.cells))
	var regions []Region
	queue := make([]Coord, 0, 64)

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			idx := y*g.Width + x
			if visited[idx] || g.cells[idx] != state {
				continue
			}

			var tiles []Coord
			visited[idx] = true
			queue = append(queue[:0], Coord{x, y})
			for len(queue) > 0 {
				tile := queue[0]
				queue = queue[1:]
				tiles = append(tiles, tile)

				for _, d := range axial {
					nx, ny := tile.X+d.X, tile.Y+d.Y
					if !g.InBounds(nx, ny) {
						continue
					}
					nidx := ny*g.Width + nx
					if visited[nidx] || g.cells[nidx] != state {
						continue
					}
					visited[nidx] = true
					queue = append(queue, Coord{nx, ny})
				}
			}
			regions = append(regions, Region{State: state, Tiles: tiles})
		}
	}
	return regions
}

// PruneRegions flips every region of the given state smaller than threshold
// to the opposite state. It returns the surviving regions and how many were
// flipped.
func PruneRegions(g *Grid, state Cell, threshold int) (kept []Region, pruned int) {
	for _, r := range Regions(g, state) {
		if r.Size() >= threshold {
			kept = append(kept, r)
			continue
		}
		for _, t := range r.Tiles {
			g.Set(t.X, t.Y, state.Opposite())
		}
		pruned++
	}
	return kept, pruned
}

// PruneStats summarises one pruning pass.
type PruneStats struct {
	WallRegionsPruned int
	RoomRegionsPruned int
}

// ProcessRegions prunes small wall regions, then small room regions, on the
// same grid, and returns the surviving open regions. Wall pruning runs first
// so that removed pillars can merge neighbouring rooms before rooms are
// measured.
func ProcessRegions(g *Grid, wallThreshold, roomThreshold int) ([]Region, PruneStats) {
	var st PruneStats
	_, st.WallRegionsPruned = PruneRegions(g, Solid, wallThreshold)
	rooms, prunedRooms := PruneRegions(g, Open, roomThreshold)
	st.RoomRegionsPruned = prunedRooms
	return rooms, st
}
