package cave

import "github.com/OCharnyshevich/cave-generator/pkg/mesh"

// markerHeight is the height of connection marker points above the floor.
const markerHeight = 2

// Connection is one accepted room link and the tile pair it was made through.
type Connection struct {
	RoomA, RoomB int
	TileA, TileB Coord
	// PointA and PointB are the world-space centres of TileA and TileB.
	PointA, PointB mesh.Vec3
}

// Connector repairs room connectivity so that every room is reachable from
// the main room.
type Connector struct {
	Grid       *Grid
	SquareSize float64

	// Carve opens a walkable corridor along each connection. Without it only
	// the graph is updated and the grid is left untouched.
	Carve         bool
	PassageRadius int
}

type roomPair struct {
	a, b         *Room
	tileA, tileB Coord
}

// Connect links the rooms in two phases and returns the connections in the
// order they were made.
//
// Phase one gives every still-isolated room a link to its closest room.
// Phase two repeatedly links the closest pair between the rooms that cannot
// reach the main room and those that can, until everything is reachable or
// no candidate pair is left.
func (c Connector) Connect(rooms []*Room) []Connection {
	if len(rooms) < 2 {
		return nil
	}
	var conns []Connection

	for _, a := range rooms {
		if len(a.Connected) > 0 {
			continue
		}
		if p, ok := closestPair([]*Room{a}, rooms); ok {
			conns = append(conns, c.link(rooms, p))
		}
	}

	for {
		var from, to []*Room
		for _, r := range rooms {
			if r.IsAccessibleFromMainRoom {
				to = append(to, r)
			} else {
				from = append(from, r)
			}
		}
		if len(from) == 0 {
			break
		}
		p, ok := closestPair(from, to)
		if !ok {
			break
		}
		conns = append(conns, c.link(rooms, p))
	}
	return conns
}

// closestPair finds the pair of edge tiles with the smallest squared distance
// between a room in as and a different, not yet linked room in bs. The first
// candidate is always taken; later ones replace it only when strictly closer.
func closestPair(as, bs []*Room) (roomPair, bool) {
	var (
		best     roomPair
		bestDist int
		found    bool
	)
	for _, a := range as {
		for _, b := range bs {
			if a == b || a.IsConnected(b.ID) {
				continue
			}
			for _, ta := range a.EdgeTiles {
				for _, tb := range b.EdgeTiles {
					dx, dy := ta.X-tb.X, ta.Y-tb.Y
					d := dx*dx + dy*dy
					if d < bestDist || !found {
						bestDist = d
						best = roomPair{a: a, b: b, tileA: ta, tileB: tb}
						found = true
					}
				}
			}
		}
	}
	return best, found
}

func (c Connector) link(rooms []*Room, p roomPair) Connection {
	linkRooms(rooms, p.a, p.b)
	if c.Carve {
		for _, pt := range Line(p.tileA, p.tileB) {
			c.openDisc(pt, c.PassageRadius)
		}
	}
	return Connection{
		RoomA:  p.a.ID,
		RoomB:  p.b.ID,
		TileA:  p.tileA,
		TileB:  p.tileB,
		PointA: c.worldPoint(p.tileA),
		PointB: c.worldPoint(p.tileB),
	}
}

func (c Connector) worldPoint(t Coord) mesh.Vec3 {
	s := c.SquareSize
	if s == 0 {
		s = 1
	}
	return mesh.Vec3{
		X: (-float64(c.Grid.Width)/2 + 0.5 + float64(t.X)) * s,
		Y: markerHeight,
		Z: (-float64(c.Grid.Height)/2 + 0.5 + float64(t.Y)) * s,
	}
}

func (c Connector) openDisc(centre Coord, r int) {
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx*dx+dy*dy <= r*r {
				c.Grid.Set(centre.X+dx, centre.Y+dy, Open)
			}
		}
	}
}

// Line returns the grid tiles on the straight line from a to b, both
// included, stepping one tile along the longer axis at a time.
func Line(a, b Coord) []Coord {
	dx, dy := b.X-a.X, b.Y-a.Y
	step, gradStep := sign(dx), sign(dy)
	longest, shortest := abs(dx), abs(dy)
	inverted := false
	if longest < shortest {
		inverted = true
		longest, shortest = shortest, longest
		step, gradStep = gradStep, step
	}

	line := make([]Coord, 0, longest+1)
	x, y := a.X, a.Y
	acc := longest / 2
	for range longest {
		line = append(line, Coord{x, y})
		if inverted {
			y += step
		} else {
			x += step
		}
		acc += shortest
		if acc >= longest {
			if inverted {
				x += gradStep
			} else {
				y += gradStep
			}
			acc -= longest
		}
	}
	return append(line, Coord{x, y})
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
