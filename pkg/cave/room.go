package cave

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Room is an open region that survived pruning, plus its place in the room
// connectivity graph. Rooms reference each other by ID, which is the room's
// index in the slice returned by NewRooms.
type Room struct {
	ID        int
	Tiles     []Coord
	EdgeTiles []Coord
	// Connected lists neighbor room IDs in the order the links were made.
	Connected []int

	IsMainRoom               bool
	IsAccessibleFromMainRoom bool

	links mapset.Set[int]
}

// Size returns the number of tiles in the room.
func (r *Room) Size() int { return len(r.Tiles) }

// IsConnected reports whether a direct link to room id exists.
func (r *Room) IsConnected(id int) bool {
	return r.links.Has(id)
}

// newRoom builds a room from a region, collecting the tiles that touch a
// Solid cell along one of the 4 axes.
func newRoom(region Region, g *Grid) *Room {
	r := &Room{
		Tiles: region.Tiles,
		links: mapset.New[int](),
	}
	for _, t := range region.Tiles {
		for _, d := range axial {
			if g.At(t.X+d.X, t.Y+d.Y) == Solid {
				r.EdgeTiles = append(r.EdgeTiles, t)
				break
			}
		}
	}
	return r
}

// NewRooms turns surviving open regions into rooms sorted by descending size
// (stable, so equal sizes keep discovery order). The first room becomes the
// main room and is marked accessible.
func NewRooms(g *Grid, regions []Region) []*Room {
	rooms := make([]*Room, 0, len(regions))
	for _, reg := range regions {
		rooms = append(rooms, newRoom(reg, g))
	}
	slices.SortStableFunc(rooms, func(a, b *Room) int {
		return cmp.Compare(b.Size(), a.Size())
	})
	for i, r := range rooms {
		r.ID = i
	}
	if len(rooms) > 0 {
		rooms[0].IsMainRoom = true
		rooms[0].IsAccessibleFromMainRoom = true
	}
	return rooms
}

// linkRooms records an undirected edge between a and b. If either side is
// already reachable from the main room, the other side's component becomes
// reachable too.
func linkRooms(rooms []*Room, a, b *Room) {
	if a.IsAccessibleFromMainRoom {
		markAccessible(rooms, b)
	} else if b.IsAccessibleFromMainRoom {
		markAccessible(rooms, a)
	}
	if !a.links.Has(b.ID) {
		a.links.Put(b.ID)
		a.Connected = append(a.Connected, b.ID)
	}
	if !b.links.Has(a.ID) {
		b.links.Put(a.ID)
		b.Connected = append(b.Connected, a.ID)
	}
}

func markAccessible(rooms []*Room, start *Room) {
	if start.IsAccessibleFromMainRoom {
		return
	}
	start.IsAccessibleFromMainRoom = true
	stack := []*Room{start}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, id := range r.Connected {
			n := rooms[id]
			if n.IsAccessibleFromMainRoom {
				continue
			}
			n.IsAccessibleFromMainRoom = true
			stack = append(stack, n)
		}
	}
}

// Reachable returns the IDs of every room reachable from room id by walking
// Connected links, including id itself.
func Reachable(rooms []*Room, id int) mapset.Set[int] {
	seen := mapset.New[int]()
	if id < 0 || id >= len(rooms) {
		return seen
	}
	seen.Put(id)
	queue := []int{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range rooms[cur].Connected {
			if seen.Has(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}
