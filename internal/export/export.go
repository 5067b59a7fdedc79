// Package export serialises generated levels for consumers outside the
// generator: mesh viewers, game engines and terminals.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/OCharnyshevich/cave-generator/internal/config"
	"github.com/OCharnyshevich/cave-generator/pkg/cave"
	"github.com/OCharnyshevich/cave-generator/pkg/mesh"
)

// Document is the JSON form of a level.
type Document struct {
	Seed   string `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Grid holds the bordered grid, one string per row, '#' for wall.
	Grid []string `json:"grid"`

	Rooms       []RoomData       `json:"rooms"`
	Connections []ConnectionData `json:"connections"`
	Pruned      PruneData        `json:"pruned"`

	Floor    *mesh.Mesh `json:"floor"`
	Walls    *mesh.Mesh `json:"walls"`
	Outlines [][]int    `json:"outlines"`
}

// RoomData summarises one room.
type RoomData struct {
	ID         int   `json:"id"`
	Size       int   `json:"size"`
	Main       bool  `json:"main"`
	Accessible bool  `json:"accessible"`
	Connected  []int `json:"connected"`
}

// ConnectionData is one room link.
type ConnectionData struct {
	RoomA  int       `json:"room_a"`
	RoomB  int       `json:"room_b"`
	TileA  [2]int    `json:"tile_a"`
	TileB  [2]int    `json:"tile_b"`
	PointA mesh.Vec3 `json:"point_a"`
	PointB mesh.Vec3 `json:"point_b"`
}

// PruneData counts the regions removed during cleanup.
type PruneData struct {
	Walls int `json:"walls"`
	Rooms int `json:"rooms"`
}

// NewDocument builds the JSON form of lvl.
func NewDocument(lvl *cave.Level) *Document {
	d := &Document{
		Seed:        lvl.Seed,
		Width:       lvl.Bordered.Width,
		Height:      lvl.Bordered.Height,
		Rooms:       make([]RoomData, 0, len(lvl.Rooms)),
		Connections: make([]ConnectionData, 0, len(lvl.Connections)),
		Pruned: PruneData{
			Walls: lvl.Pruned.WallRegionsPruned,
			Rooms: lvl.Pruned.RoomRegionsPruned,
		},
		Floor:    lvl.Floor,
		Walls:    lvl.Walls,
		Outlines: lvl.Outlines,
	}
	if d.Outlines == nil {
		d.Outlines = [][]int{}
	}

	for _, row := range lvl.Bordered.Rows() {
		b := make([]byte, len(row))
		for i, c := range row {
			b[i] = '.'
			if c == cave.Solid {
				b[i] = '#'
			}
		}
		d.Grid = append(d.Grid, string(b))
	}

	for _, r := range lvl.Rooms {
		connected := r.Connected
		if connected == nil {
			connected = []int{}
		}
		d.Rooms = append(d.Rooms, RoomData{
			ID:         r.ID,
			Size:       r.Size(),
			Main:       r.IsMainRoom,
			Accessible: r.IsAccessibleFromMainRoom,
			Connected:  connected,
		})
	}
	for _, c := range lvl.Connections {
		d.Connections = append(d.Connections, ConnectionData{
			RoomA:  c.RoomA,
			RoomB:  c.RoomB,
			TileA:  [2]int{c.TileA.X, c.TileA.Y},
			TileB:  [2]int{c.TileB.X, c.TileB.Y},
			PointA: c.PointA,
			PointB: c.PointB,
		})
	}
	return d
}

// Write serialises lvl to w in the given format.
func Write(w io.Writer, format string, lvl *cave.Level) error {
	switch format {
	case config.FormatOBJ:
		return WriteOBJ(w, lvl)
	case config.FormatJSON:
		return WriteJSON(w, lvl)
	case config.FormatASCII:
		return WriteASCII(w, lvl)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteOBJ writes the floor and wall meshes as two OBJ objects.
func WriteOBJ(w io.Writer, lvl *cave.Level) error {
	ow := NewOBJWriter(w)
	ow.Comment("cave seed " + lvl.Seed)
	ow.Object("floor", lvl.Floor)
	ow.Object("walls", lvl.Walls)
	if err := ow.Err(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// WriteJSON writes the level document as indented JSON.
func WriteJSON(w io.Writer, lvl *cave.Level) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(lvl)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteASCII writes the bordered grid, '#' for wall and '.' for floor.
func WriteASCII(w io.Writer, lvl *cave.Level) error {
	if _, err := io.WriteString(w, lvl.Bordered.String()); err != nil {
		return fmt.Errorf("write ascii: %w", err)
	}
	return nil
}
