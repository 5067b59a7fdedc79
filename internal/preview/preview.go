// Package preview draws generated levels in a terminal and regenerates them
// on key press.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cave-generator/pkg/cave"
)

// Generator produces levels; *cave.Generator satisfies it.
type Generator interface {
	GenerateSeed(seed string) (*cave.Level, error)
}

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor   = tcell.StyleDefault
	styleMain    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePassage = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

const (
	runeWall    = '█'
	runeFloor   = ' '
	runeMain    = '·'
	runePassage = '+'
)

// Previewer owns the terminal while a preview session runs.
type Previewer struct {
	screen tcell.Screen
	gen    Generator
	log    *slog.Logger

	level       *cave.Level
	err         error
	connections bool
}

// New creates a Previewer drawing on screen. The screen must already be
// initialised; the caller keeps ownership and calls Fini.
func New(screen tcell.Screen, gen Generator, log *slog.Logger) *Previewer {
	return &Previewer{
		screen:      screen,
		gen:         gen,
		log:         log,
		connections: true,
	}
}

// Level returns the level currently shown.
func (p *Previewer) Level() *cave.Level { return p.level }

// Run shows the level for seed and processes key presses until the user
// quits or ctx is cancelled.
//
//	r        regenerate with a new random seed
//	c        toggle connection overlay
//	q, Esc   quit
func (p *Previewer) Run(ctx context.Context, seed string) error {
	p.regenerate(seed)
	p.Draw()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent so the loop can observe cancellation.
			_ = p.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := p.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if !p.HandleEvent(ev) {
			return nil
		}
		p.Draw()
	}
}

// HandleEvent applies one terminal event. It returns false when the session
// should end.
func (p *Previewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			p.regenerate(cave.TimeSeed())
		case 'c':
			p.connections = !p.connections
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Previewer) regenerate(seed string) {
	lvl, err := p.gen.GenerateSeed(seed)
	if err != nil {
		if errors.Is(err, cave.ErrBusy) {
			p.log.Debug("regeneration skipped", "error", err)
		} else {
			p.log.Error("generate level", "seed", seed, "error", err)
		}
		p.err = err
		return
	}
	p.level, p.err = lvl, nil
}

// Draw renders the current level and status line. Cells outside the screen
// are clipped.
func (p *Previewer) Draw() {
	p.screen.Clear()
	width, height := p.screen.Size()

	if lvl := p.level; lvl != nil {
		g := lvl.Bordered
		border := lvl.Config.BorderSize
		mainRoom := make(map[cave.Coord]bool)
		if len(lvl.Rooms) > 0 {
			for _, t := range lvl.Rooms[0].Tiles {
				mainRoom[t] = true
			}
		}

		for y := 0; y < g.Height && y < height-1; y++ {
			for x := 0; x < g.Width && x < width; x++ {
				switch {
				case g.At(x, y) == cave.Solid:
					p.screen.SetContent(x, y, runeWall, nil, styleWall)
				case mainRoom[cave.Coord{X: x - border, Y: y - border}]:
					p.screen.SetContent(x, y, runeMain, nil, styleMain)
				default:
					p.screen.SetContent(x, y, runeFloor, nil, styleFloor)
				}
			}
		}

		if p.connections {
			for _, c := range lvl.Connections {
				for _, t := range cave.Line(c.TileA, c.TileB) {
					x, y := t.X+border, t.Y+border
					if x < width && y < height-1 {
						p.screen.SetContent(x, y, runePassage, nil, stylePassage)
					}
				}
			}
		}
	}

	p.drawStatus(width, height)
	p.screen.Show()
}

func (p *Previewer) drawStatus(width, height int) {
	style := styleStatus
	var line string
	switch {
	case p.err != nil:
		style = styleError
		line = fmt.Sprintf(" %v  [r]egenerate [q]uit", p.err)
	case p.level != nil:
		line = fmt.Sprintf(" seed %s  rooms %d  connections %d  [r]egenerate [c]onnections [q]uit",
			p.level.Seed, len(p.level.Rooms), len(p.level.Connections))
	default:
		line = " no level"
	}

	x := 0
	for _, r := range line {
		if x >= width {
			break
		}
		p.screen.SetContent(x, height-1, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		p.screen.SetContent(x, height-1, ' ', nil, style)
	}
}
