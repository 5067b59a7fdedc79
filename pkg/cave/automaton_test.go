package cave

import "testing"

func TestSolidNeighborsCountsOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3)

	tests := []struct {
		x, y int
		want int
	}{
		{1, 1, 0}, // centre, all neighbors inside and open
		{0, 0, 5}, // corner: 5 neighbors off the map
		{1, 0, 3}, // edge: 3 neighbors off the map
	}
	for _, tt := range tests {
		if got := SolidNeighbors(g, tt.x, tt.y); got != tt.want {
			t.Errorf("SolidNeighbors(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAutomatonTieKeepsState(t *testing.T) {
	// The centre (2,2) has exactly 4 solid neighbors.
	rows := []string{
		".....",
		".###.",
		".#X..",
		".....",
		".....",
	}
	a := Automaton{DeathLimit: 4, BirthLimit: 4}

	for _, state := range []Cell{Open, Solid} {
		g := ParseGrid(rows...)
		g.Set(2, 2, state)
		if n := SolidNeighbors(g, 2, 2); n != 4 {
			t.Fatalf("SolidNeighbors(2,2) = %d, want 4", n)
		}
		if got := a.Next(g, 2, 2); got != state {
			t.Errorf("Next with 4 neighbors from %d = %d, want unchanged", state, got)
		}
	}
}

func TestAutomatonRules(t *testing.T) {
	a := Automaton{DeathLimit: 3, BirthLimit: 5}

	tests := []struct {
		name  string
		rows  []string
		state Cell
		want  Cell
	}{
		{
			name:  "solid with 2 neighbors dies",
			rows:  []string{".....", ".##..", ".....", ".....", "....."},
			state: Solid,
			want:  Open,
		},
		{
			name:  "solid with 3 neighbors survives",
			rows:  []string{".....", ".###.", ".....", ".....", "....."},
			state: Solid,
			want:  Solid,
		},
		{
			name:  "open with 5 neighbors stays open",
			rows:  []string{".....", ".###.", ".#.#.", ".....", "....."},
			state: Open,
			want:  Open,
		},
		{
			name:  "open with 6 neighbors is born",
			rows:  []string{".....", ".###.", ".#.#.", ".#...", "....."},
			state: Open,
			want:  Solid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ParseGrid(tt.rows...)
			g.Set(2, 2, tt.state)
			if got := a.Next(g, 2, 2); got != tt.want {
				t.Errorf("Next(2,2) = %d, want %d (neighbors %d)", got, tt.want, SolidNeighbors(g, 2, 2))
			}
		})
	}
}

func TestAutomatonStepReadsPreStepSnapshot(t *testing.T) {
	a := Automaton{DeathLimit: 4, BirthLimit: 4}
	for _, seed := range []string{"a", "b", "c", "d"} {
		src := RandomFill(30, 20, 48, seed)
		before := src.Clone()
		dst := NewGrid(src.Width, src.Height)

		a.Step(src, dst)

		if !src.Equal(before) {
			t.Fatalf("seed %q: Step modified its source grid", seed)
		}
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				if want := a.Next(before, x, y); dst.At(x, y) != want {
					t.Fatalf("seed %q: cell (%d,%d) = %d, want %d from pre-step grid", seed, x, y, dst.At(x, y), want)
				}
			}
		}
	}
}

func TestAutomatonDiffersFromInPlaceUpdate(t *testing.T) {
	// (2,2) is born this step. Updated in place it would push (3,3) over
	// the birth limit within the same pass.
	g := ParseGrid(
		".......",
		".#.....",
		"...#...",
		"..#....",
		".......",
		".......",
		".......",
	)
	a := Automaton{DeathLimit: 1, BirthLimit: 2}
	a.Run(g, 1)

	if g.At(2, 2) != Solid {
		t.Errorf("(2,2) with 3 solid neighbors = %d, want Solid", g.At(2, 2))
	}
	if g.At(3, 3) != Open {
		t.Errorf("(3,3) with 2 solid neighbors before the step = %d, want Open", g.At(3, 3))
	}
}

func TestAutomatonRunZeroSteps(t *testing.T) {
	g := RandomFill(16, 16, 50, "zero")
	before := g.Clone()
	Automaton{DeathLimit: 4, BirthLimit: 4}.Run(g, 0)
	if !g.Equal(before) {
		t.Error("Run with 0 steps changed the grid")
	}
}

func TestAutomatonRunMatchesRepeatedSteps(t *testing.T) {
	a := Automaton{DeathLimit: 4, BirthLimit: 4}
	g := RandomFill(25, 25, 45, "steps")

	manual := g.Clone()
	for range 3 {
		next := NewGrid(manual.Width, manual.Height)
		a.Step(manual, next)
		manual = next
	}

	a.Run(g, 3)
	if !g.Equal(manual) {
		t.Error("Run(3) differs from three explicit steps")
	}
}
