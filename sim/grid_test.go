package sim

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestOccupyVacate(t *testing.T) {
	g := NewGrid(4, 4, false)
	a := &Agent{ID: 1, Income: 50}

	if err := g.Occupy(Cell{X: 1, Y: 2}, a); err != nil {
		t.Fatalf("Occupy failed: %v", err)
	}
	if a.X != 1 || a.Y != 2 {
		t.Errorf("agent coordinates = (%d,%d), want (1,2)", a.X, a.Y)
	}
	if got := g.Occupant(Cell{X: 1, Y: 2}); got != a {
		t.Errorf("Occupant = %v, want agent 1", got)
	}
	if g.OccupiedCount() != 1 || g.VacantCount() != 15 {
		t.Errorf("counts = %d occupied, %d vacant", g.OccupiedCount(), g.VacantCount())
	}

	// Double occupancy is an invariant violation
	b := &Agent{ID: 2, Income: 60}
	err := g.Occupy(Cell{X: 1, Y: 2}, b)
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("Occupy on occupied cell = %v, want InvariantError", err)
	}

	if err := g.Vacate(Cell{X: 1, Y: 2}); err != nil {
		t.Fatalf("Vacate failed: %v", err)
	}
	if g.Occupant(Cell{X: 1, Y: 2}) != nil {
		t.Error("cell still occupied after Vacate")
	}
	if g.VacantCount() != 16 {
		t.Errorf("VacantCount = %d, want 16", g.VacantCount())
	}

	if err := g.Vacate(Cell{X: 1, Y: 2}); !errors.As(err, &inv) {
		t.Errorf("Vacate on vacant cell = %v, want InvariantError", err)
	}
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		wrap   bool
		cell   Cell
		radius int
		want   int
	}{
		{"clipped corner", 5, 5, false, Cell{X: 0, Y: 0}, 1, 3},
		{"clipped edge", 5, 5, false, Cell{X: 2, Y: 0}, 1, 5},
		{"clipped center", 5, 5, false, Cell{X: 2, Y: 2}, 1, 8},
		{"clipped center radius 2", 5, 5, false, Cell{X: 2, Y: 2}, 2, 24},
		{"wrapped corner", 5, 5, true, Cell{X: 0, Y: 0}, 1, 8},
		{"wrapped small torus", 3, 3, true, Cell{X: 0, Y: 0}, 1, 8},
		// Window larger than the torus: every other cell exactly once
		{"wrapped dedupe", 3, 3, true, Cell{X: 1, Y: 1}, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.w, tt.h, tt.wrap)
			got := g.Neighbors(tt.cell, tt.radius)
			if len(got) != tt.want {
				t.Fatalf("len(Neighbors) = %d, want %d", len(got), tt.want)
			}
			seen := make(map[Cell]struct{}, len(got))
			for _, c := range got {
				if c == tt.cell {
					t.Errorf("neighborhood contains the center cell %v", c)
				}
				if _, dup := seen[c]; dup {
					t.Errorf("duplicate neighbor %v", c)
				}
				seen[c] = struct{}{}
				if c.X < 0 || c.X >= tt.w || c.Y < 0 || c.Y >= tt.h {
					t.Errorf("neighbor %v out of bounds", c)
				}
			}
		})
	}
}

func TestSampleVacant(t *testing.T) {
	g := NewGrid(4, 4, false)
	occupied := []Cell{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	for i, c := range occupied {
		if err := g.Occupy(c, &Agent{ID: i, Income: 10}); err != nil {
			t.Fatalf("Occupy failed: %v", err)
		}
	}

	rng := rand.New(rand.NewPCG(7, 0))
	sample := g.SampleVacant(5, rng)
	if len(sample) != 5 {
		t.Fatalf("len(sample) = %d, want 5", len(sample))
	}
	seen := make(map[Cell]struct{})
	for _, c := range sample {
		if g.Occupant(c) != nil {
			t.Errorf("sampled occupied cell %v", c)
		}
		if _, dup := seen[c]; dup {
			t.Errorf("duplicate sampled cell %v", c)
		}
		seen[c] = struct{}{}
	}

	// Oversized request returns the whole vacant set
	all := g.SampleVacant(100, rng)
	if len(all) != 12 {
		t.Errorf("len(sample) = %d, want all 12 vacant cells", len(all))
	}

	// Same seed, same draw
	g2 := NewGrid(4, 4, false)
	for i, c := range occupied {
		g2.Occupy(c, &Agent{ID: i, Income: 10})
	}
	a := g.SampleVacant(3, rand.New(rand.NewPCG(99, 0)))
	b := g2.SampleVacant(3, rand.New(rand.NewPCG(99, 0)))
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sample[%d] = %v vs %v, want identical draws for identical seeds", i, a[i], b[i])
		}
	}
}

func TestVacantIndexStaysConsistent(t *testing.T) {
	g := NewGrid(6, 6, true)
	rng := rand.New(rand.NewPCG(3, 0))

	agents := make([]*Agent, 0, 12)
	for i := 0; i < 12; i++ {
		c := g.SampleVacant(1, rng)[0]
		a := &Agent{ID: i, Income: float64(i + 1)}
		if err := g.Occupy(c, a); err != nil {
			t.Fatalf("Occupy failed: %v", err)
		}
		agents = append(agents, a)
	}

	// Shuffle agents around and re-check the bookkeeping each time
	for step := 0; step < 50; step++ {
		a := agents[rng.IntN(len(agents))]
		dest := g.SampleVacant(1, rng)
		if len(dest) == 0 {
			t.Fatal("no vacant cells left")
		}
		if err := g.Vacate(a.Cell()); err != nil {
			t.Fatalf("Vacate failed: %v", err)
		}
		if err := g.Occupy(dest[0], a); err != nil {
			t.Fatalf("Occupy failed: %v", err)
		}

		if g.OccupiedCount()+g.VacantCount() != 36 {
			t.Fatalf("occupied %d + vacant %d != 36", g.OccupiedCount(), g.VacantCount())
		}
		for _, ag := range agents {
			if g.Occupant(ag.Cell()) != ag {
				t.Fatalf("agent %d not found at its own cell %v", ag.ID, ag.Cell())
			}
		}
	}
}
