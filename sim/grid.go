package sim

import (
	"fmt"
	"math/rand/v2"
)

// Cell addresses one grid square by integer coordinates.
type Cell struct {
	X int
	Y int
}

// Grid is a fixed-size 2D lattice where each cell holds at most one agent.
// A vacant-cell index is kept in lockstep with occupancy so that relocation
// candidates can be sampled uniformly from the whole grid in O(k).
type Grid struct {
	Width  int
	Height int
	Wrap   bool // toroidal neighborhoods when true, clipped at edges when false

	cells    []*Agent // row-major occupancy
	vacant   []Cell   // unordered set of currently vacant cells
	vacantAt []int    // per-cell position in vacant, -1 when occupied
}

// NewGrid allocates an empty grid; every cell starts vacant.
func NewGrid(width, height int, wrap bool) *Grid {
	g := &Grid{
		Width:    width,
		Height:   height,
		Wrap:     wrap,
		cells:    make([]*Agent, width*height),
		vacant:   make([]Cell, 0, width*height),
		vacantAt: make([]int, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.vacantAt[g.index(x, y)] = len(g.vacant)
			g.vacant = append(g.vacant, Cell{X: x, Y: y})
		}
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

// Occupant returns the agent at c, or nil if the cell is vacant.
func (g *Grid) Occupant(c Cell) *Agent {
	return g.cells[g.index(c.X, c.Y)]
}

// VacantCount returns the number of vacant cells.
func (g *Grid) VacantCount() int { return len(g.vacant) }

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int { return g.Width*g.Height - len(g.vacant) }

// Occupy places a into c, removes c from the vacant set, and updates the
// agent's coordinates. Occupying a non-vacant cell is an invariant violation.
func (g *Grid) Occupy(c Cell, a *Agent) error {
	i := g.index(c.X, c.Y)
	if g.cells[i] != nil {
		return &InvariantError{
			Op:     "occupy",
			Detail: fmt.Sprintf("cell (%d,%d) already holds agent %d", c.X, c.Y, g.cells[i].ID),
		}
	}
	g.cells[i] = a
	g.removeVacant(i)
	a.X, a.Y = c.X, c.Y
	return nil
}

// Vacate empties c and returns it to the vacant set.
func (g *Grid) Vacate(c Cell) error {
	i := g.index(c.X, c.Y)
	if g.cells[i] == nil {
		return &InvariantError{
			Op:     "vacate",
			Detail: fmt.Sprintf("cell (%d,%d) is already vacant", c.X, c.Y),
		}
	}
	g.cells[i] = nil
	g.vacantAt[i] = len(g.vacant)
	g.vacant = append(g.vacant, c)
	return nil
}

func (g *Grid) removeVacant(i int) {
	pos := g.vacantAt[i]
	last := len(g.vacant) - 1
	moved := g.vacant[last]
	g.vacant[pos] = moved
	g.vacantAt[g.index(moved.X, moved.Y)] = pos
	g.vacant = g.vacant[:last]
	g.vacantAt[i] = -1
}

// Neighbors returns the Moore neighborhood of c: every cell within Chebyshev
// distance radius, excluding c itself. With Wrap the lattice is toroidal;
// otherwise out-of-bounds coordinates are clipped away. On a torus smaller
// than the neighborhood window, wrapped offsets can collide, so cells are
// deduplicated in that case.
func (g *Grid) Neighbors(c Cell, radius int) []Cell {
	out := make([]Cell, 0, (2*radius+1)*(2*radius+1)-1)
	dedupe := g.Wrap && (2*radius+1 > g.Width || 2*radius+1 > g.Height)
	var seen map[Cell]struct{}
	if dedupe {
		seen = make(map[Cell]struct{})
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := c.X+dx, c.Y+dy
			if g.Wrap {
				x = (x%g.Width + g.Width) % g.Width
				y = (y%g.Height + g.Height) % g.Height
			} else if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
				continue
			}
			nc := Cell{X: x, Y: y}
			if dedupe {
				if nc == c {
					continue
				}
				if _, ok := seen[nc]; ok {
					continue
				}
				seen[nc] = struct{}{}
			}
			out = append(out, nc)
		}
	}
	return out
}

// SampleVacant draws up to k distinct vacant cells uniformly at random from
// the entire grid's vacant set. The draw is a partial Fisher-Yates over the
// vacant index, so it is O(k) and without replacement.
func (g *Grid) SampleVacant(k int, rng *rand.Rand) []Cell {
	n := len(g.vacant)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	out := make([]Cell, k)
	for i := 0; i < k; i++ {
		g.swapVacant(i, i+rng.IntN(n-i))
		out[i] = g.vacant[i]
	}
	return out
}

func (g *Grid) swapVacant(i, j int) {
	if i == j {
		return
	}
	ci, cj := g.vacant[i], g.vacant[j]
	g.vacant[i], g.vacant[j] = cj, ci
	g.vacantAt[g.index(ci.X, ci.Y)] = j
	g.vacantAt[g.index(cj.X, cj.Y)] = i
}
