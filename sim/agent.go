package sim

// Agent is a resident with a fixed income and a mutable tolerance threshold.
// The population is fixed: agents are created once at initialization and
// never destroyed during a run.
type Agent struct {
	ID        int
	Income    float64 // positive, immutable after creation
	Threshold float64 // minimum satisfaction fraction to stay put, in [0, 1]
	HasMoved  bool    // set on first relocation

	// Current cell coordinates, kept in sync with the grid occupancy by the
	// relocation policy (the sole mutator of both sides).
	X, Y int
}

// Cell returns the agent's current cell.
func (a *Agent) Cell() Cell {
	return Cell{X: a.X, Y: a.Y}
}
