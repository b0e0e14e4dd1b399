package sim

// CellView is one occupied cell in a snapshot.
type CellView struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	AgentID   int     `json:"agent_id"`
	Income    float64 `json:"income"`
	Threshold float64 `json:"threshold"`
	HasMoved  bool    `json:"has_moved"`
}

// Snapshot is a read-only copy of the engine state for external consumers
// such as a rendering layer. Mutating it has no effect on the engine.
type Snapshot struct {
	Step      int        `json:"step"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Seed      int64      `json:"seed"`
	Converged bool       `json:"converged"`
	Cells     []CellView `json:"cells"`
}

// Snapshot captures the current state. Cells are listed in agent creation
// order, so two snapshots of identical states compare equal.
func (e *Engine) Snapshot() Snapshot {
	cells := make([]CellView, len(e.agents))
	for i, a := range e.agents {
		cells[i] = CellView{
			X:         a.X,
			Y:         a.Y,
			AgentID:   a.ID,
			Income:    a.Income,
			Threshold: a.Threshold,
			HasMoved:  a.HasMoved,
		}
	}
	return Snapshot{
		Step:      e.step,
		Width:     e.grid.Width,
		Height:    e.grid.Height,
		Seed:      e.seed,
		Converged: e.converged,
		Cells:     cells,
	}
}
