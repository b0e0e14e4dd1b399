// Package sim implements the residential relocation engine: a discrete-time
// simulation of agents on a lattice who move when too few of their neighbors
// are income-similar relative to their personal tolerance threshold.
package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"enclave/config"
)

// Engine owns the full simulation state: the grid, the agent population, the
// scheduler, and the run-scoped random source. All randomness (initial
// placement, income and threshold draws, activation order, candidate
// sampling, tie-breaking) flows through that single source, so a seed plus a
// config fixes the entire trajectory bit for bit.
type Engine struct {
	cfg    *config.Config
	grid   *Grid
	agents []*Agent
	sched  Scheduler
	rng    *rand.Rand
	seed   int64

	step      int
	converged bool
	last      StepStats
}

// New builds an engine from configuration. It returns a config.FieldError
// when a parameter is out of range; the engine is untouched and the caller
// can retry with a corrected config.
func New(cfg *config.Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewPCG(uint64(seed), 0)
	rng := rand.New(src)

	sampler, err := NewIncomeSampler(cfg.Income.Mu, cfg.Income.Sigma, cfg.Income.Normalize, src)
	if err != nil {
		return nil, err
	}

	g := NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Wraparound)

	// Each cell is seeded independently with probability density, so the
	// realized population varies slightly around density*area.
	var sites []Cell
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if rng.Float64() < cfg.Grid.Density {
				sites = append(sites, Cell{X: x, Y: y})
			}
		}
	}

	incomes := sampler.Sample(len(sites))
	thresholds := distuv.Uniform{Min: 0, Max: 1, Src: src}

	agents := make([]*Agent, len(sites))
	for i, c := range sites {
		a := &Agent{ID: i, Income: incomes[i], Threshold: thresholds.Rand()}
		if err := g.Occupy(c, a); err != nil {
			return nil, err
		}
		agents[i] = a
	}

	return &Engine{
		cfg:    cfg,
		grid:   g,
		agents: agents,
		rng:    rng,
		seed:   seed,
		sched: Scheduler{Policy: RelocationPolicy{
			SampleSize:     cfg.Relocation.CandidateSampleSize,
			Radius:         cfg.Grid.Radius,
			Tolerance:      cfg.Relocation.SimilarityTolerance,
			UtilityScale:   cfg.Relocation.UtilityScale,
			RelocationCost: cfg.Relocation.RelocationCost,
			DecayFactor:    cfg.Relocation.ThresholdDecay,
		}},
	}, nil
}

// Step advances the simulation by one tick and returns the step metrics.
// Stepping an already-converged engine is a no-op: the previous metrics are
// returned with zero moves and the step counter does not advance.
func (e *Engine) Step() (StepStats, error) {
	if e.converged {
		stats := e.last
		stats.Moves = 0
		return stats, nil
	}
	stats, err := e.sched.Step(e.grid, e.agents, e.step+1, e.rng)
	if err != nil {
		return StepStats{}, err
	}
	e.step++
	e.last = stats
	if stats.Moves == 0 {
		e.converged = true
	}
	return stats, nil
}

// Run advances up to n steps, stopping early when a step completes with zero
// moves. Convergence is a termination condition, not an error.
func (e *Engine) Run(n int) ([]StepStats, error) {
	out := make([]StepStats, 0, n)
	for i := 0; i < n; i++ {
		stats, err := e.Step()
		if err != nil {
			return out, err
		}
		out = append(out, stats)
		if stats.Moves == 0 {
			break
		}
	}
	return out, nil
}

// Reset rebuilds the engine from scratch with a new (or the same) seed. On a
// validation error the existing state is left untouched.
func (e *Engine) Reset(cfg *config.Config, seed int64) error {
	fresh, err := New(cfg, seed)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Segregation returns the current mean similar-neighbor fraction.
func (e *Engine) Segregation() float64 {
	return SegregationIndex(e.grid, e.agents, e.cfg.Grid.Radius, e.cfg.Relocation.SimilarityTolerance)
}

// Grid exposes the lattice for read-only inspection.
func (e *Engine) Grid() *Grid { return e.grid }

// Agents returns the agent population in creation order. Callers must treat
// the agents as read-only; only the engine mutates them.
func (e *Engine) Agents() []*Agent { return e.agents }

// StepCount returns the number of completed steps.
func (e *Engine) StepCount() int { return e.step }

// Converged reports whether the last completed step made zero moves.
func (e *Engine) Converged() bool { return e.converged }

// Seed returns the seed this engine was built with.
func (e *Engine) Seed() int64 { return e.seed }
