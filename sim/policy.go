package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// RelocationPolicy decides whether an unsatisfied agent moves, where to, and
// how its threshold adapts afterward. It is the sole mutator of grid
// occupancy and agent position, so both sides of that relationship stay in
// sync.
type RelocationPolicy struct {
	SampleSize     int     // vacant candidates considered per decision
	Radius         int     // Moore neighborhood radius
	Tolerance      float64 // relative income similarity tolerance
	UtilityScale   float64 // utility units per unit of satisfaction-fraction gain
	RelocationCost float64 // flat cost of one move, in utility units
	DecayFactor    float64 // threshold multiplier applied after each move
}

// Apply evaluates relocation for an unsatisfied agent and reports whether it
// moved. Candidates are sampled grid-wide, the best hypothetical satisfaction
// wins with uniform random tie-breaking, and the move happens only when the
// fraction gain, scaled by UtilityScale, exceeds the relocation cost.
// Applying the policy to a satisfied agent is an invariant violation.
func (p *RelocationPolicy) Apply(g *Grid, a *Agent, rng *rand.Rand) (bool, error) {
	cur := a.Cell()
	curFrac := SatisfactionFraction(g, a, cur, p.Radius, p.Tolerance)
	if curFrac >= a.Threshold {
		return false, &InvariantError{
			Op:     "relocate",
			Detail: fmt.Sprintf("agent %d is satisfied at (%d,%d)", a.ID, cur.X, cur.Y),
		}
	}

	candidates := g.SampleVacant(p.SampleSize, rng)
	if len(candidates) == 0 {
		return false, nil
	}

	// Ties are broken uniformly at random among the maximizers, never by
	// coordinate or sampling order, to avoid directional drift.
	bestFrac := math.Inf(-1)
	best := make([]Cell, 0, len(candidates))
	for _, c := range candidates {
		f := SatisfactionFraction(g, a, c, p.Radius, p.Tolerance)
		switch {
		case f > bestFrac:
			bestFrac = f
			best = append(best[:0], c)
		case f == bestFrac:
			best = append(best, c)
		}
	}
	dest := best[rng.IntN(len(best))]

	if (bestFrac-curFrac)*p.UtilityScale <= p.RelocationCost {
		return false, nil
	}

	if err := g.Vacate(cur); err != nil {
		return false, err
	}
	if err := g.Occupy(dest, a); err != nil {
		return false, err
	}
	a.HasMoved = true
	a.Threshold *= p.DecayFactor
	if a.Threshold < 0 {
		a.Threshold = 0
	}
	return true, nil
}
