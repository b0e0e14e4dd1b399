package sim

import "math/rand/v2"

// schedState tracks whether an activation pass is in flight.
type schedState int

const (
	stateIdle schedState = iota
	stateStepping
)

// StepStats summarizes one completed simulation step.
type StepStats struct {
	Step             int
	Moves            int
	MeanSatisfaction float64 // mean satisfaction fraction across agents, post-step
	SatisfiedShare   float64 // share of agents meeting their threshold, post-step
}

// Scheduler drives one simulation step: a fresh uniform random activation
// order, then the satisfaction check and relocation policy per agent,
// strictly one agent at a time.
type Scheduler struct {
	Policy RelocationPolicy

	state schedState
}

// Step activates every agent exactly once in a freshly drawn permutation.
// Grid mutations from earlier activations are visible to later ones; that
// sequential, order-dependent evaluation is part of the model, so agents must
// never be evaluated concurrently within a step.
func (s *Scheduler) Step(g *Grid, agents []*Agent, step int, rng *rand.Rand) (StepStats, error) {
	s.state = stateStepping
	defer func() { s.state = stateIdle }()

	moves := 0
	for _, i := range rng.Perm(len(agents)) {
		a := agents[i]
		if IsSatisfied(g, a, a.Cell(), s.Policy.Radius, s.Policy.Tolerance) {
			continue
		}
		moved, err := s.Policy.Apply(g, a, rng)
		if err != nil {
			return StepStats{}, err
		}
		if moved {
			moves++
		}
	}

	stats := StepStats{Step: step, Moves: moves}
	if len(agents) > 0 {
		satisfied := 0
		var sum float64
		for _, a := range agents {
			f := SatisfactionFraction(g, a, a.Cell(), s.Policy.Radius, s.Policy.Tolerance)
			sum += f
			if f >= a.Threshold {
				satisfied++
			}
		}
		stats.MeanSatisfaction = sum / float64(len(agents))
		stats.SatisfiedShare = float64(satisfied) / float64(len(agents))
	}
	return stats, nil
}
