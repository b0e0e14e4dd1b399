package main

import (
	"enclave/config"
	"enclave/sim"
)

// badFitness is returned for parameter vectors the engine rejects.
const badFitness = 1e9

// FitnessEvaluator runs headless simulations and scores parameter vectors.
// Fitness is the negated mean final segregation index across seeds, so lower
// is better for the minimizer.
type FitnessEvaluator struct {
	params *ParamVector
	base   *config.Config
	seeds  []int64
	steps  int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, seeds []int64, steps int) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, base: base, seeds: seeds, steps: steps}
}

// Evaluate computes fitness for a clamped raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.base
	cfg.Relocation.SimilarityTolerance = raw[0]
	cfg.Relocation.UtilityScale = raw[1]
	cfg.Relocation.ThresholdDecay = raw[2]

	var total float64
	for _, seed := range fe.seeds {
		engine, err := sim.New(&cfg, seed)
		if err != nil {
			return badFitness
		}
		if _, err := engine.Run(fe.steps); err != nil {
			return badFitness
		}
		total += engine.Segregation()
	}
	return -total / float64(len(fe.seeds))
}
