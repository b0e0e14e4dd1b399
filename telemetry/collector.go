package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"enclave/sim"
)

// Collector folds per-step engine results into telemetry records, tracking
// run-cumulative counters across steps.
type Collector struct {
	totalMoves int
}

// Observe combines one step's results with the current population state into
// a StepRecord.
func (c *Collector) Observe(stats sim.StepStats, agents []*sim.Agent) StepRecord {
	c.totalMoves += stats.Moves

	rec := StepRecord{
		Step:             stats.Step,
		Moves:            stats.Moves,
		TotalMoves:       c.totalMoves,
		MeanSatisfaction: stats.MeanSatisfaction,
		SatisfiedShare:   stats.SatisfiedShare,
	}
	if len(agents) == 0 {
		return rec
	}

	thresholds := make([]float64, len(agents))
	movers := 0
	for i, a := range agents {
		thresholds[i] = a.Threshold
		if a.HasMoved {
			movers++
		}
	}
	sort.Float64s(thresholds)

	rec.MoverShare = float64(movers) / float64(len(agents))
	rec.ThresholdMean = stat.Mean(thresholds, nil)
	rec.ThresholdP10 = Percentile(thresholds, 0.10)
	rec.ThresholdP50 = Percentile(thresholds, 0.50)
	rec.ThresholdP90 = Percentile(thresholds, 0.90)
	return rec
}

// TotalMoves returns the cumulative move count observed so far.
func (c *Collector) TotalMoves() int { return c.totalMoves }

// IncomeSummary describes the population income distribution for run records.
type IncomeSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	P10  float64 `json:"p10"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
}

// SummarizeIncomes computes distribution statistics over agent incomes.
func SummarizeIncomes(agents []*sim.Agent) IncomeSummary {
	if len(agents) == 0 {
		return IncomeSummary{}
	}
	incomes := make([]float64, len(agents))
	for i, a := range agents {
		incomes[i] = a.Income
	}
	sort.Float64s(incomes)
	var std float64
	if len(incomes) > 1 {
		std = stat.StdDev(incomes, nil)
	}
	return IncomeSummary{
		Mean: stat.Mean(incomes, nil),
		Std:  std,
		P10:  Percentile(incomes, 0.10),
		P50:  Percentile(incomes, 0.50),
		P90:  Percentile(incomes, 0.90),
	}
}
