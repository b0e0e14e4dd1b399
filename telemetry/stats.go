// Package telemetry turns engine step results into loggable and exportable
// metrics records for headless runs and the external dashboard.
package telemetry

import "log/slog"

// StepRecord is the per-step metrics row written to steps.csv.
type StepRecord struct {
	Step             int     `csv:"step"`
	Moves            int     `csv:"moves"`
	TotalMoves       int     `csv:"total_moves"`
	MeanSatisfaction float64 `csv:"mean_satisfaction"`
	SatisfiedShare   float64 `csv:"satisfied_share"`
	MoverShare       float64 `csv:"mover_share"` // share of agents that have moved at least once

	// Threshold distribution, tracking tolerance decay across the population
	ThresholdMean float64 `csv:"threshold_mean"`
	ThresholdP10  float64 `csv:"threshold_p10"`
	ThresholdP50  float64 `csv:"threshold_p50"`
	ThresholdP90  float64 `csv:"threshold_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice by linear
// interpolation. p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LogValue implements slog.LogValuer for structured logging.
func (r StepRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", r.Step),
		slog.Int("moves", r.Moves),
		slog.Int("total_moves", r.TotalMoves),
		slog.Float64("mean_satisfaction", r.MeanSatisfaction),
		slog.Float64("satisfied_share", r.SatisfiedShare),
		slog.Float64("mover_share", r.MoverShare),
		slog.Float64("threshold_mean", r.ThresholdMean),
		slog.Float64("threshold_p10", r.ThresholdP10),
		slog.Float64("threshold_p50", r.ThresholdP50),
		slog.Float64("threshold_p90", r.ThresholdP90),
	)
}

// LogStats logs the step record using slog.
func (r StepRecord) LogStats() {
	slog.Info("stats",
		"step", r.Step,
		"moves", r.Moves,
		"total_moves", r.TotalMoves,
		"mean_satisfaction", r.MeanSatisfaction,
		"satisfied_share", r.SatisfiedShare,
		"mover_share", r.MoverShare,
		"threshold_mean", r.ThresholdMean,
		"threshold_p10", r.ThresholdP10,
		"threshold_p50", r.ThresholdP50,
		"threshold_p90", r.ThresholdP90,
	)
}
