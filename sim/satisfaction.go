package sim

// Similar reports whether two incomes fall within the relative tolerance of
// one another. A one-sided 10% rule is not symmetric (it depends on whose
// income is the denominator), so the engine's documented convention is that
// the relation holds if it holds from either side: |a-b| <= tol*max(a,b).
func Similar(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	m := a
	if b > m {
		m = b
	}
	return d <= tol*m
}

// SatisfactionFraction computes the share of occupied neighbor cells around c
// whose occupants are income-similar to a. The agent itself is skipped, which
// makes the same function usable for hypothetical evaluation of a vacant cell
// the agent does not yet occupy.
//
// With zero occupied neighbors the fraction is undefined; the engine treats
// the agent as fully satisfied (fraction 1), since an empty neighborhood
// offers no evidence of dissimilarity. That convention matters on sparse
// grids: isolated agents settle rather than drift.
func SatisfactionFraction(g *Grid, a *Agent, c Cell, radius int, tol float64) float64 {
	occupied, similar := 0, 0
	for _, nc := range g.Neighbors(c, radius) {
		nb := g.Occupant(nc)
		if nb == nil || nb == a {
			continue
		}
		occupied++
		if Similar(a.Income, nb.Income, tol) {
			similar++
		}
	}
	if occupied == 0 {
		return 1
	}
	return float64(similar) / float64(occupied)
}

// IsSatisfied reports whether a at cell c meets its own threshold.
func IsSatisfied(g *Grid, a *Agent, c Cell, radius int, tol float64) bool {
	return SatisfactionFraction(g, a, c, radius, tol) >= a.Threshold
}

// SegregationIndex is the mean similar-neighbor fraction over all agents at
// their current cells. Rising values over a run indicate income clustering.
func SegregationIndex(g *Grid, agents []*Agent, radius int, tol float64) float64 {
	if len(agents) == 0 {
		return 0
	}
	var sum float64
	for _, a := range agents {
		sum += SatisfactionFraction(g, a, a.Cell(), radius, tol)
	}
	return sum / float64(len(agents))
}
