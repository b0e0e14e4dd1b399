package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"enclave/config"
)

// IncomeSampler draws agent incomes from a log-normal distribution, the
// standard heavy-right-tailed shape for income data. With normalize set,
// each raw draw x is squashed to x/(1+x) so incomes live in (0, 1).
type IncomeSampler struct {
	dist      distuv.LogNormal
	normalize bool
}

// NewIncomeSampler builds a sampler with location mu and scale sigma of the
// underlying normal. Sigma must be positive; the support is positive for any
// finite mu.
func NewIncomeSampler(mu, sigma float64, normalize bool, src rand.Source) (*IncomeSampler, error) {
	if sigma <= 0 || sigma != sigma {
		return nil, &config.FieldError{Field: "income.sigma", Reason: "must be positive"}
	}
	return &IncomeSampler{
		dist:      distuv.LogNormal{Mu: mu, Sigma: sigma, Src: src},
		normalize: normalize,
	}, nil
}

// Sample draws n incomes. Every returned value is strictly positive.
func (s *IncomeSampler) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := s.dist.Rand()
		if s.normalize {
			x = x / (1 + x)
		}
		out[i] = x
	}
	return out
}
