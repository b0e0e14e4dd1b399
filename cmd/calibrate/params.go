// Package main provides Nelder-Mead calibration of relocation parameters
// toward maximal final segregation.
package main

// ParamSpec defines a single calibratable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all calibratable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of calibratable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "similarity_tolerance", Path: "relocation.similarity_tolerance", Min: 0.02, Max: 0.30, Default: 0.10},
			{Name: "utility_scale", Path: "relocation.utility_scale", Min: 2.0, Max: 50.0, Default: 10.0},
			{Name: "threshold_decay", Path: "relocation.threshold_decay", Min: 0.50, Max: 0.99, Default: 0.90},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default raw parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Default
	}
	return out
}

// Clamp bounds raw values to each parameter's [Min, Max].
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		spec := pv.Specs[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// Normalize maps raw values into [0, 1] per dimension.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		spec := pv.Specs[i]
		out[i] = (v - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0, 1] values back into raw parameter space.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		spec := pv.Specs[i]
		out[i] = spec.Min + v*(spec.Max-spec.Min)
	}
	return out
}
