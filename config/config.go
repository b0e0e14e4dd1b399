// Package config provides configuration loading and validation for the
// relocation simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Income     IncomeConfig     `yaml:"income"`
	Relocation RelocationConfig `yaml:"relocation"`
	Run        RunConfig        `yaml:"run"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// GridConfig holds lattice dimensions and initial occupancy.
type GridConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Density    float64 `yaml:"density"`    // fraction of cells initially occupied, in (0, 1]
	Wraparound bool    `yaml:"wraparound"` // toroidal neighborhoods when true, clipped at edges when false
	Radius     int     `yaml:"radius"`     // Moore neighborhood radius (Chebyshev distance)
}

// IncomeConfig holds the log-normal income distribution parameters.
type IncomeConfig struct {
	Mu        float64 `yaml:"mu"`        // location of the underlying normal
	Sigma     float64 `yaml:"sigma"`     // scale of the underlying normal, must be > 0
	Normalize bool    `yaml:"normalize"` // squash raw draws to (0, 1) via x/(1+x)
}

// RelocationConfig holds the satisfaction and movement parameters.
type RelocationConfig struct {
	SimilarityTolerance float64 `yaml:"similarity_tolerance"`  // relative income tolerance for "similar"
	CandidateSampleSize int     `yaml:"candidate_sample_size"` // vacant cells sampled per relocation decision
	RelocationCost      float64 `yaml:"relocation_cost"`       // flat cost of one move, in utility units
	UtilityScale        float64 `yaml:"utility_scale"`         // utility units per unit of satisfaction-fraction gain
	ThresholdDecay      float64 `yaml:"threshold_decay"`       // threshold multiplier applied after each move, in [0, 1)
}

// RunConfig holds run-level settings.
type RunConfig struct {
	Seed     int64 `yaml:"seed"`      // 0 = time-based in the CLI driver
	MaxSteps int   `yaml:"max_steps"` // step bound for runs that never converge
}

// TelemetryConfig holds telemetry settings.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every"` // steps between slog stats lines (0 = every step)
}

// FieldError reports a configuration value outside its legal range. It is the
// only error class a caller sees from building an engine; retrying with a
// corrected config recovers.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks every parameter range the engine relies on.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 {
		return &FieldError{Field: "grid.width", Reason: "must be positive"}
	}
	if c.Grid.Height <= 0 {
		return &FieldError{Field: "grid.height", Reason: "must be positive"}
	}
	if c.Grid.Density <= 0 || c.Grid.Density > 1 {
		return &FieldError{Field: "grid.density", Reason: "must be in (0, 1]"}
	}
	if c.Grid.Radius < 1 {
		return &FieldError{Field: "grid.radius", Reason: "must be at least 1"}
	}
	if math.IsNaN(c.Income.Mu) || math.IsInf(c.Income.Mu, 0) {
		return &FieldError{Field: "income.mu", Reason: "must be finite"}
	}
	if c.Income.Sigma <= 0 || math.IsNaN(c.Income.Sigma) {
		return &FieldError{Field: "income.sigma", Reason: "must be positive"}
	}
	if c.Relocation.SimilarityTolerance < 0 || c.Relocation.SimilarityTolerance > 1 {
		return &FieldError{Field: "relocation.similarity_tolerance", Reason: "must be in [0, 1]"}
	}
	if c.Relocation.CandidateSampleSize < 1 {
		return &FieldError{Field: "relocation.candidate_sample_size", Reason: "must be at least 1"}
	}
	if c.Relocation.RelocationCost < 0 {
		return &FieldError{Field: "relocation.relocation_cost", Reason: "must be non-negative"}
	}
	if c.Relocation.UtilityScale <= 0 {
		return &FieldError{Field: "relocation.utility_scale", Reason: "must be positive"}
	}
	if c.Relocation.ThresholdDecay < 0 || c.Relocation.ThresholdDecay >= 1 {
		return &FieldError{Field: "relocation.threshold_decay", Reason: "must be in [0, 1)"}
	}
	if c.Run.MaxSteps < 0 {
		return &FieldError{Field: "run.max_steps", Reason: "must be non-negative"}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
