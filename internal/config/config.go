package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNcomp        = 2
	DefaultOmega        = 5.0
	DefaultDuration     = 1.5
	DefaultFreq         = 5.0
	DefaultAmp          = 1.0
	DefaultRate         = 0.05
	DefaultMaxIter      = 300
	DefaultTol          = 1e-9
	DefaultTrotterSteps = 1000
)

// Config describes one pulse-optimization run.
type Config struct {
	// System
	Spins      int     `yaml:"spins"`       // ensemble size; 1 means a single system
	Ncomp      int     `yaml:"ncomp"`       // drive Fourier components (controls = 2*ncomp)
	Omega      float64 `yaml:"omega"`       // angular driving frequency
	Freq       float64 `yaml:"freq"`        // nominal level splitting
	Amp        float64 `yaml:"amp"`         // nominal drive amplitude
	FreqSpread float64 `yaml:"freq_spread"` // uniform disorder half-width on freq
	AmpSpread  float64 `yaml:"amp_spread"`  // uniform disorder half-width on amp

	// Pulse
	Duration float64 `yaml:"duration"`
	Target   string  `yaml:"target"`

	// Optimizer
	Optimizer string  `yaml:"optimizer"`
	MaxIter   int     `yaml:"max_iter"`
	Rate      float64 `yaml:"rate"`
	Tol       float64 `yaml:"tol"`

	// Numerics
	TrotterSteps  int     `yaml:"trotter_steps"`
	PenaltyWeight float64 `yaml:"penalty_weight"`

	Seed int64 `yaml:"seed"`
}

func Default() Config {
	return Config{
		Spins:        1,
		Ncomp:        DefaultNcomp,
		Omega:        DefaultOmega,
		Freq:         DefaultFreq,
		Amp:          DefaultAmp,
		Duration:     DefaultDuration,
		Target:       "x",
		Optimizer:    "adam",
		MaxIter:      DefaultMaxIter,
		Rate:         DefaultRate,
		Tol:          DefaultTol,
		TrotterSteps: DefaultTrotterSteps,
	}
}

// Load reads a yaml file over the defaults, so partial files are fine.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Spins < 1 {
		return fmt.Errorf("config: spins must be at least 1, got %d", c.Spins)
	}
	if c.Ncomp < 1 {
		return fmt.Errorf("config: ncomp must be at least 1, got %d", c.Ncomp)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Omega <= 0 {
		return fmt.Errorf("config: omega must be positive, got %g", c.Omega)
	}
	return nil
}

// Controls returns the number of control parameters implied by the drive.
func (c Config) Controls() int { return 2 * c.Ncomp }
