// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig        `yaml:"grid"`
	Run        RunConfig         `yaml:"run"`
	Thresholds ThresholdsConfig  `yaml:"thresholds"`
	Loadings   LoadingsConfig    `yaml:"loadings"`
	Costs      CostsConfig       `yaml:"costs"`
	Behavior   BehaviorConfig    `yaml:"behavior"`
	Report     ReportConfig      `yaml:"report"`
	Archetypes []ArchetypeConfig `yaml:"archetypes"`
}

// GridConfig holds environment generation parameters.
type GridConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	Barriers       int `yaml:"barriers"`        // Number of vertical barrier lines
	GapsMin        int `yaml:"gaps_min"`        // Min gaps per barrier
	GapsMax        int `yaml:"gaps_max"`        // Max gaps per barrier
	GapHalfwidth   int `yaml:"gap_halfwidth"`   // Cells cleared either side of a gap row
	ScatterDivisor int `yaml:"scatter_divisor"` // Scattered obstacles = width*height / this
	SpawnWidth     int `yaml:"spawn_width"`     // Obstacle-free columns on the left edge
	GoalCount      int `yaml:"goal_count"`      // Goals placed near the right edge
}

// RunConfig holds run-level parameters.
type RunConfig struct {
	MaxTicks    int `yaml:"max_ticks"`
	Population  int `yaml:"population"`
	TickDelayMS int `yaml:"tick_delay_ms"` // Sleep between ticks for external renderers (0 = off)
}

// ThresholdsConfig holds the classification thresholds on the derived scores.
type ThresholdsConfig struct {
	ToxicCore      float64 `yaml:"toxic_core"`      // Core above this = Toxic
	MaverickCore   float64 `yaml:"maverick_core"`   // Core above this (with high residual) = Maverick
	AgencyResidual float64 `yaml:"agency_residual"` // Residual above this = agentic
}

// LoadingsConfig holds the factor loadings for core-score extraction.
type LoadingsConfig struct {
	Psychopathy      float64 `yaml:"psychopathy"`
	Sadism           float64 `yaml:"sadism"`
	Machiavellianism float64 `yaml:"machiavellianism"`
	Narcissism       float64 `yaml:"narcissism"`
}

// CostsConfig holds per-action energy costs.
type CostsConfig struct {
	Move             float64 `yaml:"move"`
	Transgression    float64 `yaml:"transgression"`
	Sabotage         float64 `yaml:"sabotage"`
	Wait             float64 `yaml:"wait"`
	DetectionPenalty float64 `yaml:"detection_penalty"`
}

// BehaviorConfig holds decision-policy constants.
type BehaviorConfig struct {
	InitialEnergy        float64 `yaml:"initial_energy"`
	BaseDetectionProb    float64 `yaml:"base_detection_prob"`
	SabotageChanceFactor float64 `yaml:"sabotage_chance_factor"` // Sabotage prob = core * this
	SabotageRadius       int     `yaml:"sabotage_radius"`        // Chebyshev radius for peer damage
	SabotageDamage       float64 `yaml:"sabotage_damage"`
	StuckCap             int     `yaml:"stuck_cap"` // Normals stop detouring past this stuck count
}

// ReportConfig holds hypothesis-report parameters.
type ReportConfig struct {
	ConfirmThreshold float64 `yaml:"confirm_threshold"` // |r| must exceed this to confirm
}

// ArchetypeConfig defines a founder template for agents.
// Ratio is the probability mass of the archetype in the population roll;
// trait values are sampled from clamped normal distributions.
type ArchetypeConfig struct {
	Name   string               `yaml:"name"`
	Ratio  float64              `yaml:"ratio"`
	Traits map[string]TraitDist `yaml:"traits"`
}

// TraitDist is a clamped-normal sampling distribution for one trait.
type TraitDist struct {
	Mean  float64 `yaml:"mean"`
	Sigma float64 `yaml:"sigma"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the engine assumes are impossible.
// The engine itself performs no input checking, so this must run before
// any simulation is constructed.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Run.Population <= 0 {
		return fmt.Errorf("config: population must be positive, got %d", c.Run.Population)
	}
	if c.Run.MaxTicks <= 0 {
		return fmt.Errorf("config: max_ticks must be positive, got %d", c.Run.MaxTicks)
	}
	if len(c.Archetypes) == 0 {
		return fmt.Errorf("config: at least one archetype template is required")
	}
	var ratioSum float64
	for _, arch := range c.Archetypes {
		if arch.Ratio < 0 {
			return fmt.Errorf("config: archetype %q has negative ratio %v", arch.Name, arch.Ratio)
		}
		ratioSum += arch.Ratio
	}
	if ratioSum > 1.0+1e-9 {
		return fmt.Errorf("config: archetype ratios sum to %v, must not exceed 1", ratioSum)
	}
	if c.Behavior.InitialEnergy <= 0 {
		return fmt.Errorf("config: initial_energy must be positive, got %v", c.Behavior.InitialEnergy)
	}
	if c.Behavior.BaseDetectionProb < 0 || c.Behavior.BaseDetectionProb > 1 {
		return fmt.Errorf("config: base_detection_prob must be in [0,1], got %v", c.Behavior.BaseDetectionProb)
	}
	if c.Behavior.SabotageRadius < 0 {
		return fmt.Errorf("config: sabotage_radius must be non-negative, got %d", c.Behavior.SabotageRadius)
	}
	for name, cost := range map[string]float64{
		"move":          c.Costs.Move,
		"transgression": c.Costs.Transgression,
		"sabotage":      c.Costs.Sabotage,
		"wait":          c.Costs.Wait,
	} {
		if cost < 0 {
			return fmt.Errorf("config: cost %q must be non-negative, got %v", name, cost)
		}
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
