// Package main provides CMA-ES calibration for the simulation's cost and
// probability constants.
package main

import (
	"darkagency/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters: the cost
// and probability constants the behavioral model leaves as configuration.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "move_cost", Path: "costs.move", Min: 0.1, Max: 2.0, Default: 0.5},
			{Name: "transgression_cost", Path: "costs.transgression", Min: 2.0, Max: 20.0, Default: 8.0},
			{Name: "sabotage_cost", Path: "costs.sabotage", Min: 1.0, Max: 10.0, Default: 3.0},
			{Name: "wait_cost", Path: "costs.wait", Min: 0.1, Max: 1.0, Default: 0.3},
			{Name: "detection_penalty", Path: "costs.detection_penalty", Min: 5.0, Max: 30.0, Default: 15.0},
			{Name: "base_detection_prob", Path: "behavior.base_detection_prob", Min: 0.0, Max: 0.5, Default: 0.15},
			{Name: "sabotage_chance_factor", Path: "behavior.sabotage_chance_factor", Min: 0.3, Max: 1.0, Default: 0.6},
			{Name: "sabotage_damage", Path: "behavior.sabotage_damage", Min: 2.0, Max: 20.0, Default: 8.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Costs.Move = clamped[0]
	cfg.Costs.Transgression = clamped[1]
	cfg.Costs.Sabotage = clamped[2]
	cfg.Costs.Wait = clamped[3]
	cfg.Costs.DetectionPenalty = clamped[4]
	cfg.Behavior.BaseDetectionProb = clamped[5]
	cfg.Behavior.SabotageChanceFactor = clamped[6]
	cfg.Behavior.SabotageDamage = clamped[7]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Costs.Move,
		cfg.Costs.Transgression,
		cfg.Costs.Sabotage,
		cfg.Costs.Wait,
		cfg.Costs.DetectionPenalty,
		cfg.Behavior.BaseDetectionProb,
		cfg.Behavior.SabotageChanceFactor,
		cfg.Behavior.SabotageDamage,
	}
}
