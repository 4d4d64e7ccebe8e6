package main

import (
	"math"

	"darkagency/config"
	"darkagency/sim"
	"darkagency/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how cleanly the
// hypothesis correlations separate under a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config

	lastMargin float64 // margin from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastMargin returns the confirmation margin from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastMargin() float64 {
	return fe.lastMargin
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean confirmation margin across seeds: the margin
// is the worst-case signed distance of the three correlations from their
// hypothesized directions, so maximizing it pushes all three hypotheses
// toward confirmation at once.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, raw)

	total := 0.0
	for _, seed := range fe.seeds {
		total += fe.runOnce(cfg, seed)
	}
	margin := total / float64(len(fe.seeds))
	fe.lastMargin = margin
	return -margin
}

// runOnce runs one seeded simulation to completion and returns its
// confirmation margin.
func (fe *FitnessEvaluator) runOnce(cfg *config.Config, seed int64) float64 {
	s := sim.New(cfg, seed)
	engine := telemetry.NewEngine(cfg.Report.ConfirmThreshold)
	s.AddObserver(engine)

	for s.Step() {
	}

	c := engine.Correlations()
	// Signed distances in the hypothesized directions: residual-innovation
	// positive, core-damage positive, core-innovation negative.
	margin := math.Min(c.ResidualInnovation, math.Min(c.CoreDamage, -c.CoreInnovation))

	// A run where the population collapses early produces degenerate
	// cross-sections; penalize extinction proportionally.
	if s.AliveCount() == 0 {
		margin -= 1.0
	}
	return margin
}

// copyConfig clones the base config so evaluations never mutate it. The
// tuned fields are all scalars, so a value copy is enough.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
