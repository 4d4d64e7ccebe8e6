// Package telemetry aggregates per-tick population statistics, computes the
// hypothesis correlations, and writes structured experiment output.
package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"darkagency/factors"
	"darkagency/sim"
)

// ArchetypeStats holds cross-sectional aggregates for one archetype,
// recomputed from scratch every tick.
type ArchetypeStats struct {
	Archetype       factors.Archetype
	Count           int
	Alive           int
	MeanCore        float64
	MeanResidual    float64
	MeanInnovations float64
	MeanViolations  float64
	MeanPeerDamage  float64
	MeanWaited      float64
}

// Correlations are the three hypothesis correlations, computed over the
// entire population of the current tick (cross-sectional, not a time
// series).
type Correlations struct {
	ResidualInnovation float64 // expected positive
	CoreDamage         float64 // expected positive
	CoreInnovation     float64 // expected negative
}

// Engine consumes population snapshots and maintains the latest aggregates.
// It carries no state between ticks beyond the most recent snapshot's
// results: the hypothesis is evaluated on the final tick's cross-section.
type Engine struct {
	confirmThreshold float64

	tick       int
	population int
	alive      int
	archetypes [len(factors.Archetypes)]ArchetypeStats
	corr       Correlations
}

// NewEngine creates a statistics engine with the given confirmation
// threshold for the hypothesis report.
func NewEngine(confirmThreshold float64) *Engine {
	return &Engine{confirmThreshold: confirmThreshold}
}

// Observe recomputes all aggregates from the tick's population snapshot.
// Implements sim.Observer.
func (e *Engine) Observe(tick int, agents []sim.AgentSnapshot) {
	e.tick = tick
	e.population = len(agents)
	e.alive = 0

	type members struct {
		core, residual, innovations, violations, damage, waited []float64
		count, alive                                            int
	}
	var byArch [len(factors.Archetypes)]members

	residuals := make([]float64, 0, len(agents))
	cores := make([]float64, 0, len(agents))
	innovations := make([]float64, 0, len(agents))
	damage := make([]float64, 0, len(agents))

	for _, a := range agents {
		if a.Alive {
			e.alive++
		}

		m := &byArch[a.Archetype]
		m.count++
		if a.Alive {
			m.alive++
		}
		m.core = append(m.core, a.Core)
		m.residual = append(m.residual, a.Residual)
		m.innovations = append(m.innovations, float64(a.Innovations))
		m.violations = append(m.violations, float64(a.Violations))
		m.damage = append(m.damage, float64(a.PeerDamage))
		m.waited = append(m.waited, float64(a.Waited))

		residuals = append(residuals, a.Residual)
		cores = append(cores, a.Core)
		innovations = append(innovations, float64(a.Innovations))
		damage = append(damage, float64(a.PeerDamage))
	}

	for i, arch := range factors.Archetypes {
		m := byArch[i]
		e.archetypes[i] = ArchetypeStats{
			Archetype:       arch,
			Count:           m.count,
			Alive:           m.alive,
			MeanCore:        meanOrZero(m.core),
			MeanResidual:    meanOrZero(m.residual),
			MeanInnovations: meanOrZero(m.innovations),
			MeanViolations:  meanOrZero(m.violations),
			MeanPeerDamage:  meanOrZero(m.damage),
			MeanWaited:      meanOrZero(m.waited),
		}
	}

	e.corr = Correlations{
		ResidualInnovation: Pearson(residuals, innovations),
		CoreDamage:         Pearson(cores, damage),
		CoreInnovation:     Pearson(cores, innovations),
	}
}

// Tick returns the tick of the latest observed snapshot.
func (e *Engine) Tick() int {
	return e.tick
}

// Alive returns the live-agent count of the latest snapshot.
func (e *Engine) Alive() int {
	return e.alive
}

// Archetypes returns the latest per-archetype aggregates in enumeration
// order.
func (e *Engine) Archetypes() []ArchetypeStats {
	out := make([]ArchetypeStats, len(e.archetypes))
	copy(out, e.archetypes[:])
	return out
}

// Correlations returns the latest cross-sectional correlations.
func (e *Engine) Correlations() Correlations {
	return e.corr
}

// Pearson computes the correlation coefficient with the sum-based formula.
// It returns 0 for samples smaller than 2 and for zero-variance series;
// degenerate samples are a defined outcome here, not an error.
func Pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	n := float64(len(xs))

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}

	num := n*sumXY - sumX*sumY
	den := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if den == 0 {
		return 0
	}
	return num / den
}

func meanOrZero(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}
