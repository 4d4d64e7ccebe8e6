// Package factors implements the trait factor model: raw trait vectors,
// the derived core and residual scores, and the archetype classification.
// All functions here are pure; scores are computed once at agent creation
// and never re-evaluated.
package factors

import (
	"darkagency/config"
	"darkagency/entropy"
)

// Archetype classifies an agent's behavioral class, assigned once from the
// derived scores.
type Archetype uint8

const (
	Normal Archetype = iota
	DarkInnovator
	Maverick // transitional / at-risk
	Toxic
	archetypeCount
)

// Archetypes lists all classes in enumeration order, for aggregation loops.
var Archetypes = [archetypeCount]Archetype{Normal, DarkInnovator, Maverick, Toxic}

func (a Archetype) String() string {
	switch a {
	case Normal:
		return "normal"
	case DarkInnovator:
		return "dark_innovator"
	case Maverick:
		return "maverick"
	case Toxic:
		return "toxic"
	}
	return "unknown"
}

// Profile is an agent's raw trait vector. Every value lies in [0,1];
// sampling clamps at the source. Immutable once assigned.
type Profile struct {
	Narcissism       float64
	Machiavellianism float64
	Psychopathy      float64
	Sadism           float64
	Vigilance        float64 // situational alertness, boosts the residual
	Psycap           float64 // psychological capital, dampens perceived risk
	Politics         float64 // perceived organizational politics, dampens detection
}

// Residual-model constants. The residual is the strategic component of the
// dark traits net of pure destructiveness: equal machiavellianism/narcissism
// weights, orthogonalized against the core, boosted by vigilance.
const (
	residualMachWeight   = 0.5
	residualNarcWeight   = 0.5
	orthogonalization    = 0.35
	vigilanceBoostFactor = 0.2
)

// CoreScore computes the general antagonism score G: a fixed positive
// linear combination of the four dark traits, clamped to [0,1].
func CoreScore(p Profile, l config.LoadingsConfig) float64 {
	g := l.Psychopathy*p.Psychopathy +
		l.Sadism*p.Sadism +
		l.Machiavellianism*p.Machiavellianism +
		l.Narcissism*p.Narcissism
	return clamp01(g)
}

// ResidualScore computes the strategic-agency score S: the instrumental
// trait combination minus a fraction of the core, scaled up by vigilance
// and re-clamped.
func ResidualScore(p Profile, core float64) float64 {
	s := residualMachWeight*p.Machiavellianism +
		residualNarcWeight*p.Narcissism -
		core*orthogonalization
	s = clamp01(s)
	s *= 1 + p.Vigilance*vigilanceBoostFactor
	return clamp01(s)
}

// Classify maps a (core, residual) pair to exactly one archetype.
// The threshold regions partition the unit square; the branch order is
// load-bearing (toxic dominates, then the agency split).
func Classify(core, residual float64, th config.ThresholdsConfig) Archetype {
	switch {
	case core > th.ToxicCore:
		return Toxic
	case residual > th.AgencyResidual && core > th.MaverickCore:
		return Maverick
	case residual > th.AgencyResidual:
		return DarkInnovator
	default:
		return Normal
	}
}

// Derive computes both scores and the classification for a profile.
func Derive(p Profile, cfg *config.Config) (core, residual float64, arch Archetype) {
	core = CoreScore(p, cfg.Loadings)
	residual = ResidualScore(p, core)
	arch = Classify(core, residual, cfg.Thresholds)
	return core, residual, arch
}

// PickTemplate rolls one founder template from the configured archetype mix.
// Ratios are cumulative; any remaining probability mass falls through to the
// last entry, the baseline population.
func PickTemplate(archetypes []config.ArchetypeConfig, rng *entropy.Source) config.ArchetypeConfig {
	roll := rng.Uniform(0, 1)
	var cum float64
	for _, a := range archetypes {
		cum += a.Ratio
		if roll < cum {
			return a
		}
	}
	return archetypes[len(archetypes)-1]
}

// Sample draws a trait profile from a founder template's per-trait clamped
// normal distributions. Traits are drawn in a fixed order so a seeded run
// is reproducible.
func Sample(tmpl config.ArchetypeConfig, rng *entropy.Source) Profile {
	draw := func(name string) float64 {
		d, ok := tmpl.Traits[name]
		if !ok {
			d = config.TraitDist{Mean: 0.5, Sigma: 0.15}
		}
		return rng.NormalClamped(d.Mean, d.Sigma)
	}
	return Profile{
		Narcissism:       draw("narcissism"),
		Machiavellianism: draw("machiavellianism"),
		Psychopathy:      draw("psychopathy"),
		Sadism:           draw("sadism"),
		Vigilance:        draw("vigilance"),
		Psycap:           draw("psycap"),
		Politics:         draw("politics"),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
