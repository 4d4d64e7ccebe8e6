// Package entropy provides the seeded random source for the simulation.
// A single Source instance is owned by the simulation and threaded through
// environment generation and population creation, so a fixed seed yields a
// bit-identical run.
package entropy

import "math/rand"

// Source wraps a seeded PRNG with the draw shapes the simulation needs.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a source seeded with the given value.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a uniform float64 in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// UniformInt returns a uniform int in [min, max] inclusive.
func (s *Source) UniformInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// Chance performs a Bernoulli trial with probability p.
func (s *Source) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Normal returns a normal sample with the given mean and standard deviation.
func (s *Source) Normal(mean, stddev float64) float64 {
	return mean + s.rng.NormFloat64()*stddev
}

// NormalClamped returns a normal sample clamped to [0, 1], the valid range
// for trait values.
func (s *Source) NormalClamped(mean, stddev float64) float64 {
	v := s.Normal(mean, stddev)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
