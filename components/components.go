// Package components defines ECS components for the simulation.
package components

import "darkagency/factors"

// Position is an agent's integer grid coordinates.
type Position struct {
	X, Y int
}

// Traits is an agent's raw trait vector, immutable after creation.
type Traits struct {
	factors.Profile
}

// Scores holds the derived factor scores and the archetype classification.
// Computed exactly once at creation and never re-evaluated.
type Scores struct {
	Core      float64
	Residual  float64
	Archetype factors.Archetype
}

// Energy is an agent's resource budget. Alive flips to false the moment
// Current reaches zero and never flips back.
type Energy struct {
	Current float64
	Alive   bool
}

// Movement holds the heading hint and the stuck counter. The heading is
// kept when the goal direction degenerates to (0,0) so a blocked agent
// retries its last heading instead of stalling on a zero vector.
type Movement struct {
	DX, DY int
	Stuck  int
}

// Metrics are the behavioral counters the statistics engine correlates
// against the derived scores.
type Metrics struct {
	Innovations  int // goal cells reached
	Violations   int // rule-breaking actions taken (transgression or sabotage)
	PeerDamage   int // peers damaged by sabotage
	Waited       int // ticks spent waiting
	WallsCrossed int // obstacles crossed via transgression
}
