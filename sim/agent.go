package sim

import (
	"darkagency/components"
	"darkagency/factors"
	"darkagency/world"
)

// neighborOrder is the fixed scan order for detours. Changing it changes
// every seeded run.
var neighborOrder = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// decide selects the agent's action for this tick and refreshes its heading
// toward the nearest goal. It reads the environment but never writes it.
func (s *Simulation) decide(
	pos *components.Position,
	traits *components.Traits,
	scores *components.Scores,
	energy *components.Energy,
	mov *components.Movement,
) Action {
	if !energy.Alive {
		return Exhausted
	}

	// Keep the last heading when standing on a goal, so a blocked agent
	// retries rather than stalling on a zero vector.
	dx, dy := s.grid.DirectionToNearestGoal(pos.X, pos.Y)
	if dx != 0 || dy != 0 {
		mov.DX, mov.DY = dx, dy
	}

	if s.grid.IsPassable(pos.X+mov.DX, pos.Y+mov.DY) {
		return MoveForward
	}

	// Blocked by an obstacle: the archetype decides.
	b := s.cfg.Behavior
	switch scores.Archetype {
	case factors.DarkInnovator, factors.Maverick:
		// Weigh the transgression payoff against perceived risk.
		benefit := 1.0 / (1.0 + s.grid.DistanceToNearestGoal(pos.X, pos.Y)*0.1)
		risk := b.BaseDetectionProb * (1 - traits.Psycap)
		tolerance := scores.Residual * (0.5 + traits.Psycap*0.5)
		if benefit*tolerance > risk {
			return BreakRuleAndAdvance
		}
		return Avoid
	case factors.Toxic:
		// Lash out or stall.
		if s.rng.Chance(scores.Core * b.SabotageChanceFactor) {
			return Sabotage
		}
		return Wait
	default: // Normal: detour while vigilant and not hopelessly stuck
		if mov.Stuck < b.StuckCap && s.rng.Chance(traits.Vigilance) {
			return Avoid
		}
		return Wait
	}
}

// execute applies the selected action, mutating the agent, the grid, and
// during sabotage the peers in range. idx is the acting agent's index in
// the creation-order arena.
func (s *Simulation) execute(
	idx int,
	action Action,
	pos *components.Position,
	traits *components.Traits,
	scores *components.Scores,
	energy *components.Energy,
	mov *components.Movement,
	metrics *components.Metrics,
) {
	c := s.cfg.Costs
	b := s.cfg.Behavior

	switch action {
	case MoveForward:
		s.moveForward(pos, energy, mov, metrics)

	case BreakRuleAndAdvance:
		metrics.Violations++
		s.applyCost(energy, c.Transgression)
		detectProb := b.BaseDetectionProb * (1 - traits.Politics*0.5)
		if s.rng.Chance(detectProb) {
			// Caught: pay the penalty, stay put.
			s.applyCost(energy, c.DetectionPenalty)
			return
		}
		// Cross through the wall to its far side. A live agent always
		// occupies a passable cell, so the crossing fails when the far
		// side is blocked too.
		tx, ty := pos.X+2*mov.DX, pos.Y+2*mov.DY
		if !s.grid.IsPassable(tx, ty) {
			mov.Stuck++
			return
		}
		s.grid.Stamp(pos.X, pos.Y, world.InnovationTrail)
		pos.X, pos.Y = tx, ty
		metrics.WallsCrossed++
		mov.Stuck = 0
		if s.grid.Cell(tx, ty) == world.Goal {
			metrics.Innovations++
		}

	case Sabotage:
		metrics.Violations++
		s.applyCost(energy, c.Sabotage)
		s.damagePeers(idx, pos, metrics)
		s.grid.Stamp(pos.X, pos.Y, world.DamageTrail)
		mov.Stuck++

	case Wait:
		metrics.Waited++
		s.applyCost(energy, c.Wait)
		mov.Stuck++

	case Avoid:
		for _, n := range neighborOrder {
			if s.grid.IsPassable(pos.X+n[0], pos.Y+n[1]) {
				mov.DX, mov.DY = n[0], n[1]
				s.moveForward(pos, energy, mov, metrics)
				return
			}
		}
		// Boxed in on all four sides: pay the wait cost and starve.
		s.applyCost(energy, c.Wait)
		mov.Stuck++

	case Exhausted:
		// Permanently inert.
	}
}

// moveForward steps one cell along the current heading when passable.
func (s *Simulation) moveForward(
	pos *components.Position,
	energy *components.Energy,
	mov *components.Movement,
	metrics *components.Metrics,
) {
	tx, ty := pos.X+mov.DX, pos.Y+mov.DY
	if !s.grid.IsPassable(tx, ty) {
		return
	}
	pos.X, pos.Y = tx, ty
	s.applyCost(energy, s.cfg.Costs.Move)
	mov.Stuck = 0
	if s.grid.Cell(tx, ty) == world.Goal {
		metrics.Innovations++
	}
}

// damagePeers applies sabotage damage to every other live agent within the
// configured Chebyshev radius. Victims flip to inert immediately, so a peer
// killed here never acts later in the same tick.
func (s *Simulation) damagePeers(idx int, pos *components.Position, metrics *components.Metrics) {
	b := s.cfg.Behavior
	for peerIdx, entity := range s.entities {
		if peerIdx == idx {
			continue
		}
		peerEnergy := s.energyMap.Get(entity)
		if !peerEnergy.Alive {
			continue
		}
		peerPos := s.posMap.Get(entity)
		if chebyshev(pos.X-peerPos.X, pos.Y-peerPos.Y) > b.SabotageRadius {
			continue
		}
		s.applyCost(peerEnergy, b.SabotageDamage)
		metrics.PeerDamage++
	}
}

// applyCost deducts energy and flips liveness the moment the budget hits
// zero. There is no recovery path.
func (s *Simulation) applyCost(energy *components.Energy, cost float64) {
	energy.Current -= cost
	if energy.Current <= 0 {
		energy.Alive = false
	}
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
