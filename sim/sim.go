// Package sim contains the simulation engine: the agent arena, the per-tick
// decide/execute policy, and the orchestrator that drives the tick loop.
package sim

import (
	"github.com/mlange-42/ark/ecs"

	"darkagency/components"
	"darkagency/config"
	"darkagency/entropy"
	"darkagency/factors"
	"darkagency/world"
)

// State is the orchestrator's lifecycle state.
type State uint8

const (
	Running State = iota
	Terminated
)

// AgentSnapshot is the read-only per-agent view handed to observers each
// tick. IDs are stable creation-order indices.
type AgentSnapshot struct {
	ID           int
	X, Y         int
	Alive        bool
	Archetype    factors.Archetype
	Core         float64
	Residual     float64
	Energy       float64
	Innovations  int
	Violations   int
	PeerDamage   int
	Waited       int
	WallsCrossed int
}

// Observer consumes the population snapshot after each completed tick.
type Observer interface {
	Observe(tick int, agents []AgentSnapshot)
}

// Simulation owns the environment, the agent population, and the tick loop.
// Everything is single-threaded: within a tick, agents decide and execute
// immediately in creation order, so an agent executed early can affect one
// decided later in the same tick. That ordering is part of the model.
type Simulation struct {
	cfg  *config.Config
	rng  *entropy.Source
	grid *world.Grid

	ecsWorld *ecs.World
	mapper   *ecs.Map6[
		components.Position,
		components.Traits,
		components.Scores,
		components.Energy,
		components.Movement,
		components.Metrics,
	]

	// Individual component mappers for peer lookups during sabotage.
	posMap    *ecs.Map1[components.Position]
	energyMap *ecs.Map1[components.Energy]

	// Creation-order arena. Entities are never removed; agents become
	// inert instead, which keeps iteration order stable across the run.
	entities []ecs.Entity

	observers []Observer

	tick       int
	state      State
	aliveCount int
}

// New creates a simulation: generates the environment, spawns the
// population, and leaves the orchestrator in the Running state. The
// configuration must already be validated.
func New(cfg *config.Config, seed int64) *Simulation {
	rng := entropy.NewSource(seed)
	w := ecs.NewWorld()

	s := &Simulation{
		cfg:  cfg,
		rng:  rng,
		grid: world.Generate(cfg.Grid, rng),

		ecsWorld: w,
		mapper: ecs.NewMap6[
			components.Position,
			components.Traits,
			components.Scores,
			components.Energy,
			components.Movement,
			components.Metrics,
		](w),
		posMap:    ecs.NewMap1[components.Position](w),
		energyMap: ecs.NewMap1[components.Energy](w),

		state: Running,
	}

	s.spawnPopulation()
	return s
}

// AddObserver registers an observer for per-tick snapshots.
func (s *Simulation) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Grid returns the environment for read-only consumption.
func (s *Simulation) Grid() *world.Grid {
	return s.grid
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int {
	return s.tick
}

// State returns the orchestrator state.
func (s *Simulation) State() State {
	return s.state
}

// AliveCount returns the number of live agents after the last tick.
func (s *Simulation) AliveCount() int {
	return s.aliveCount
}

// Step runs one tick: every live agent decides and executes in creation
// order, then observers receive the population snapshot. Returns false once
// the simulation has terminated (tick budget spent or population extinct).
func (s *Simulation) Step() bool {
	if s.state == Terminated {
		return false
	}

	for idx, entity := range s.entities {
		pos, traits, scores, energy, mov, metrics := s.mapper.Get(entity)
		d := s.decide(pos, traits, scores, energy, mov)
		s.execute(idx, d, pos, traits, scores, energy, mov, metrics)
	}

	// Count after the full pass: an agent counted mid-pass could still be
	// killed by a later agent's sabotage in the same tick.
	alive := 0
	for _, entity := range s.entities {
		if s.energyMap.Get(entity).Alive {
			alive++
		}
	}
	s.aliveCount = alive
	s.tick++

	snap := s.Snapshot()
	for _, o := range s.observers {
		o.Observe(s.tick, snap)
	}

	if s.tick >= s.cfg.Run.MaxTicks || alive == 0 {
		s.state = Terminated
	}
	return s.state == Running
}

// Snapshot returns the read-only per-agent view of the whole population.
func (s *Simulation) Snapshot() []AgentSnapshot {
	out := make([]AgentSnapshot, 0, len(s.entities))
	for idx, entity := range s.entities {
		pos, _, scores, energy, _, metrics := s.mapper.Get(entity)
		out = append(out, AgentSnapshot{
			ID:           idx,
			X:            pos.X,
			Y:            pos.Y,
			Alive:        energy.Alive,
			Archetype:    scores.Archetype,
			Core:         scores.Core,
			Residual:     scores.Residual,
			Energy:       energy.Current,
			Innovations:  metrics.Innovations,
			Violations:   metrics.Violations,
			PeerDamage:   metrics.PeerDamage,
			Waited:       metrics.Waited,
			WallsCrossed: metrics.WallsCrossed,
		})
	}
	return out
}

// Census counts the population per archetype.
func (s *Simulation) Census() map[factors.Archetype]int {
	counts := make(map[factors.Archetype]int, len(factors.Archetypes))
	for _, entity := range s.entities {
		_, _, scores, _, _, _ := s.mapper.Get(entity)
		counts[scores.Archetype]++
	}
	return counts
}

// spawnPopulation creates all agents in the spawn strip. Agents are created
// exactly once per run; the creation order defines the iteration order for
// every subsequent tick.
func (s *Simulation) spawnPopulation() {
	gc := s.cfg.Grid
	for i := 0; i < s.cfg.Run.Population; i++ {
		tmpl := factors.PickTemplate(s.cfg.Archetypes, s.rng)
		profile := factors.Sample(tmpl, s.rng)
		core, residual, arch := factors.Derive(profile, s.cfg)

		pos := components.Position{
			X: s.rng.UniformInt(0, gc.SpawnWidth-1),
			Y: s.rng.UniformInt(0, gc.Height-1),
		}
		traits := components.Traits{Profile: profile}
		scores := components.Scores{Core: core, Residual: residual, Archetype: arch}
		energy := components.Energy{Current: s.cfg.Behavior.InitialEnergy, Alive: true}
		mov := components.Movement{DX: 1, DY: 0}
		metrics := components.Metrics{}

		entity := s.mapper.NewEntity(&pos, &traits, &scores, &energy, &mov, &metrics)
		s.entities = append(s.entities, entity)
	}
	s.aliveCount = len(s.entities)
}
