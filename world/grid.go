// Package world models the simulation environment: a bounded 2-D grid of
// cells with structural obstacles and goals plus transient trail markers
// left behind by agents.
package world

import "math"

// Cell is the kind of a single grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Obstacle
	Goal
	InnovationTrail // stamped where an agent crossed an obstacle line
	DamageTrail     // stamped where an agent sabotaged peers
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Goal:
		return "goal"
	case InnovationTrail:
		return "innovation_trail"
	case DamageTrail:
		return "damage_trail"
	}
	return "unknown"
}

// Grid is the simulation environment. The boundary acts as an implicit
// wall: out-of-bounds reads return Obstacle and out-of-bounds writes are
// ignored, so callers never need bounds checks of their own.
type Grid struct {
	Width  int
	Height int

	cells []Cell
	goals []point
}

type point struct {
	X, Y int
}

// NewGrid creates an empty grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// Cell returns the cell kind at (x, y), or Obstacle when out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Obstacle
	}
	return g.cells[y*g.Width+x]
}

// SetCell sets the cell kind at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetCell(x, y int, c Cell) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.cells[y*g.Width+x] = c
	if c == Goal {
		g.goals = append(g.goals, point{x, y})
	}
}

// IsPassable reports whether an agent may occupy (x, y). Trail markers
// behave exactly like empty cells for movement.
func (g *Grid) IsPassable(x, y int) bool {
	switch g.Cell(x, y) {
	case Empty, Goal, InnovationTrail, DamageTrail:
		return true
	}
	return false
}

// Stamp writes a trail marker at (x, y). Trails never overwrite
// structural cells.
func (g *Grid) Stamp(x, y int, c Cell) {
	switch g.Cell(x, y) {
	case Obstacle, Goal:
		return
	}
	g.SetCell(x, y, c)
}

// DistanceToNearestGoal returns the Euclidean distance from (x, y) to the
// closest goal, or +Inf when the grid has no goals.
func (g *Grid) DistanceToNearestGoal(x, y int) float64 {
	best := math.Inf(1)
	for _, p := range g.goals {
		dx := float64(p.X - x)
		dy := float64(p.Y - y)
		if d := math.Hypot(dx, dy); d < best {
			best = d
		}
	}
	return best
}

// DirectionToNearestGoal returns a unit step (dx, dy) toward the
// Euclidean-nearest goal, or (0, 0) when standing on it or when the grid
// has no goals.
func (g *Grid) DirectionToNearestGoal(x, y int) (int, int) {
	best := math.Inf(1)
	var target point
	found := false
	for _, p := range g.goals {
		dx := float64(p.X - x)
		dy := float64(p.Y - y)
		if d := math.Hypot(dx, dy); d < best {
			best = d
			target = p
			found = true
		}
	}
	if !found {
		return 0, 0
	}
	return sign(target.X - x), sign(target.Y - y)
}

// GoalCount returns the number of placed goals.
func (g *Grid) GoalCount() int {
	return len(g.goals)
}

// Cells returns a copy of the cell matrix in row-major order, for
// renderers and exporters.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
