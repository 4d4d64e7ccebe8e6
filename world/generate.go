package world

import (
	"darkagency/config"
	"darkagency/entropy"
)

// Generate builds the environment: evenly spaced vertical obstacle barriers
// each pierced by a few random gaps, sparse scattered single-cell obstacles,
// an obstacle-free spawn strip on the left edge, and goal cells near the
// right edge. Draw order is fixed so a seeded run reproduces the same grid.
func Generate(gc config.GridConfig, rng *entropy.Source) *Grid {
	g := NewGrid(gc.Width, gc.Height)

	// Vertical barrier lines with gaps.
	for b := 1; b <= gc.Barriers; b++ {
		x := gc.Width * b / (gc.Barriers + 1)
		for y := 0; y < gc.Height; y++ {
			g.SetCell(x, y, Obstacle)
		}
		gaps := rng.UniformInt(gc.GapsMin, gc.GapsMax)
		for i := 0; i < gaps; i++ {
			row := rng.UniformInt(0, gc.Height-1)
			for y := row - gc.GapHalfwidth; y <= row+gc.GapHalfwidth; y++ {
				g.SetCell(x, y, Empty)
			}
		}
	}

	// Scattered single-cell obstacles over remaining empty cells.
	scatter := gc.Width * gc.Height / gc.ScatterDivisor
	for i := 0; i < scatter; i++ {
		x := rng.UniformInt(0, gc.Width-1)
		y := rng.UniformInt(0, gc.Height-1)
		if g.Cell(x, y) == Empty {
			g.SetCell(x, y, Obstacle)
		}
	}

	// Clear the spawn strip so the initial population never starts inside
	// an obstacle.
	for x := 0; x < gc.SpawnWidth; x++ {
		for y := 0; y < gc.Height; y++ {
			g.SetCell(x, y, Empty)
		}
	}

	// Goals near the right edge at random rows. The cell to the goal's left
	// is cleared so a goal can never be fully walled in by scatter.
	goalX := gc.Width - 2
	for i := 0; i < gc.GoalCount; i++ {
		y := rng.UniformInt(0, gc.Height-1)
		if g.Cell(goalX, y) == Goal {
			continue
		}
		g.SetCell(goalX, y, Goal)
		if g.Cell(goalX-1, y) == Obstacle {
			g.SetCell(goalX-1, y, Empty)
		}
	}

	return g
}
