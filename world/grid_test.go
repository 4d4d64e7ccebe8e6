package world

import (
	"math"
	"testing"

	"darkagency/config"
	"darkagency/entropy"
)

func TestOutOfBoundsReadsAreObstacle(t *testing.T) {
	g := NewGrid(10, 10)

	tests := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10}, {-100, -100},
	}
	for _, tt := range tests {
		if got := g.Cell(tt.x, tt.y); got != Obstacle {
			t.Errorf("Cell(%d,%d) = %v, want Obstacle", tt.x, tt.y, got)
		}
		if g.IsPassable(tt.x, tt.y) {
			t.Errorf("IsPassable(%d,%d) = true for out-of-bounds", tt.x, tt.y)
		}
	}
}

func TestOutOfBoundsWritesIgnored(t *testing.T) {
	g := NewGrid(4, 4)
	g.SetCell(-1, 0, Goal)
	g.SetCell(4, 0, Goal)
	g.SetCell(0, 7, Goal)
	if g.GoalCount() != 0 {
		t.Errorf("out-of-bounds writes registered %d goals", g.GoalCount())
	}
}

func TestPassability(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetCell(1, 1, Obstacle)
	g.SetCell(2, 2, Goal)
	g.SetCell(3, 3, InnovationTrail)
	g.SetCell(4, 4, DamageTrail)

	if g.IsPassable(1, 1) {
		t.Error("obstacle is passable")
	}
	for _, p := range []struct{ x, y int }{{0, 0}, {2, 2}, {3, 3}, {4, 4}} {
		if !g.IsPassable(p.x, p.y) {
			t.Errorf("(%d,%d) should be passable", p.x, p.y)
		}
	}
}

func TestStampNeverOverwritesStructure(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetCell(1, 1, Obstacle)
	g.SetCell(2, 2, Goal)

	g.Stamp(1, 1, InnovationTrail)
	g.Stamp(2, 2, DamageTrail)
	g.Stamp(3, 3, DamageTrail)

	if g.Cell(1, 1) != Obstacle {
		t.Error("trail overwrote an obstacle")
	}
	if g.Cell(2, 2) != Goal {
		t.Error("trail overwrote a goal")
	}
	if g.Cell(3, 3) != DamageTrail {
		t.Error("trail not stamped on empty cell")
	}
}

func TestNearestGoalQueries(t *testing.T) {
	g := NewGrid(20, 20)
	g.SetCell(10, 10, Goal)
	g.SetCell(18, 2, Goal)

	if d := g.DistanceToNearestGoal(10, 14); math.Abs(d-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", d)
	}
	dx, dy := g.DirectionToNearestGoal(7, 13)
	if dx != 1 || dy != -1 {
		t.Errorf("direction = (%d,%d), want (1,-1)", dx, dy)
	}
	// Standing on the goal.
	dx, dy = g.DirectionToNearestGoal(10, 10)
	if dx != 0 || dy != 0 {
		t.Errorf("direction on goal = (%d,%d), want (0,0)", dx, dy)
	}
}

func TestNoGoals(t *testing.T) {
	g := NewGrid(5, 5)
	if d := g.DistanceToNearestGoal(2, 2); !math.IsInf(d, 1) {
		t.Errorf("distance with no goals = %v, want +Inf", d)
	}
	dx, dy := g.DirectionToNearestGoal(2, 2)
	if dx != 0 || dy != 0 {
		t.Errorf("direction with no goals = (%d,%d), want (0,0)", dx, dy)
	}
}

func TestGenerateInvariants(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	for seed := int64(1); seed <= 10; seed++ {
		g := Generate(cfg.Grid, entropy.NewSource(seed))

		// The spawn strip is obstacle-free.
		for x := 0; x < cfg.Grid.SpawnWidth; x++ {
			for y := 0; y < g.Height; y++ {
				if g.Cell(x, y) == Obstacle {
					t.Fatalf("seed %d: obstacle in spawn strip at (%d,%d)", seed, x, y)
				}
			}
		}

		// Goals were placed and each has at least one passable neighbor.
		if g.GoalCount() == 0 {
			t.Fatalf("seed %d: no goals placed", seed)
		}
		for _, p := range g.goals {
			open := false
			for _, n := range [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
				if g.IsPassable(p.X+n[0], p.Y+n[1]) {
					open = true
					break
				}
			}
			if !open {
				t.Fatalf("seed %d: goal at (%d,%d) is walled in", seed, p.X, p.Y)
			}
		}

		// Every barrier line has at least one gap.
		for b := 1; b <= cfg.Grid.Barriers; b++ {
			x := cfg.Grid.Width * b / (cfg.Grid.Barriers + 1)
			if x < cfg.Grid.SpawnWidth {
				continue
			}
			gap := false
			for y := 0; y < g.Height; y++ {
				if g.IsPassable(x, y) {
					gap = true
					break
				}
			}
			if !gap {
				t.Fatalf("seed %d: barrier at x=%d has no gap", seed, x)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	a := Generate(cfg.Grid, entropy.NewSource(99))
	b := Generate(cfg.Grid, entropy.NewSource(99))

	ca, cb := a.Cells(), b.Cells()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("grids diverge at index %d: %v != %v", i, ca[i], cb[i])
		}
	}
}
