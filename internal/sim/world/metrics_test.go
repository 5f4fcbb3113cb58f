package world

import (
	"math"
	"testing"
)

func TestCompetitiveRatio(t *testing.T) {
	a := &Agent{Pos: Vec2i{0, 0}, Steps: 10}
	g := testGrid(20, Vec2i{3, 4}) // dist 5

	if got := CompetitiveRatio([]*Agent{a}, g); got != 2.0 {
		t.Fatalf("ratio: got %v, want 2", got)
	}
}

func TestCompetitiveRatioNoTargets(t *testing.T) {
	agents := []*Agent{
		{Pos: Vec2i{0, 0}, Steps: 3},
		{Pos: Vec2i{5, 5}, Steps: 4},
	}
	if got := CompetitiveRatio(agents, testGrid(20)); got != 7.0 {
		t.Fatalf("empty-grid ratio must be the raw step total: got %v", got)
	}
}

func TestCompetitiveRatioUnbounded(t *testing.T) {
	a := &Agent{Pos: Vec2i{3, 4}, Steps: 10}
	g := testGrid(20, Vec2i{3, 4})

	if got := CompetitiveRatio([]*Agent{a}, g); !math.IsInf(got, 1) {
		t.Fatalf("zero optimal cost must yield +Inf, got %v", got)
	}
}
