package world

import "math"

// CompetitiveRatio compares realized movement cost against a lower bound on
// the remaining optimal cost. With no targets left it returns the raw step
// total. It is +Inf while some agent sits exactly on every remaining
// nearest target, i.e. the optimal remaining cost is zero.
func CompetitiveRatio(agents []*Agent, g *Grid) float64 {
	total := 0
	for _, a := range agents {
		total += a.Steps
	}
	if len(g.Targets()) == 0 {
		return float64(total)
	}

	optimal := 0.0
	for _, a := range agents {
		best := math.Inf(1)
		for _, t := range g.Targets() {
			if d := Dist(a.Pos, t); d < best {
				best = d
			}
		}
		optimal += best
	}
	if optimal == 0 {
		return math.Inf(1)
	}
	return float64(total) / optimal
}
