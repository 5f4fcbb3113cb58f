package world

import "math/rand"

// Grid is the bounded square world holding the live delivery targets.
// A target's identity is its current index in the ordered list; indices
// compact when a target is removed.
type Grid struct {
	size    int
	targets []Vec2i
	rng     *rand.Rand
}

func NewGrid(size, targets int, rng *rand.Rand) *Grid {
	g := &Grid{size: size, rng: rng}
	g.targets = make([]Vec2i, 0, targets)
	for i := 0; i < targets; i++ {
		g.targets = append(g.targets, Vec2i{rng.Intn(size), rng.Intn(size)})
	}
	return g
}

func (g *Grid) Size() int { return g.size }

// Targets returns the live target list. Callers must not mutate it.
func (g *Grid) Targets() []Vec2i { return g.targets }

// Clamp keeps a coordinate inside [0, size-1] on both axes.
func (g *Grid) Clamp(v Vec2i) Vec2i {
	if v.X < 0 {
		v.X = 0
	}
	if v.X > g.size-1 {
		v.X = g.size - 1
	}
	if v.Y < 0 {
		v.Y = 0
	}
	if v.Y > g.size-1 {
		v.Y = g.size - 1
	}
	return v
}

// AdvanceTargets jitters every target by at most one cell per axis.
func (g *Grid) AdvanceTargets() {
	for i, t := range g.targets {
		t.X += g.rng.Intn(3) - 1
		t.Y += g.rng.Intn(3) - 1
		g.targets[i] = g.Clamp(t)
	}
}

// RemoveTarget drops a delivered target; later targets shift down one index.
func (g *Grid) RemoveTarget(i int) {
	if i < 0 || i >= len(g.targets) {
		return
	}
	g.targets = append(g.targets[:i], g.targets[i+1:]...)
}
