package world

import "math"

var (
	spiralDirs     = [4]Vec2i{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} // right, down, left, up
	spiralHeadings = [4]float64{0, 90, 180, 270}
)

// Move runs one movement tick: drain, pick a strategy, move, then re-sense
// from the new position. A depleted battery skips the tick entirely.
func (a *Agent) Move(g *Grid) {
	if !a.drainBattery() {
		return
	}
	switch {
	case a.Byzantine && a.rng.Float64() < randomWalkChance:
		a.moveRandom(g)
	case !a.Byzantine && len(a.Knowledge) > 0:
		a.moveTowardTarget(g)
	default:
		a.moveSpiral(g)
	}
	a.Sense(g)
}

func (a *Agent) moveRandom(g *Grid) {
	step := Vec2i{a.rng.Intn(3) - 1, a.rng.Intn(3) - 1}
	a.Pos = g.Clamp(a.Pos.Add(step))
	a.Steps++
}

// moveTowardTarget heads for the nearest believed target, turning at most
// turningRate degrees per tick toward its bearing.
func (a *Agent) moveTowardTarget(g *Grid) {
	nearest := -1
	nearestDist := math.Inf(1)
	for _, id := range a.knownTargetIDs() {
		if d := Dist(a.Pos, a.Knowledge[id]); d < nearestDist {
			nearest, nearestDist = id, d
		}
	}
	if nearest < 0 {
		a.moveSpiral(g)
		return
	}
	target := a.Knowledge[nearest]

	bearing := math.Atan2(float64(target.Y-a.Pos.Y), float64(target.X-a.Pos.X)) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}
	a.turnToward(bearing)

	moveX := math.Cos(a.Heading*math.Pi/180) * a.CurrentSpeed
	moveY := math.Sin(a.Heading*math.Pi/180) * a.CurrentSpeed
	if a.rng.Float64() < moveJitterChance {
		moveX += (a.rng.Float64()*2 - 1) * moveJitterRange
		moveY += (a.rng.Float64()*2 - 1) * moveJitterRange
	}
	a.Pos = g.Clamp(Vec2i{
		X: int(float64(a.Pos.X) + moveX),
		Y: int(float64(a.Pos.Y) + moveY),
	})
	a.Steps++
}

// moveSpiral walks an expanding square: armLen steps per leg, turning
// right, down, left, up, with the arm growing by one every second turn.
func (a *Agent) moveSpiral(g *Grid) {
	a.turnToward(spiralHeadings[a.search.dir])

	next := g.Clamp(a.Pos.Add(spiralDirs[a.search.dir]))
	if next == a.Pos {
		// Boundary blocked the leg; turn and retry once.
		a.search.dir = (a.search.dir + 1) % 4
		next = g.Clamp(a.Pos.Add(spiralDirs[a.search.dir]))
	}
	a.Pos = next
	a.Steps++

	a.search.stepsInArm++
	if a.search.stepsInArm >= a.search.armLen {
		a.search.dir = (a.search.dir + 1) % 4
		a.search.stepsInArm = 0
		a.search.turns++
		if a.search.turns%2 == 0 {
			a.search.armLen++
		}
	}
}

// turnToward rotates the heading toward the bearing by at most turningRate,
// taking the shorter direction and snapping when within one step.
func (a *Agent) turnToward(bearing float64) {
	diff := angleDiff(a.Heading, bearing)
	switch {
	case diff > a.turningRate:
		a.Heading = norm360(a.Heading + a.turningRate)
	case diff < -a.turningRate:
		a.Heading = norm360(a.Heading - a.turningRate)
	default:
		a.Heading = bearing
	}
}
