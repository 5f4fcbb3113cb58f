package world

import (
	"math/rand"
	"sort"
)

const (
	lowBatteryLevel  = 20.0
	reportFailChance = 0.3
	randomWalkChance = 0.1
	moveJitterChance = 0.1
	moveJitterRange  = 0.2
)

// Agent is one fleet member. Honest and Byzantine agents share the same
// shape; the flag only switches the sensing and movement policies.
type Agent struct {
	ID        int
	Pos       Vec2i
	Byzantine bool

	// Knowledge maps target ID to the believed coordinate. Entries are
	// written by the agent's own sensing and overwritten by consensus.
	Knowledge map[int]Vec2i

	Battery   float64 // 0..100, never recharged
	DrainRate float64

	Heading      float64 // degrees, 0 = +X
	CurrentSpeed float64
	MaxSpeed     float64

	// Steps counts movement actions for the competitive-ratio metric.
	Steps int

	search searchState

	lieProbability  float64
	distortionRange int
	senseRadius     float64
	turningRate     float64

	rng *rand.Rand
}

// searchState drives the expanding square spiral.
type searchState struct {
	dir        int // index into spiralDirs
	armLen     int
	stepsInArm int
	turns      int
}

func newAgent(id int, pos Vec2i, byzantine bool, cfg WorldConfig, rng *rand.Rand) *Agent {
	return &Agent{
		ID:              id,
		Pos:             pos,
		Byzantine:       byzantine,
		Knowledge:       map[int]Vec2i{},
		Battery:         100,
		DrainRate:       cfg.DrainRateMin + (cfg.DrainRateMax-cfg.DrainRateMin)*rng.Float64(),
		CurrentSpeed:    cfg.MaxSpeed,
		MaxSpeed:        cfg.MaxSpeed,
		search:          searchState{armLen: 1},
		lieProbability:  cfg.LieProbability,
		distortionRange: cfg.DistortionRange,
		senseRadius:     cfg.SenseRadius,
		turningRate:     cfg.TurningRateDeg,
		rng:             rng,
	}
}

// Sense records every target within sensing range into the agent's own
// knowledge. Honest agents store the exact coordinate; Byzantine agents
// distort each axis by up to distortionRange with probability
// lieProbability, clamped to the grid.
func (a *Agent) Sense(g *Grid) {
	for id, t := range g.Targets() {
		if Dist(a.Pos, t) > a.senseRadius {
			continue
		}
		if !a.Byzantine {
			a.Knowledge[id] = t
			continue
		}
		if a.rng.Float64() < a.lieProbability {
			r := a.distortionRange
			fake := Vec2i{
				X: t.X + a.rng.Intn(2*r+1) - r,
				Y: t.Y + a.rng.Intn(2*r+1) - r,
			}
			a.Knowledge[id] = g.Clamp(fake)
		} else {
			a.Knowledge[id] = t
		}
	}
}

// Report returns a copy of the agent's knowledge. Below 20% battery the
// transmission fails 30% of the time and yields an empty map; the roll is
// independent per call.
func (a *Agent) Report() map[int]Vec2i {
	if a.Battery < lowBatteryLevel && a.rng.Float64() < reportFailChance {
		return map[int]Vec2i{}
	}
	out := make(map[int]Vec2i, len(a.Knowledge))
	for id, p := range a.Knowledge {
		out[id] = p
	}
	return out
}

// drainBattery applies one tick of drain and reports whether the agent can
// still move.
func (a *Agent) drainBattery() bool {
	speedFactor := a.CurrentSpeed / a.MaxSpeed
	a.Battery -= a.DrainRate * speedFactor * (0.9 + 0.2*a.rng.Float64())
	if a.Battery < 0 {
		a.Battery = 0
	}
	return a.Battery > 0
}

func (a *Agent) knownTargetIDs() []int {
	ids := make([]int, 0, len(a.Knowledge))
	for id := range a.Knowledge {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
