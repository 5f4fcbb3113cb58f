package world

import (
	"math/rand"
	"testing"
)

func testConfig() WorldConfig {
	return WorldConfig{
		GridSize:          20,
		Targets:           3,
		Agents:            5,
		LieProbability:    0.7,
		DistortionRange:   5,
		SenseRadius:       3,
		ConsensusRadius:   5,
		QuorumFraction:    0.5,
		TurningRateDeg:    15,
		MaxSpeed:          1,
		DrainRateMin:      0.08,
		DrainRateMax:      0.12,
		TickBudget:        100,
		TargetJitterEvery: 5,
		Seed:              1,
	}
}

func testGrid(size int, targets ...Vec2i) *Grid {
	return &Grid{size: size, targets: targets, rng: rand.New(rand.NewSource(1))}
}

func TestSenseHonest(t *testing.T) {
	g := testGrid(20, Vec2i{5, 6}, Vec2i{15, 15})
	a := newAgent(0, Vec2i{5, 5}, false, testConfig(), rand.New(rand.NewSource(1)))

	a.Sense(g)

	if got, ok := a.Knowledge[0]; !ok || got != (Vec2i{5, 6}) {
		t.Fatalf("in-range target: got %v, %v", got, ok)
	}
	if _, ok := a.Knowledge[1]; ok {
		t.Fatalf("out-of-range target must not be sensed")
	}
}

func TestSenseByzantineBounded(t *testing.T) {
	cfg := testConfig()
	cfg.LieProbability = 1 // always distort
	g := testGrid(20, Vec2i{10, 10})
	a := newAgent(0, Vec2i{10, 10}, true, cfg, rand.New(rand.NewSource(7)))

	distorted := 0
	for i := 0; i < 200; i++ {
		a.Knowledge = map[int]Vec2i{}
		a.Sense(g)
		got, ok := a.Knowledge[0]
		if !ok {
			t.Fatalf("iteration %d: target not sensed", i)
		}
		if got.X < 5 || got.X > 15 || got.Y < 5 || got.Y > 15 {
			t.Fatalf("iteration %d: distortion %v exceeds range", i, got)
		}
		if got.X < 0 || got.X >= 20 || got.Y < 0 || got.Y >= 20 {
			t.Fatalf("iteration %d: report %v off the grid", i, got)
		}
		if got != (Vec2i{10, 10}) {
			distorted++
		}
	}
	if distorted == 0 {
		t.Fatalf("lie probability 1 produced no distorted reports")
	}
}

func TestReportReturnsCopy(t *testing.T) {
	a := newAgent(0, Vec2i{5, 5}, false, testConfig(), rand.New(rand.NewSource(1)))
	a.Knowledge[0] = Vec2i{3, 3}

	rep := a.Report()
	rep[0] = Vec2i{9, 9}
	rep[1] = Vec2i{1, 1}

	if a.Knowledge[0] != (Vec2i{3, 3}) {
		t.Fatalf("report mutation leaked into knowledge: %v", a.Knowledge[0])
	}
	if _, ok := a.Knowledge[1]; ok {
		t.Fatalf("report mutation added knowledge entry")
	}
}

func TestReportLowBattery(t *testing.T) {
	a := newAgent(0, Vec2i{5, 5}, false, testConfig(), rand.New(rand.NewSource(3)))
	a.Knowledge[0] = Vec2i{3, 3}
	a.Battery = 10

	empty, full := 0, 0
	for i := 0; i < 200; i++ {
		if len(a.Report()) == 0 {
			empty++
		} else {
			full++
		}
	}
	if empty == 0 || full == 0 {
		t.Fatalf("low-battery reports must sometimes fail and sometimes succeed: empty=%d full=%d", empty, full)
	}
}

func TestBatteryDrainsMonotonically(t *testing.T) {
	cfg := testConfig()
	cfg.DrainRateMin = 5
	cfg.DrainRateMax = 5
	a := newAgent(0, Vec2i{5, 5}, false, cfg, rand.New(rand.NewSource(2)))

	prev := a.Battery
	for i := 0; i < 30; i++ {
		alive := a.drainBattery()
		if a.Battery > prev {
			t.Fatalf("battery rose from %v to %v", prev, a.Battery)
		}
		if a.Battery < 0 {
			t.Fatalf("battery went negative: %v", a.Battery)
		}
		if alive != (a.Battery > 0) {
			t.Fatalf("alive=%v with battery %v", alive, a.Battery)
		}
		prev = a.Battery
	}
	if a.Battery != 0 {
		t.Fatalf("battery not depleted after 30 drains: %v", a.Battery)
	}
}

func TestDepletedAgentFrozen(t *testing.T) {
	g := testGrid(20, Vec2i{10, 10})
	a := newAgent(0, Vec2i{5, 5}, false, testConfig(), rand.New(rand.NewSource(1)))
	a.Battery = 0

	for i := 0; i < 10; i++ {
		a.Move(g)
	}
	if a.Pos != (Vec2i{5, 5}) || a.Steps != 0 {
		t.Fatalf("depleted agent moved: pos=%v steps=%d", a.Pos, a.Steps)
	}
}
