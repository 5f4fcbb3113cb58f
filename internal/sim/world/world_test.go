package world

import (
	"testing"

	"fleetsim/internal/protocol"
)

func TestRunStaysBounded(t *testing.T) {
	cfg := testConfig()
	cfg.Byzantine = []int{0}
	cfg.Seed = 7
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res := w.Run(func(f protocol.FrameMsg) {
		for _, tp := range f.Targets {
			if tp[0] < 0 || tp[0] >= cfg.GridSize || tp[1] < 0 || tp[1] >= cfg.GridSize {
				t.Fatalf("tick %d: target %v off the grid", f.Tick, tp)
			}
		}
		for _, a := range f.Agents {
			if a.Pos[0] < 0 || a.Pos[0] >= cfg.GridSize || a.Pos[1] < 0 || a.Pos[1] >= cfg.GridSize {
				t.Fatalf("tick %d: agent %d at %v off the grid", f.Tick, a.ID, a.Pos)
			}
			if a.Battery < 0 || a.Battery > 100 {
				t.Fatalf("tick %d: agent %d battery %v", f.Tick, a.ID, a.Battery)
			}
		}
	})

	if res.Ticks > uint64(cfg.TickBudget) {
		t.Fatalf("run overshot the budget: %d ticks", res.Ticks)
	}
	if !w.Done() {
		t.Fatalf("run finished but world not done")
	}
	if res.InitialTargets != cfg.Targets {
		t.Fatalf("initial targets: got %d, want %d", res.InitialTargets, cfg.Targets)
	}
}

func TestDeliveryRemovesTarget(t *testing.T) {
	w, err := New(testConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	before := len(w.Grid().Targets())
	w.Agents()[0].Pos = w.Grid().Targets()[0]

	w.detectDeliveries()

	if w.Delivered() != 1 {
		t.Fatalf("delivered: got %d, want 1", w.Delivered())
	}
	if got := len(w.Grid().Targets()); got != before-1 {
		t.Fatalf("targets: got %d, want %d", got, before-1)
	}
}

func TestDeterministicSameSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Byzantine = []int{0, 2}
	cfg.Seed = 42

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 100; i++ {
		a.Step()
		b.Step()
		if da, db := a.stateDigest(), b.stateDigest(); da != db {
			t.Fatalf("tick %d: digests diverged\n a=%s\n b=%s", i, da, db)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	cfg := testConfig()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cfg.Seed = 2
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 20; i++ {
		a.Step()
		b.Step()
		if a.stateDigest() != b.stateDigest() {
			return
		}
	}
	t.Fatalf("different seeds produced identical runs")
}

func TestFrameShape(t *testing.T) {
	w, err := New(testConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	w.Step()

	f := w.Frame()
	if f.Type != protocol.TypeFrame || f.ProtocolVersion != protocol.Version {
		t.Fatalf("frame envelope: %+v", f)
	}
	if f.Targets == nil {
		t.Fatalf("targets slice must not be nil")
	}
	if len(f.Agents) != testConfig().Agents {
		t.Fatalf("agents: got %d, want %d", len(f.Agents), testConfig().Agents)
	}

	res := w.Result()
	if res.Type != protocol.TypeResult || res.InitialTargets != testConfig().Targets {
		t.Fatalf("result envelope: %+v", res)
	}
}
