package world

import (
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	w, err := New(WorldConfig{Seed: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cfg := w.Config()
	if cfg.GridSize != 20 || cfg.Targets != 3 || cfg.Agents != 5 {
		t.Fatalf("world defaults: %+v", cfg)
	}
	if cfg.LieProbability != 0.7 || cfg.DistortionRange != 5 {
		t.Fatalf("adversary defaults: %+v", cfg)
	}
	if cfg.SenseRadius != 3 || cfg.ConsensusRadius != 5 || cfg.QuorumFraction != 0.5 {
		t.Fatalf("radius defaults: %+v", cfg)
	}
	if cfg.TickBudget != 100 || cfg.TargetJitterEvery != 5 {
		t.Fatalf("schedule defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*WorldConfig)
		want   string
	}{
		{"negative grid", func(c *WorldConfig) { c.GridSize = -1 }, "grid size"},
		{"negative targets", func(c *WorldConfig) { c.Targets = -2 }, "target count"},
		{"negative agents", func(c *WorldConfig) { c.Agents = -1 }, "agent count"},
		{"byzantine index high", func(c *WorldConfig) { c.Byzantine = []int{5} }, "byzantine agent index"},
		{"byzantine index negative", func(c *WorldConfig) { c.Byzantine = []int{-1} }, "byzantine agent index"},
		{"lie probability over one", func(c *WorldConfig) { c.LieProbability = 1.5 }, "lie probability"},
		{"quorum fraction negative", func(c *WorldConfig) { c.QuorumFraction = -0.5 }, "quorum fraction"},
		{"distortion negative", func(c *WorldConfig) { c.DistortionRange = -3 }, "distortion range"},
		{"sense radius negative", func(c *WorldConfig) { c.SenseRadius = -1 }, "sense radius"},
		{"consensus radius negative", func(c *WorldConfig) { c.ConsensusRadius = -1 }, "consensus radius"},
		{"turning rate negative", func(c *WorldConfig) { c.TurningRateDeg = -15 }, "turning rate"},
		{"max speed negative", func(c *WorldConfig) { c.MaxSpeed = -1 }, "max speed"},
		{"drain min negative", func(c *WorldConfig) { c.DrainRateMin = -0.1 }, "battery drain"},
		{"drain range inverted", func(c *WorldConfig) { c.DrainRateMax = 0.01 }, "battery drain range"},
		{"negative budget", func(c *WorldConfig) { c.TickBudget = -1 }, "tick budget"},
		{"negative jitter cadence", func(c *WorldConfig) { c.TargetJitterEvery = -1 }, "jitter cadence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			_, err := New(cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
