package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fleetsim/internal/sim/world"
)

// Tuning is the on-disk run configuration. Fields missing from the file
// keep their defaults.
type Tuning struct {
	GridSize int `yaml:"grid_size"`
	Targets  int `yaml:"targets"`
	Agents   int `yaml:"agents"`

	ByzantineAgents []int `yaml:"byzantine_agents"`

	LieProbability  float64 `yaml:"lie_probability"`
	DistortionRange int     `yaml:"distortion_range"`

	SenseRadius     float64 `yaml:"sense_radius"`
	ConsensusRadius float64 `yaml:"consensus_radius"`
	QuorumFraction  float64 `yaml:"quorum_fraction"`

	TurningRateDeg float64 `yaml:"turning_rate_deg"`
	MaxSpeed       float64 `yaml:"max_speed"`
	DrainRateMin   float64 `yaml:"drain_rate_min"`
	DrainRateMax   float64 `yaml:"drain_rate_max"`

	TickBudget        int `yaml:"tick_budget"`
	TargetJitterEvery int `yaml:"target_jitter_every"`
	TickRateHz        int `yaml:"tick_rate_hz"`
}

func Defaults() Tuning {
	return Tuning{
		GridSize:          20,
		Targets:           3,
		Agents:            5,
		ByzantineAgents:   []int{0},
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
		TickRateHz:        10,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// WorldConfig maps the tuning onto a seeded world configuration.
func (t Tuning) WorldConfig(seed int64) world.WorldConfig {
	return world.WorldConfig{
		GridSize:          t.GridSize,
		Targets:           t.Targets,
		Agents:            t.Agents,
		Byzantine:         append([]int(nil), t.ByzantineAgents...),
		LieProbability:    t.LieProbability,
		DistortionRange:   t.DistortionRange,
		SenseRadius:       t.SenseRadius,
		ConsensusRadius:   t.ConsensusRadius,
		QuorumFraction:    t.QuorumFraction,
		TurningRateDeg:    t.TurningRateDeg,
		MaxSpeed:          t.MaxSpeed,
		DrainRateMin:      t.DrainRateMin,
		DrainRateMax:      t.DrainRateMax,
		TickBudget:        t.TickBudget,
		TargetJitterEvery: t.TargetJitterEvery,
		Seed:              seed,
	}
}
