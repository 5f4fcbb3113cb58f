package world

import "fmt"

// WorldConfig fully determines a run; a run is a pure function of its config.
type WorldConfig struct {
	GridSize int
	Targets  int
	Agents   int

	// Byzantine lists the agent indices created with the adversarial flag.
	Byzantine []int

	LieProbability  float64
	DistortionRange int

	SenseRadius     float64
	ConsensusRadius float64
	QuorumFraction  float64

	TurningRateDeg float64
	MaxSpeed       float64
	DrainRateMin   float64
	DrainRateMax   float64

	TickBudget        int
	TargetJitterEvery int

	Seed int64
}

func (c *WorldConfig) applyDefaults() {
	if c.GridSize == 0 {
		c.GridSize = 20
	}
	if c.Targets == 0 {
		c.Targets = 3
	}
	if c.Agents == 0 {
		c.Agents = 5
	}
	if c.LieProbability == 0 {
		c.LieProbability = 0.7
	}
	if c.DistortionRange == 0 {
		c.DistortionRange = 5
	}
	if c.SenseRadius == 0 {
		c.SenseRadius = 3
	}
	if c.ConsensusRadius == 0 {
		c.ConsensusRadius = 5
	}
	if c.QuorumFraction == 0 {
		c.QuorumFraction = 0.5
	}
	if c.TurningRateDeg == 0 {
		c.TurningRateDeg = 15
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = 1
	}
	if c.DrainRateMin == 0 {
		c.DrainRateMin = 0.08
	}
	if c.DrainRateMax == 0 {
		c.DrainRateMax = 0.12
	}
	if c.TickBudget == 0 {
		c.TickBudget = 100
	}
	if c.TargetJitterEvery == 0 {
		c.TargetJitterEvery = 5
	}
}

func (c WorldConfig) validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("grid size must be positive, got %d", c.GridSize)
	}
	if c.Targets < 1 {
		return fmt.Errorf("target count must be positive, got %d", c.Targets)
	}
	if c.Agents < 1 {
		return fmt.Errorf("agent count must be positive, got %d", c.Agents)
	}
	for _, i := range c.Byzantine {
		if i < 0 || i >= c.Agents {
			return fmt.Errorf("byzantine agent index %d out of range [0,%d)", i, c.Agents)
		}
	}
	if c.LieProbability < 0 || c.LieProbability > 1 {
		return fmt.Errorf("lie probability must be in [0,1], got %g", c.LieProbability)
	}
	if c.QuorumFraction < 0 || c.QuorumFraction > 1 {
		return fmt.Errorf("quorum fraction must be in [0,1], got %g", c.QuorumFraction)
	}
	if c.DistortionRange < 0 {
		return fmt.Errorf("distortion range must be non-negative, got %d", c.DistortionRange)
	}
	if c.SenseRadius <= 0 {
		return fmt.Errorf("sense radius must be positive, got %g", c.SenseRadius)
	}
	if c.ConsensusRadius <= 0 {
		return fmt.Errorf("consensus radius must be positive, got %g", c.ConsensusRadius)
	}
	if c.TurningRateDeg <= 0 {
		return fmt.Errorf("turning rate must be positive, got %g", c.TurningRateDeg)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("max speed must be positive, got %g", c.MaxSpeed)
	}
	if c.DrainRateMin <= 0 {
		return fmt.Errorf("battery drain minimum must be positive, got %g", c.DrainRateMin)
	}
	if c.DrainRateMax < c.DrainRateMin {
		return fmt.Errorf("battery drain range inverted: [%g,%g]", c.DrainRateMin, c.DrainRateMax)
	}
	if c.TickBudget < 1 {
		return fmt.Errorf("tick budget must be positive, got %d", c.TickBudget)
	}
	if c.TargetJitterEvery < 1 {
		return fmt.Errorf("target jitter cadence must be positive, got %d", c.TargetJitterEvery)
	}
	return nil
}
