package protocol

// HELLO (observer -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ObserverName    string `json:"observer_name,omitempty"`
}

// WELCOME (server -> observer)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	GridSize   int   `json:"grid_size"`
	Agents     int   `json:"agents"`
	Targets    int   `json:"targets"`
	TickBudget int   `json:"tick_budget"`
	TickRateHz int   `json:"tick_rate_hz"`
	Seed       int64 `json:"seed"`
}

// FRAME (server -> observer): the full fleet state for one tick.
type FrameMsg struct {
	Type             string       `json:"type"`
	ProtocolVersion  string       `json:"protocol_version"`
	Tick             uint64       `json:"tick"`
	Targets          [][2]int     `json:"targets"`
	Agents           []AgentState `json:"agents"`
	Delivered        int          `json:"delivered"`
	CompetitiveRatio float64      `json:"competitive_ratio"`
	// RatioUnbounded marks the transient state where an agent already sits
	// on a live target; the numeric ratio is zeroed because JSON cannot
	// carry infinity.
	RatioUnbounded bool `json:"ratio_unbounded,omitempty"`
}

type AgentState struct {
	ID        int            `json:"id"`
	Pos       [2]int         `json:"pos"`
	Battery   float64        `json:"battery"`
	Byzantine bool           `json:"byzantine,omitempty"`
	Steps     int            `json:"steps"`
	Known     []TargetBelief `json:"known,omitempty"`
}

type TargetBelief struct {
	TargetID int    `json:"target_id"`
	Pos      [2]int `json:"pos"`
}

// RESULT (server -> observer): emitted once when a run ends.
type ResultMsg struct {
	Type             string  `json:"type"`
	ProtocolVersion  string  `json:"protocol_version"`
	Ticks            uint64  `json:"ticks"`
	Delivered        int     `json:"delivered"`
	InitialTargets   int     `json:"initial_targets"`
	CompetitiveRatio float64 `json:"competitive_ratio"`
	RatioUnbounded   bool    `json:"ratio_unbounded,omitempty"`
}
