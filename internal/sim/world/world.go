package world

import (
	"fmt"
	"math"
	"math/rand"

	"fleetsim/internal/protocol"
)

// World is a single-threaded tick simulation of the delivery fleet.
// All state must be accessed from one goroutine.
type World struct {
	cfg WorldConfig

	grid      *Grid
	agents    []*Agent
	consensus *Consensus

	tick           uint64
	delivered      int
	initialTargets int
}

func New(cfg WorldConfig) (*World, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}

	g := NewGrid(cfg.GridSize, cfg.Targets, rand.New(rand.NewSource(cfg.Seed)))

	byz := make(map[int]bool, len(cfg.Byzantine))
	for _, i := range cfg.Byzantine {
		byz[i] = true
	}

	agents := make([]*Agent, 0, cfg.Agents)
	for i := 0; i < cfg.Agents; i++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i+1)*7919))
		start := g.Clamp(Vec2i{i * 4, i * 4})
		agents = append(agents, newAgent(i, start, byz[i], cfg, rng))
	}

	return &World{
		cfg:            cfg,
		grid:           g,
		agents:         agents,
		consensus:      NewConsensus(cfg),
		initialTargets: cfg.Targets,
	}, nil
}

func (w *World) Config() WorldConfig { return w.cfg }
func (w *World) Grid() *Grid         { return w.grid }
func (w *World) Agents() []*Agent    { return w.agents }
func (w *World) CurrentTick() uint64 { return w.tick }
func (w *World) Delivered() int      { return w.delivered }

// Done reports whether the run ended: tick budget spent or all delivered.
func (w *World) Done() bool {
	return w.tick >= uint64(w.cfg.TickBudget) || len(w.grid.Targets()) == 0
}

// Step advances one tick: targets drift on their cadence, every agent moves
// and senses in fleet order, one consensus pass, then delivery detection.
func (w *World) Step() {
	if w.tick%uint64(w.cfg.TargetJitterEvery) == 0 {
		w.grid.AdvanceTargets()
	}
	for _, a := range w.agents {
		a.Move(w.grid)
	}
	w.consensus.UpdateKnowledge(w.agents)
	w.detectDeliveries()
	w.tick++
}

// detectDeliveries removes targets an agent coincides with exactly, at most
// one delivery per agent per tick.
func (w *World) detectDeliveries() {
	for _, a := range w.agents {
		for i, t := range w.grid.Targets() {
			if a.Pos == t {
				w.grid.RemoveTarget(i)
				w.delivered++
				break
			}
		}
	}
}

// Run steps until done. onFrame, if non-nil, receives one frame per tick.
func (w *World) Run(onFrame func(protocol.FrameMsg)) protocol.ResultMsg {
	for !w.Done() {
		w.Step()
		if onFrame != nil {
			onFrame(w.Frame())
		}
	}
	return w.Result()
}

// Frame captures the full fleet state after the last completed tick.
func (w *World) Frame() protocol.FrameMsg {
	ratio, unbounded := wireRatio(CompetitiveRatio(w.agents, w.grid))
	f := protocol.FrameMsg{
		Type:             protocol.TypeFrame,
		ProtocolVersion:  protocol.Version,
		Tick:             w.tick,
		Targets:          make([][2]int, 0, len(w.grid.Targets())),
		Agents:           make([]protocol.AgentState, 0, len(w.agents)),
		Delivered:        w.delivered,
		CompetitiveRatio: ratio,
		RatioUnbounded:   unbounded,
	}
	for _, t := range w.grid.Targets() {
		f.Targets = append(f.Targets, [2]int{t.X, t.Y})
	}
	for _, a := range w.agents {
		st := protocol.AgentState{
			ID:        a.ID,
			Pos:       [2]int{a.Pos.X, a.Pos.Y},
			Battery:   a.Battery,
			Byzantine: a.Byzantine,
			Steps:     a.Steps,
		}
		for _, id := range a.knownTargetIDs() {
			p := a.Knowledge[id]
			st.Known = append(st.Known, protocol.TargetBelief{TargetID: id, Pos: [2]int{p.X, p.Y}})
		}
		f.Agents = append(f.Agents, st)
	}
	return f
}

func (w *World) Result() protocol.ResultMsg {
	ratio, unbounded := wireRatio(CompetitiveRatio(w.agents, w.grid))
	return protocol.ResultMsg{
		Type:             protocol.TypeResult,
		ProtocolVersion:  protocol.Version,
		Ticks:            w.tick,
		Delivered:        w.delivered,
		InitialTargets:   w.initialTargets,
		CompetitiveRatio: ratio,
		RatioUnbounded:   unbounded,
	}
}

// wireRatio maps the transient +Inf ratio onto a JSON-encodable pair.
func wireRatio(r float64) (float64, bool) {
	if math.IsInf(r, 1) {
		return 0, true
	}
	return r, false
}
