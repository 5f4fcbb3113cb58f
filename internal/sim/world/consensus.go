package world

import (
	"math"
	"sort"
)

// clusterRadius is the maximum distance from the fleet mean at which a
// belief counts toward the acceptance quorum.
const clusterRadius = 3.0

// Consensus reconciles conflicting target reports across the fleet once per
// tick. Acceptance is statistical, not cryptographic: a fused value is
// written only when enough of the fleet's beliefs cluster around the mean.
type Consensus struct {
	Radius         float64 // max pair distance for knowledge exchange
	ClusterRadius  float64 // max distance from the mean to count toward quorum
	QuorumFraction float64
}

func NewConsensus(cfg WorldConfig) *Consensus {
	return &Consensus{
		Radius:         cfg.ConsensusRadius,
		ClusterRadius:  clusterRadius,
		QuorumFraction: cfg.QuorumFraction,
	}
}

// UpdateKnowledge runs one consensus pass. Every fusion decision is computed
// from a snapshot of the fleet's pre-pass knowledge and all accepted writes
// are applied together afterward, so the outcome does not depend on fleet
// iteration order.
func (c *Consensus) UpdateKnowledge(agents []*Agent) {
	snap := make([]map[int]Vec2i, len(agents))
	for i, a := range agents {
		m := make(map[int]Vec2i, len(a.Knowledge))
		for id, p := range a.Knowledge {
			m[id] = p
		}
		snap[i] = m
	}

	quorum := int(math.Floor(float64(len(agents)) * c.QuorumFraction))

	type update struct {
		agent  int
		target int
		pos    Vec2i
	}
	var updates []update

	for i, a := range agents {
		// Proximity-gated exchange: absorb reports from every peer in
		// range. A later peer's report overwrites an earlier one.
		shared := map[int]Vec2i{}
		for j, b := range agents {
			if i == j || Dist(a.Pos, b.Pos) > c.Radius {
				continue
			}
			for id, p := range b.Report() {
				shared[id] = p
			}
		}

		ids := make([]int, 0, len(shared))
		for id := range shared {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		// Global poll per shared target: mean of every agent's belief,
		// accepted only with a quorum of clustered beliefs.
		for _, id := range ids {
			var sumX, sumY float64
			held := 0
			for k := range agents {
				if p, ok := snap[k][id]; ok {
					sumX += float64(p.X)
					sumY += float64(p.Y)
					held++
				}
			}
			if held == 0 {
				continue
			}
			meanX := sumX / float64(held)
			meanY := sumY / float64(held)

			clustered := 0
			for k := range agents {
				p, ok := snap[k][id]
				if !ok {
					continue
				}
				dx := float64(p.X) - meanX
				dy := float64(p.Y) - meanY
				if math.Sqrt(dx*dx+dy*dy) < c.ClusterRadius {
					clustered++
				}
			}
			if clustered >= quorum {
				updates = append(updates, update{agent: i, target: id, pos: Vec2i{int(meanX), int(meanY)}})
			}
		}
	}

	for _, u := range updates {
		agents[u.agent].Knowledge[u.target] = u.pos
	}
}
