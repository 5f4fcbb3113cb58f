package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// stateDigest hashes everything that defines the simulation state after a
// tick. Same-seed runs must produce identical digest streams.
func (w *World) stateDigest() string {
	h := sha256.New()
	var tmp [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(tmp[:], v)
		h.Write(tmp[:])
	}
	writeI64 := func(v int64) { writeU64(uint64(v)) }
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	writeU64(w.tick)
	writeI64(int64(w.delivered))

	writeI64(int64(len(w.grid.targets)))
	for _, t := range w.grid.targets {
		writeI64(int64(t.X))
		writeI64(int64(t.Y))
	}

	for _, a := range w.agents {
		writeI64(int64(a.ID))
		writeI64(int64(a.Pos.X))
		writeI64(int64(a.Pos.Y))
		writeF64(a.Battery)
		writeF64(a.Heading)
		writeI64(int64(a.Steps))
		if a.Byzantine {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		ids := a.knownTargetIDs()
		writeI64(int64(len(ids)))
		for _, id := range ids {
			p := a.Knowledge[id]
			writeI64(int64(id))
			writeI64(int64(p.X))
			writeI64(int64(p.Y))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
