package world

import "math"

// Vec2i is an integer grid coordinate.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (v Vec2i) Add(o Vec2i) Vec2i { return Vec2i{v.X + o.X, v.Y + o.Y} }

// Dist returns the Euclidean distance between two grid cells.
func Dist(a, b Vec2i) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// norm360 wraps an angle in degrees into [0, 360).
func norm360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// angleDiff returns the signed shortest rotation from one heading to
// another, in [-180, 180).
func angleDiff(from, to float64) float64 {
	return norm360(to-from+180) - 180
}
