package imageplane

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/imageplane/pkg/math"
)

// RelaxMultiplier scales the position lerp factor into the shape relax rate.
const RelaxMultiplier = 3

// RelaxRate returns the per-frame fraction of displacement removed.
func RelaxRate(lerpFactor float32) float32 {
	return math.Clamp(lerpFactor*RelaxMultiplier, 0, 1)
}

// edgeWeight is sin(t*pi), exactly zero on and outside the [0, 1] edges.
func edgeWeight(t float32) float32 {
	if t <= 0 || t >= 1 {
		return 0
	}
	return math32.Sin(t * math32.Pi)
}

// Distort pushes vertices along the travel offset. X is weighted by the
// vertex's v and Y by its u, so the plane edges stay pinned.
func Distort(positions, uvs []float32, offsetX, offsetY, strength float32) {
	n := min(len(positions)/3, len(uvs)/2)
	for i := 0; i < n; i++ {
		u := uvs[i*2]
		v := uvs[i*2+1]
		positions[i*3] += offsetX * edgeWeight(v) * strength
		positions[i*3+1] += offsetY * edgeWeight(u) * strength
	}
}

// Relax moves x and y of every vertex toward its rest position by rate.
func Relax(positions, rest []float32, rate float32) {
	n := min(len(positions), len(rest)) / 3
	for i := 0; i < n; i++ {
		positions[i*3] = math.Lerp(positions[i*3], rest[i*3], rate)
		positions[i*3+1] = math.Lerp(positions[i*3+1], rest[i*3+1], rate)
	}
}

// MaxDisplacement returns the largest x or y distance of any vertex from rest.
func MaxDisplacement(positions, rest []float32) float32 {
	var m float32
	n := min(len(positions), len(rest)) / 3
	for i := 0; i < n; i++ {
		m = max(m, math32.Abs(positions[i*3]-rest[i*3]), math32.Abs(positions[i*3+1]-rest[i*3+1]))
	}
	return m
}
