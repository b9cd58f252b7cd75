// Package math provides scalar helpers shared by the engine and the image plane.
package math

import "github.com/chewxy/math32"

// Lerp returns start + (end-start)*t.
func Lerp(start, end, t float32) float32 {
	return start + (end-start)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
