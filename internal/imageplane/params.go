package imageplane

import "github.com/Faultbox/imageplane/pkg/math"

// Tunable defaults and the bounds exposed by the debug panel.
const (
	DefaultWidthRatio  = 0.35
	DefaultHeightRatio = 0.6

	DefaultStrength   = 0.02
	DefaultLerpFactor = 0.04

	MinStrength   = 0
	MaxStrength   = 0.1
	MinLerpFactor = 0.01
	MaxLerpFactor = 0.2

	// MinZ and MaxZ bound the plane depth offered by the debug panel.
	MinZ = -10
	MaxZ = 10
)

// Params are the live-editable tunables of a plane.
type Params struct {
	Strength          float32
	LerpFactor        float32
	MoveOnPointerMove bool
	MoveOnClick       bool
}

// DefaultParams returns the default tunables.
func DefaultParams() Params {
	return Params{
		Strength:          DefaultStrength,
		LerpFactor:        DefaultLerpFactor,
		MoveOnPointerMove: true,
		MoveOnClick:       true,
	}
}

// Clamped returns p with numeric fields limited to their bounds.
func (p Params) Clamped() Params {
	p.Strength = math.Clamp(p.Strength, MinStrength, MaxStrength)
	p.LerpFactor = math.Clamp(p.LerpFactor, MinLerpFactor, MaxLerpFactor)
	return p
}
