package imageplane

// Pointer is the shared pointer target in normalized device coordinates,
// [-1, 1] on both axes with +Y up. The zero value is the screen centre.
//
// The host owns one Pointer and passes it to every plane each frame.
// The latest input wins.
type Pointer struct {
	X, Y float32
}

// InputKind identifies what moved the pointer.
type InputKind int

const (
	PointerMove InputKind = iota
	PointerClick
)

// PointerFromScreen converts window pixel coordinates (origin top-left) to NDC.
func PointerFromScreen(x, y float32, vp Viewport) Pointer {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: x/float32(vp.Width)*2 - 1,
		Y: 1 - y/float32(vp.Height)*2,
	}
}

// Set records a new target.
func (p *Pointer) Set(x, y float32) {
	p.X, p.Y = x, y
}

// Offer records the screen position if any plane reacts to kind.
// It reports whether the pointer changed.
func (p *Pointer) Offer(kind InputKind, x, y float32, vp Viewport, planes []*Plane) bool {
	for _, pl := range planes {
		if pl.Accepts(kind) {
			*p = PointerFromScreen(x, y, vp)
			return true
		}
	}
	return false
}
