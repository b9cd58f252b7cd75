package imageplane

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// SegmentSize is the capped-box edge length covered by one grid segment.
const SegmentSize = 30

// ErrDegenerateSize is returned when a viewport, ratio or image size is not positive.
var ErrDegenerateSize = errors.New("degenerate plane size")

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height int
}

// Size is a width and height in world units.
type Size struct {
	W, H float32
}

// Layout is the computed plane size and grid resolution.
type Layout struct {
	Size
	Box       Size // capped viewport box
	SegmentsX int
	SegmentsY int
}

// CapBox returns the viewport box scaled by the width and height ratios.
func CapBox(vp Viewport, widthRatio, heightRatio float32) Size {
	return Size{W: float32(vp.Width) * widthRatio, H: float32(vp.Height) * heightRatio}
}

// Fit sizes a plane with the native aspect ratio inside box, never exceeding
// the native size on the limiting axis.
func Fit(box Size, nativeW, nativeH int) (Size, error) {
	if box.W <= 0 || box.H <= 0 || nativeW <= 0 || nativeH <= 0 {
		return Size{}, fmt.Errorf("%w: box %gx%g, image %dx%d", ErrDegenerateSize, box.W, box.H, nativeW, nativeH)
	}
	aspect := float32(nativeW) / float32(nativeH)

	// A box wider than the image is height limited.
	if box.W/box.H > aspect {
		h := min(box.H, float32(nativeH))
		return Size{W: h * aspect, H: h}, nil
	}
	w := min(box.W, float32(nativeW))
	return Size{W: w, H: w / aspect}, nil
}

// Subdivisions returns the grid segments per axis for a capped box.
func Subdivisions(box Size) (segX, segY int) {
	segX = max(1, int(math32.Floor(box.W/SegmentSize)))
	segY = max(1, int(math32.Floor(box.H/SegmentSize)))
	return segX, segY
}

// ComputeLayout sizes a plane for the viewport and native image size.
func ComputeLayout(vp Viewport, widthRatio, heightRatio float32, nativeW, nativeH int) (Layout, error) {
	if vp.Width <= 0 || vp.Height <= 0 || widthRatio <= 0 || heightRatio <= 0 {
		return Layout{}, fmt.Errorf("%w: viewport %dx%d, ratios %g/%g",
			ErrDegenerateSize, vp.Width, vp.Height, widthRatio, heightRatio)
	}
	box := CapBox(vp, widthRatio, heightRatio)
	size, err := Fit(box, nativeW, nativeH)
	if err != nil {
		return Layout{}, err
	}
	segX, segY := Subdivisions(box)
	return Layout{Size: size, Box: box, SegmentsX: segX, SegmentsY: segY}, nil
}
