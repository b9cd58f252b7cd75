// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/imageplane/internal/engine/picking"
)

// PerspectiveCamera looks down -Z at the origin from a distance derived from
// the viewport, so that one world unit is roughly one pixel at z = 0.
type PerspectiveCamera struct {
	FOVDegrees float32
	Near       float32
	Far        float32

	// AutoDistance moves the eye to max(width, height)/2 on every Resize.
	AutoDistance bool

	width, height float32
	eye           mgl32.Vec3
	target        mgl32.Vec3
	up            mgl32.Vec3
}

// NewPerspectiveCamera creates a camera for a width x height viewport.
func NewPerspectiveCamera(fovDegrees, near, far float32, width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOVDegrees:   fovDegrees,
		Near:         near,
		Far:          far,
		AutoDistance: true,
		up:           mgl32.Vec3{0, 1, 0},
	}
	c.Resize(width, height)
	return c
}

// Resize updates the aspect ratio and, with AutoDistance, the eye distance.
// Non-positive sizes are ignored.
func (c *PerspectiveCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = float32(width)
	c.height = float32(height)

	if c.AutoDistance {
		c.eye = mgl32.Vec3{0, 0, max(c.width, c.height) / 2}
	}
}

// Position returns the camera position in world space.
func (c *PerspectiveCamera) Position() mgl32.Vec3 {
	return c.eye
}

// Aspect returns width / height of the viewport.
func (c *PerspectiveCamera) Aspect() float32 {
	if c.height == 0 {
		return 1
	}
	return c.width / c.height
}

// FarPlane returns the effective far clip distance. It never drops below
// twice the eye distance so the z = 0 plane stays inside the frustum on
// large screens.
func (c *PerspectiveCamera) FarPlane() float32 {
	return max(c.Far, 2*c.eye.Sub(c.target).Len())
}

// View returns the view matrix for this camera.
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.target, c.up)
}

// Projection returns the perspective projection matrix.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOVDegrees), c.Aspect(), c.Near, c.FarPlane())
}

// ViewProjection returns Projection * View.
func (c *PerspectiveCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray casts a world-space ray through the given NDC point.
func (c *PerspectiveCamera) Ray(ndcX, ndcY float32) picking.Ray {
	return picking.FromNDC(ndcX, ndcY, c.ViewProjection().Inv())
}
