// Package picking provides ray casting from screen space into the scene.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ParallelEpsilon is the smallest |Direction.Z| treated as crossing a z-plane.
const ParallelEpsilon = 1e-6

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// FromNDC converts normalized device coordinates to a world-space ray.
// ndcX, ndcY are in [-1, 1] with +Y up.
// invViewProj is the inverse of the view-projection matrix.
func FromNDC(ndcX, ndcY float32, invViewProj mgl32.Mat4) Ray {
	nearWorld := unproject(mgl32.Vec4{ndcX, ndcY, -1, 1}, invViewProj)
	farWorld := unproject(mgl32.Vec4{ndcX, ndcY, 1, 1}, invViewProj)

	dir := farWorld.Sub(nearWorld)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(clip mgl32.Vec4, invViewProj mgl32.Mat4) mgl32.Vec3 {
	w := invViewProj.Mul4x1(clip)
	if w.W() != 0 {
		return w.Vec3().Mul(1 / w.W())
	}
	return w.Vec3()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlaneZ intersects the ray with the plane z = planeZ.
// It returns false when the ray is parallel to the plane or the
// intersection lies behind the ray origin.
func (r Ray) IntersectPlaneZ(planeZ float32) (mgl32.Vec3, bool) {
	// Solve: Origin.Z + t * Direction.Z = planeZ
	if math32.Abs(r.Direction.Z()) < ParallelEpsilon {
		return mgl32.Vec3{}, false
	}

	t := (planeZ - r.Origin.Z()) / r.Direction.Z()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}
