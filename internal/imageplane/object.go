// Package imageplane implements textured planes that follow the pointer and
// ripple their mesh in the direction of travel.
//
// A Plane owns one Object in its host's scene. Everything GPU-related is
// reached through the Backend, Mesh and Texture interfaces, so the plane logic
// runs without a GL context.
package imageplane

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/imageplane/internal/engine/picking"
	"github.com/Faultbox/imageplane/internal/engine/texture"
)

// DisplayMode selects which of a plane's two materials is bound.
type DisplayMode int

const (
	Shaded DisplayMode = iota
	Wireframe
)

func (m DisplayMode) String() string {
	if m == Wireframe {
		return "wireframe"
	}
	return "shaded"
}

// WireframeColor is the flat line color of the wireframe material (#ffff00).
var WireframeColor = mgl32.Vec4{1, 1, 0, 1}

// Material describes how an object is drawn. Both materials are double sided.
type Material struct {
	Mode    DisplayMode
	Texture Texture    // Shaded only
	Color   mgl32.Vec4 // Wireframe only
}

// Object is the single renderable a plane contributes to its container.
type Object struct {
	Name     string
	Mesh     Mesh
	Material *Material
	Position mgl32.Vec3
}

// Container is the host scene the plane adds its object to.
type Container interface {
	Add(obj *Object)
	Remove(obj *Object)
}

// Camera casts world rays through NDC points.
type Camera interface {
	Ray(ndcX, ndcY float32) picking.Ray
}

// Backend creates GPU resources. It is only called from the frame loop.
type Backend interface {
	NewTexture(img *image.RGBA) (Texture, error)
	NewMesh(g *Geometry) (Mesh, error)
}

// Mesh is an uploaded grid whose positions can be rewritten each frame.
type Mesh interface {
	SetPositions(positions []float32)
	Release()
}

// Texture is an uploaded image.
type Texture interface {
	Release()
}

// Loader starts an asynchronous image decode.
type Loader interface {
	Load(path string) *texture.Future
}
