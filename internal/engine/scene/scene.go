// Package scene holds the objects drawn each frame, in insertion order.
package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/imageplane"
	"github.com/Faultbox/imageplane/internal/logger"
)

// Drawer draws a single object.
type Drawer interface {
	DrawObject(obj *imageplane.Object, viewProj mgl32.Mat4)
}

// Viewer supplies the view-projection matrix for a frame.
type Viewer interface {
	ViewProjection() mgl32.Mat4
}

// Scene is the container image planes add their objects to.
// It implements imageplane.Container.
type Scene struct {
	objects []*imageplane.Object
	log     *zap.Logger
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{log: logger.Named("scene")}
}

// Add appends obj. Adding an object twice is a no-op.
func (s *Scene) Add(obj *imageplane.Object) {
	if obj == nil || slices.Contains(s.objects, obj) {
		return
	}
	s.objects = append(s.objects, obj)
	s.log.Debug("object added", zap.String("name", obj.Name), zap.Int("count", len(s.objects)))
}

// Remove drops obj if present.
func (s *Scene) Remove(obj *imageplane.Object) {
	i := slices.Index(s.objects, obj)
	if i < 0 {
		return
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	s.log.Debug("object removed", zap.String("name", obj.Name), zap.Int("count", len(s.objects)))
}

// Objects returns the objects in draw order. The slice must not be modified.
func (s *Scene) Objects() []*imageplane.Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Render draws every object that has a mesh and a material. Incomplete
// entries are logged and skipped.
func (s *Scene) Render(d Drawer, v Viewer) {
	viewProj := v.ViewProjection()
	for i, obj := range s.objects {
		if obj == nil || obj.Mesh == nil || obj.Material == nil {
			s.log.Warn("skipping incomplete scene object", zap.Int("index", i))
			continue
		}
		d.DrawObject(obj, viewProj)
	}
}
