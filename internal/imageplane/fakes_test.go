package imageplane

import (
	"errors"
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/imageplane/internal/engine/camera"
	"github.com/Faultbox/imageplane/internal/engine/picking"
	"github.com/Faultbox/imageplane/internal/engine/texture"
)

var errUpload = errors.New("upload failed")

type fakeContainer struct {
	objects []*Object
	adds    int
	removes int
}

func (c *fakeContainer) Add(obj *Object) {
	c.adds++
	c.objects = append(c.objects, obj)
}

func (c *fakeContainer) Remove(obj *Object) {
	c.removes++
	c.objects = slices.DeleteFunc(c.objects, func(o *Object) bool { return o == obj })
}

type fakeMesh struct {
	vertices int
	uploads  int
	released int
	last     []float32
}

func (m *fakeMesh) SetPositions(positions []float32) {
	m.uploads++
	m.last = slices.Clone(positions)
}

func (m *fakeMesh) Release() { m.released++ }

type fakeTexture struct {
	w, h     int
	released int
}

func (t *fakeTexture) Release() { t.released++ }

type fakeBackend struct {
	textures []*fakeTexture
	meshes   []*fakeMesh
	failMesh bool
	failTex  bool
}

func (b *fakeBackend) NewTexture(img *image.RGBA) (Texture, error) {
	if b.failTex {
		return nil, errUpload
	}
	t := &fakeTexture{w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) NewMesh(g *Geometry) (Mesh, error) {
	if b.failMesh {
		return nil, errUpload
	}
	m := &fakeMesh{vertices: g.VertexCount()}
	b.meshes = append(b.meshes, m)
	return m, nil
}

// fakeLoader hands out futures the test completes explicitly.
type fakeLoader struct {
	paths    []string
	complete texture.CompleteFunc
}

func (l *fakeLoader) Load(path string) *texture.Future {
	l.paths = append(l.paths, path)
	f, complete := texture.NewFuture(path)
	l.complete = complete
	return f
}

// resolvedLoader completes every load immediately.
type resolvedLoader struct {
	img *texture.Image
	err error
}

func (l resolvedLoader) Load(string) *texture.Future {
	return texture.Resolved(l.img, l.err)
}

// fixedRayCamera returns the same ray for every pointer.
type fixedRayCamera struct {
	ray picking.Ray
}

func (c fixedRayCamera) Ray(float32, float32) picking.Ray { return c.ray }

func parallelCamera() fixedRayCamera {
	return fixedRayCamera{ray: picking.Ray{Origin: mgl32.Vec3{0, 0, 500}, Direction: mgl32.Vec3{1, 0, 0}}}
}

func testImage(w, h int) *texture.Image {
	return &texture.Image{
		RGBA:         image.NewRGBA(image.Rect(0, 0, min(w, 8), min(h, 8))),
		NativeWidth:  w,
		NativeHeight: h,
		Format:       "png",
	}
}

var testViewport = Viewport{Width: 1000, Height: 800}

func testCamera() *camera.PerspectiveCamera {
	return camera.NewPerspectiveCamera(75, 0.1, 1000, testViewport.Width, testViewport.Height)
}

type testRig struct {
	container *fakeContainer
	backend   *fakeBackend
	plane     *Plane
}

func newRig(cam Camera, opts Options) *testRig {
	if opts.Image == "" {
		opts.Image = "earth.jpg"
	}
	if opts.Viewport == (Viewport{}) {
		opts.Viewport = testViewport
	}
	if opts.Params == (Params{}) {
		opts.Params = DefaultParams()
	}
	r := &testRig{container: &fakeContainer{}, backend: &fakeBackend{}}
	r.plane = New(r.container, cam, r.backend, opts)
	return r
}

// newActiveRig returns a rig whose plane has loaded a 2000x1000 image.
func newActiveRig(cam Camera, opts Options) *testRig {
	r := newRig(cam, opts)
	if err := r.plane.Load(resolvedLoader{img: testImage(2000, 1000)}); err != nil {
		panic(err)
	}
	r.plane.Poll()
	return r
}
