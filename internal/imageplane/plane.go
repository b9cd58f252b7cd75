package imageplane

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/engine/texture"
	"github.com/Faultbox/imageplane/internal/logger"
	"github.com/Faultbox/imageplane/pkg/math"
)

// ErrDisposed is returned by operations on a disposed plane.
var ErrDisposed = errors.New("image plane disposed")

// State is a plane's lifecycle stage.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateActive
	StateFailed
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configure a new plane.
type Options struct {
	Image       string
	WidthRatio  float32 // 0 means DefaultWidthRatio
	HeightRatio float32 // 0 means DefaultHeightRatio
	Position    mgl32.Vec3
	Params      Params
	Wireframe   bool
	Viewport    Viewport
}

// Plane is a textured, pointer-following image plane.
//
// All methods must be called from the frame loop goroutine.
type Plane struct {
	container Container
	camera    Camera
	backend   Backend
	log       *zap.Logger

	image       string
	widthRatio  float32
	heightRatio float32
	viewport    Viewport
	params      Params
	mode        DisplayMode

	state  State
	err    error
	future *texture.Future

	// position is tracked before activation so the panel and config can
	// place a plane that is still loading.
	position mgl32.Vec3
	nativeW  int
	nativeH  int
	layout   Layout

	geom      *Geometry
	mesh      Mesh
	tex       Texture
	shaded    *Material
	wireframe *Material
	obj       *Object
}

// New creates an unloaded plane. Call Load to start decoding its image.
func New(container Container, camera Camera, backend Backend, opts Options) *Plane {
	p := &Plane{
		container:   container,
		camera:      camera,
		backend:     backend,
		log:         logger.Named("imageplane").With(zap.String("image", opts.Image)),
		image:       opts.Image,
		widthRatio:  opts.WidthRatio,
		heightRatio: opts.HeightRatio,
		viewport:    opts.Viewport,
		params:      opts.Params.Clamped(),
		position:    opts.Position,
	}
	if p.widthRatio <= 0 {
		p.widthRatio = DefaultWidthRatio
	}
	if p.heightRatio <= 0 {
		p.heightRatio = DefaultHeightRatio
	}
	if opts.Wireframe {
		p.mode = Wireframe
	}
	return p
}

// Image returns the image path.
func (p *Plane) Image() string { return p.image }

// Ratios returns the viewport fractions that cap the plane size.
func (p *Plane) Ratios() (width, height float32) { return p.widthRatio, p.heightRatio }

// State returns the lifecycle stage.
func (p *Plane) State() State { return p.state }

// Err returns the load error of a failed plane.
func (p *Plane) Err() error { return p.err }

// Load starts decoding the plane's image.
func (p *Plane) Load(loader Loader) error {
	switch p.state {
	case StateUnloaded:
	case StateDisposed:
		return ErrDisposed
	default:
		return fmt.Errorf("load called in state %s", p.state)
	}
	p.future = loader.Load(p.image)
	p.state = StateLoading
	p.log.Debug("loading")
	return nil
}

// Poll activates the plane if its decode has finished. It never blocks and
// reports whether the state changed.
func (p *Plane) Poll() bool {
	if p.state != StateLoading || !p.future.Ready() {
		return false
	}
	img, err := p.future.Result()
	p.complete(img, err)
	return true
}

// Await blocks until the decode finishes or ctx is done, then activates the
// plane. It returns the load error of a failed plane.
func (p *Plane) Await(ctx context.Context) error {
	switch p.state {
	case StateLoading:
	case StateActive:
		return nil
	case StateFailed:
		return p.err
	case StateDisposed:
		return ErrDisposed
	default:
		return fmt.Errorf("await called in state %s", p.state)
	}

	if _, err := p.future.Wait(ctx); err != nil && !p.future.Ready() {
		return err
	}
	p.complete(p.future.Result())
	return p.err
}

func (p *Plane) complete(img *texture.Image, err error) {
	p.future = nil
	if err != nil {
		p.fail(err)
		return
	}
	if err := p.activate(img); err != nil {
		p.fail(err)
	}
}

func (p *Plane) fail(err error) {
	p.state = StateFailed
	p.err = err
	p.log.Error("image plane not created", zap.Error(err))
}

func (p *Plane) activate(img *texture.Image) error {
	layout, err := ComputeLayout(p.viewport, p.widthRatio, p.heightRatio, img.NativeWidth, img.NativeHeight)
	if err != nil {
		return err
	}

	tex, err := p.backend.NewTexture(img.RGBA)
	if err != nil {
		return fmt.Errorf("uploading texture: %w", err)
	}

	geom := NewGeometry(layout.W, layout.H, layout.SegmentsX, layout.SegmentsY)
	mesh, err := p.backend.NewMesh(geom)
	if err != nil {
		tex.Release()
		return fmt.Errorf("uploading mesh: %w", err)
	}

	p.nativeW, p.nativeH = img.NativeWidth, img.NativeHeight
	p.layout = layout
	p.geom = geom
	p.mesh = mesh
	p.tex = tex
	p.shaded = &Material{Mode: Shaded, Texture: tex}
	p.wireframe = &Material{Mode: Wireframe, Color: WireframeColor}
	p.obj = &Object{
		Name:     p.image,
		Mesh:     mesh,
		Material: p.material(),
		Position: p.position,
	}
	p.container.Add(p.obj)
	p.state = StateActive

	p.log.Info("image plane created",
		zap.Float32("width", layout.W),
		zap.Float32("height", layout.H),
		zap.Int("segments_x", layout.SegmentsX),
		zap.Int("segments_y", layout.SegmentsY))
	return nil
}

func (p *Plane) material() *Material {
	if p.mode == Wireframe {
		return p.wireframe
	}
	return p.shaded
}

// Update advances one frame toward the pointer target. It is a no-op unless
// the plane is active.
func (p *Plane) Update(ptr *Pointer) {
	if p.state != StateActive || ptr == nil {
		return
	}

	pos := p.obj.Position
	target, ok := p.camera.Ray(ptr.X, ptr.Y).IntersectPlaneZ(pos.Z())

	// Without a usable hit the frame only relaxes.
	if ok {
		offset := target.Sub(pos)
		Distort(p.geom.Positions, p.geom.UVs, offset.X(), offset.Y(), p.params.Strength)
	}
	Relax(p.geom.Positions, p.geom.rest, RelaxRate(p.params.LerpFactor))
	if ok {
		pos[0] = math.Lerp(pos[0], target[0], p.params.LerpFactor)
		pos[1] = math.Lerp(pos[1], target[1], p.params.LerpFactor)
		p.obj.Position = pos
		p.position = pos
	}

	p.mesh.SetPositions(p.geom.Positions)
}

// Resize rebuilds the geometry for a new viewport. The position, materials
// and texture are kept. On ErrDegenerateSize the old geometry stays in place.
func (p *Plane) Resize(vp Viewport) error {
	switch p.state {
	case StateDisposed:
		return ErrDisposed
	case StateActive:
	default:
		p.viewport = vp
		return nil
	}

	layout, err := ComputeLayout(vp, p.widthRatio, p.heightRatio, p.nativeW, p.nativeH)
	if err != nil {
		p.log.Warn("resize ignored", zap.Error(err))
		return err
	}
	p.viewport = vp
	if layout == p.layout {
		return nil
	}

	geom := NewGeometry(layout.W, layout.H, layout.SegmentsX, layout.SegmentsY)
	mesh, err := p.backend.NewMesh(geom)
	if err != nil {
		p.log.Warn("resize mesh upload failed", zap.Error(err))
		return err
	}

	p.mesh.Release()
	p.mesh = mesh
	p.geom = geom
	p.layout = layout
	p.obj.Mesh = mesh
	return nil
}

// SetWireframe binds the wireframe or the shaded material.
func (p *Plane) SetWireframe(on bool) {
	if p.state == StateDisposed {
		return
	}
	p.mode = Shaded
	if on {
		p.mode = Wireframe
	}
	if p.obj != nil {
		p.obj.Material = p.material()
	}
}

// ToggleWireframe swaps the bound material.
func (p *Plane) ToggleWireframe() {
	p.SetWireframe(p.mode != Wireframe)
}

// Wireframe reports whether the wireframe material is selected.
func (p *Plane) Wireframe() bool { return p.mode == Wireframe }

// Material returns the bound material, or nil before activation.
func (p *Plane) Material() *Material {
	if p.obj == nil {
		return nil
	}
	return p.obj.Material
}

// Params returns the current tunables.
func (p *Plane) Params() Params { return p.params }

// SetParams replaces the tunables, clamped to their bounds.
func (p *Plane) SetParams(params Params) { p.params = params.Clamped() }

// Accepts reports whether the plane reacts to the given input kind.
// Disposed and failed planes accept nothing.
func (p *Plane) Accepts(kind InputKind) bool {
	if p.state == StateDisposed || p.state == StateFailed {
		return false
	}
	switch kind {
	case PointerMove:
		return p.params.MoveOnPointerMove
	case PointerClick:
		return p.params.MoveOnClick
	}
	return false
}

// Position returns the world position.
func (p *Plane) Position() mgl32.Vec3 { return p.position }

// SetPosition moves the plane, including its fixed depth.
func (p *Plane) SetPosition(pos mgl32.Vec3) {
	p.position = pos
	if p.obj != nil {
		p.obj.Position = pos
	}
}

// Layout returns the current size and grid resolution of an active plane.
func (p *Plane) Layout() Layout { return p.layout }

// Geometry returns the plane's grid, or nil before activation.
func (p *Plane) Geometry() *Geometry { return p.geom }

// Object returns the renderable added to the container, or nil.
func (p *Plane) Object() *Object { return p.obj }

// Dispose removes the plane from its container and releases the mesh, the
// texture and both materials. A load still in flight is discarded when it
// completes. Calling Dispose again does nothing.
func (p *Plane) Dispose() {
	if p.state == StateDisposed {
		return
	}
	if p.obj != nil {
		p.container.Remove(p.obj)
		p.mesh.Release()
		p.tex.Release()
		p.obj.Mesh = nil
		p.obj.Material = nil
		p.obj = nil
	}
	p.mesh = nil
	p.tex = nil
	p.geom = nil
	p.shaded = nil
	p.wireframe = nil
	p.future = nil
	p.state = StateDisposed
	p.log.Debug("disposed")
}
