// Package planeset manages the image planes described by the config.
package planeset

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/config"
	"github.com/Faultbox/imageplane/internal/imageplane"
	"github.com/Faultbox/imageplane/internal/logger"
)

// Set is an ordered group of planes sharing one container, camera and backend.
type Set struct {
	planes []*imageplane.Plane
	log    *zap.Logger
}

// Options converts a plane config into plane options for viewport vp.
func Options(pc config.PlaneConfig, vp imageplane.Viewport) imageplane.Options {
	return imageplane.Options{
		Image:       pc.Image,
		WidthRatio:  pc.WidthRatio,
		HeightRatio: pc.HeightRatio,
		Position:    mgl32.Vec3{pc.Position.X, pc.Position.Y, pc.Position.Z},
		Params:      params(pc),
		Wireframe:   pc.Wireframe,
		Viewport:    vp,
	}
}

func params(pc config.PlaneConfig) imageplane.Params {
	return imageplane.Params{
		Strength:          pc.Strength,
		LerpFactor:        pc.LerpFactor,
		MoveOnPointerMove: pc.MoveOnPointerMove,
		MoveOnClick:       pc.MoveOnClick,
	}
}

// New creates one unloaded plane per config entry.
func New(container imageplane.Container, cam imageplane.Camera, backend imageplane.Backend,
	planes []config.PlaneConfig, vp imageplane.Viewport) *Set {
	s := &Set{log: logger.Named("planeset")}
	for _, pc := range planes {
		s.planes = append(s.planes, imageplane.New(container, cam, backend, Options(pc, vp)))
	}
	return s
}

// Planes returns the planes in config order.
func (s *Set) Planes() []*imageplane.Plane {
	return s.planes
}

// Len returns the number of planes.
func (s *Set) Len() int {
	return len(s.planes)
}

// Load starts decoding every unloaded plane.
func (s *Set) Load(loader imageplane.Loader) {
	for _, p := range s.planes {
		if p.State() != imageplane.StateUnloaded {
			continue
		}
		if err := p.Load(loader); err != nil {
			s.log.Warn("load not started", zap.String("image", p.Image()), zap.Error(err))
		}
	}
}

// Poll activates planes whose decode finished and returns how many changed state.
func (s *Set) Poll() int {
	n := 0
	for _, p := range s.planes {
		if p.Poll() {
			n++
		}
	}
	return n
}

// Update advances every plane toward the shared pointer.
func (s *Set) Update(ptr *imageplane.Pointer) {
	for _, p := range s.planes {
		p.Update(ptr)
	}
}

// Resize rebuilds plane geometry for a new viewport. Degenerate sizes keep
// the previous geometry; the plane logs them.
func (s *Set) Resize(vp imageplane.Viewport) {
	for _, p := range s.planes {
		if err := p.Resize(vp); err != nil && !errors.Is(err, imageplane.ErrDegenerateSize) {
			s.log.Error("resize failed", zap.String("image", p.Image()), zap.Error(err))
		}
	}
}

// Offer routes a pointer input to ptr if any plane reacts to kind.
func (s *Set) Offer(ptr *imageplane.Pointer, kind imageplane.InputKind, x, y float32, vp imageplane.Viewport) bool {
	return ptr.Offer(kind, x, y, vp, s.planes)
}

// ToggleWireframe flips every plane. All planes end up in the same mode,
// taken from the first plane.
func (s *Set) ToggleWireframe() {
	if len(s.planes) == 0 {
		return
	}
	on := !s.planes[0].Wireframe()
	for _, p := range s.planes {
		p.SetWireframe(on)
	}
}

// Apply copies the live tunables of a reloaded config onto the planes,
// matched by index. Images, ratios and x/y positions are not reloaded.
func (s *Set) Apply(planes []config.PlaneConfig) {
	if len(planes) != len(s.planes) {
		s.log.Warn("plane count changed, tunables applied by index",
			zap.Int("config", len(planes)), zap.Int("running", len(s.planes)))
	}
	for i, p := range s.planes {
		if i >= len(planes) {
			break
		}
		pc := planes[i]
		p.SetParams(params(pc))
		p.SetWireframe(pc.Wireframe)
		pos := p.Position()
		pos[2] = pc.Position.Z
		p.SetPosition(pos)
	}
	s.log.Info("plane tunables reloaded", zap.Int("planes", min(len(planes), len(s.planes))))
}

// Snapshot returns the current state of every plane as config entries, so a
// session tuned from the panel can be written back to disk.
func (s *Set) Snapshot() []config.PlaneConfig {
	out := make([]config.PlaneConfig, 0, len(s.planes))
	for _, p := range s.planes {
		wr, hr := p.Ratios()
		pos := p.Position()
		params := p.Params()
		out = append(out, config.PlaneConfig{
			Image:             p.Image(),
			WidthRatio:        wr,
			HeightRatio:       hr,
			Position:          config.Position{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
			Strength:          params.Strength,
			LerpFactor:        params.LerpFactor,
			MoveOnPointerMove: params.MoveOnPointerMove,
			MoveOnClick:       params.MoveOnClick,
			Wireframe:         p.Wireframe(),
		})
	}
	return out
}

// Dispose releases every plane.
func (s *Set) Dispose() {
	for _, p := range s.planes {
		p.Dispose()
	}
}
