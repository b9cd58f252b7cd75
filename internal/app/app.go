// Package app wires the window, renderer, scene and image planes together and
// runs the frame loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/app/panel"
	"github.com/Faultbox/imageplane/internal/app/planeset"
	"github.com/Faultbox/imageplane/internal/config"
	"github.com/Faultbox/imageplane/internal/engine/camera"
	"github.com/Faultbox/imageplane/internal/engine/debug"
	"github.com/Faultbox/imageplane/internal/engine/input"
	"github.com/Faultbox/imageplane/internal/engine/renderer"
	"github.com/Faultbox/imageplane/internal/engine/scene"
	"github.com/Faultbox/imageplane/internal/engine/texture"
	"github.com/Faultbox/imageplane/internal/engine/ui2d"
	"github.com/Faultbox/imageplane/internal/engine/window"
	"github.com/Faultbox/imageplane/internal/imageplane"
	"github.com/Faultbox/imageplane/internal/logger"
)

// guideThickness is the overlay line width in pixels.
const guideThickness = 1

// App is the running program.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	uiPaint  *renderer.UIRenderer
	input    *input.Input

	ui     *ui2d.Context
	panel  *panel.Panel
	guides *debug.Guides
	shots  *debug.ScreenshotCapture

	scene   *scene.Scene
	camera  *camera.PerspectiveCamera
	planes  *planeset.Set
	pointer imageplane.Pointer
	loader  *texture.Loader

	viewport    imageplane.Viewport
	watcher     *config.Watcher
	pendingShot bool
}

// New creates the window and GL resources and starts loading plane images.
// cfgPath is the file the config was read from, watched for tunable changes
// when non-empty.
func New(cfg *config.Config, cfgPath string) (*App, error) {
	a := &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("planes", len(cfg.Planes)),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL objects need the context the window just made current.
	w, h := a.window.Size()
	dw, dh := a.window.DrawableSize()
	a.viewport = imageplane.Viewport{Width: w, Height: h}

	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.uiPaint, err = renderer.NewUI(w, h)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create ui renderer: %w", err)
	}

	a.input = input.New()
	a.ui = ui2d.NewContext(a.uiPaint)
	a.panel = panel.New(a.ui, cfg.Debug.ShowPanel)
	a.guides = debug.NewGuides(cfg.Debug.ShowGuidelines)
	a.shots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "imageplane")

	a.scene = scene.New()
	a.camera = camera.NewPerspectiveCamera(cfg.Camera.FOVDegrees, cfg.Camera.Near, cfg.Camera.Far, w, h)
	a.planes = planeset.New(a.scene, a.camera, a.renderer, cfg.Planes, a.viewport)
	a.loader = texture.NewLoader()
	a.planes.Load(a.loader)

	if cfg.Debug.WatchConfig && cfgPath != "" {
		if a.watcher, err = config.Watch(cfgPath); err != nil {
			a.log.Warn("config hot reload disabled", zap.String("path", cfgPath), zap.Error(err))
		}
	}

	a.log.Info("initialized")
	return a, nil
}

// Await blocks until every plane's image has loaded or failed, or ctx ends.
// It is optional: the frame loop activates planes as their loads finish.
func (a *App) Await(ctx context.Context) error {
	for _, p := range a.planes.Planes() {
		if err := p.Await(ctx); err != nil && ctx.Err() != nil {
			return err
		}
	}
	return nil
}

// Run starts the frame loop and returns when the window closes or Esc is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Config reload
		a.applyReload()

		// 3. Planes
		if n := a.planes.Poll(); n > 0 {
			a.log.Debug("plane loads finished", zap.Int("count", n))
		}
		a.planes.Update(&a.pointer)
		a.guides.Update(float32(dt))

		// 4. Render and present
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	in := a.ui.Input()
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.Resize:
			a.resize(e.Width, e.Height)

		case input.KeyDown:
			if e.Repeat {
				continue
			}
			a.handleKey(e.Sym)

		case input.PointerMove:
			in.MouseX, in.MouseY = float32(e.X), float32(e.Y)
			if !a.ui.WantsMouse() {
				a.planes.Offer(&a.pointer, imageplane.PointerMove, in.MouseX, in.MouseY, a.viewport)
			}

		case input.PointerDown:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			in.MouseX, in.MouseY = float32(e.X), float32(e.Y)
			// A press on the panel belongs to the panel.
			if !a.ui.WantsMouse() {
				a.planes.Offer(&a.pointer, imageplane.PointerClick, in.MouseX, in.MouseY, a.viewport)
			}
			in.MouseLeftDown = true
			in.MouseLeftClicked = true

		case input.PointerUp:
			if e.Button == sdl.BUTTON_LEFT {
				in.MouseLeftDown = false
			}
		}
	}
}

func (a *App) handleKey(sym sdl.Keycode) {
	switch sym {
	case sdl.K_ESCAPE:
		a.running = false
	case sdl.K_b:
		a.planes.ToggleWireframe()
	case sdl.K_a:
		a.guides.Toggle()
	case sdl.K_F1:
		a.panel.Toggle()
	case sdl.K_F11:
		a.window.ToggleFullscreen()
	case sdl.K_F12:
		a.pendingShot = true
	}
}

func (a *App) resize(w, h int) {
	if w <= 0 || h <= 0 {
		a.log.Debug("ignoring empty resize", zap.Int("width", w), zap.Int("height", h))
		return
	}
	a.viewport = imageplane.Viewport{Width: w, Height: h}
	a.camera.Resize(w, h)
	a.uiPaint.Resize(w, h)
	dw, dh := a.window.DrawableSize()
	a.renderer.Resize(dw, dh)
	a.planes.Resize(a.viewport)
}

func (a *App) applyReload() {
	if a.watcher == nil {
		return
	}
	select {
	case cfg := <-a.watcher.Updates():
		a.planes.Apply(cfg.Planes)
	default:
	}
}

func (a *App) render() {
	a.renderer.Begin()
	a.scene.Render(a.renderer, a.camera)

	a.ui.Begin()
	a.drawGuides()
	act := a.panel.Draw(a.planes.Planes(), a.viewport, a.guides)
	a.ui.End()

	if act.Screenshot || a.pendingShot {
		a.pendingShot = false
		a.screenshot()
	}
	if act.SaveConfig {
		a.saveConfig()
	}
}

func (a *App) drawGuides() {
	alpha := a.guides.Alpha()
	if alpha <= 0 {
		return
	}
	wr, hr := float32(imageplane.DefaultWidthRatio), float32(imageplane.DefaultHeightRatio)
	if len(a.cfg.Planes) > 0 {
		wr, hr = a.cfg.Planes[0].WidthRatio, a.cfg.Planes[0].HeightRatio
	}
	color := ui2d.ColorGuide.ScaleAlpha(alpha)
	for _, s := range a.guides.Segments(float32(a.viewport.Width), float32(a.viewport.Height), wr, hr) {
		a.uiPaint.DrawLine(s.X0, s.Y0, s.X1, s.Y1, guideThickness, color)
	}
}

func (a *App) screenshot() {
	dw, dh := a.window.DrawableSize()
	path, err := a.shots.CaptureFromPixels(a.renderer.ReadPixels(dw, dh), dw, dh)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// saveConfig writes the live plane state back to the file the config came
// from, or to the user config directory when none was read.
func (a *App) saveConfig() {
	cfg := *a.cfg
	cfg.Planes = a.planes.Snapshot()

	var err error
	path := a.cfgPath
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		a.log.Error("saving config failed", zap.String("path", path), zap.Error(err))
		return
	}
	a.cfg = &cfg
	a.log.Info("config saved", zap.String("path", path), zap.Int("planes", len(cfg.Planes)))
}

// Close releases planes, GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	if a.planes != nil {
		a.planes.Dispose()
	}
	if a.uiPaint != nil {
		a.uiPaint.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
