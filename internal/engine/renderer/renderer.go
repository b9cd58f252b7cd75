// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/engine/shader"
	"github.com/Faultbox/imageplane/internal/engine/texture"
	"github.com/Faultbox/imageplane/internal/imageplane"
	"github.com/Faultbox/imageplane/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws image plane objects and creates their GPU resources.
// It implements imageplane.Backend.
type Renderer struct {
	config Config
	plane  *shader.Program
	log    *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE) // planes are double sided
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.plane, err = loadProgram(shader.Plane)
	if err != nil {
		return nil, err
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.plane.ID))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.plane != nil {
		r.plane.Delete()
	}
}

// Resize handles drawable size changes.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawObject draws one plane object with the given view-projection matrix.
func (r *Renderer) DrawObject(obj *imageplane.Object, viewProj mgl32.Mat4) {
	mesh, ok := obj.Mesh.(*glMesh)
	if !ok || mesh.vao == 0 || obj.Material == nil {
		return
	}

	r.plane.Use()
	gl.UniformMatrix4fv(r.plane.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.Uniform3fv(r.plane.Uniform("uOffset"), 1, &obj.Position[0])

	gl.BindVertexArray(mesh.vao)
	switch obj.Material.Mode {
	case imageplane.Wireframe:
		c := obj.Material.Color
		gl.Uniform1i(r.plane.Uniform("uUseTexture"), 0)
		gl.Uniform4fv(r.plane.Uniform("uColor"), 1, &c[0])
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.lineEBO)
		gl.DrawElements(gl.LINES, mesh.lineCount, gl.UNSIGNED_INT, nil)
	default:
		tex, _ := obj.Material.Texture.(*glTexture)
		if tex == nil {
			break
		}
		gl.Uniform1i(r.plane.Uniform("uUseTexture"), 1)
		gl.Uniform1i(r.plane.Uniform("uTexture"), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.triEBO)
		gl.DrawElements(gl.TRIANGLES, mesh.triCount, gl.UNSIGNED_INT, nil)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// NewTexture uploads img with mipmaps. Rows are flipped so that v = 1 samples
// the top of the image.
func (r *Renderer) NewTexture(img *image.RGBA) (imageplane.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	t := &glTexture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(texture.BottomUp(img)))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		t.Release()
		return nil, fmt.Errorf("upload texture: gl error 0x%x", e)
	}
	r.log.Debug("texture uploaded", zap.Uint32("id", t.id), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return t, nil
}

// NewMesh uploads g. Positions live in a dynamic buffer, everything else is static.
func (r *Renderer) NewMesh(g *imageplane.Geometry) (imageplane.Mesh, error) {
	if len(g.Positions) == 0 || len(g.Indices) == 0 {
		return nil, fmt.Errorf("empty geometry")
	}

	m := &glMesh{
		vertexCount: len(g.Positions) / 3,
		triCount:    int32(len(g.Indices)),
		lineCount:   int32(len(g.LineIndices)),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*4, gl.Ptr(g.Positions), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &m.uvVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.uvVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.UVs)*4, gl.Ptr(g.UVs), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.triEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.triEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	if len(g.LineIndices) > 0 {
		gl.GenBuffers(1, &m.lineEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.lineEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.LineIndices)*4, gl.Ptr(g.LineIndices), gl.STATIC_DRAW)
	}

	// The triangle index buffer stays bound to the VAO.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.triEBO)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		m.Release()
		return nil, fmt.Errorf("upload mesh: gl error 0x%x", e)
	}
	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", m.vertexCount),
		zap.Int32("triangles", m.triCount/3),
	)
	return m, nil
}

type glTexture struct {
	id uint32
}

func (t *glTexture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

type glMesh struct {
	vao, posVBO, uvVBO uint32
	triEBO, lineEBO    uint32

	vertexCount int
	triCount    int32
	lineCount   int32
}

// SetPositions rewrites the position buffer. Slices of the wrong length are ignored.
func (m *glMesh) SetPositions(positions []float32) {
	if m.posVBO == 0 || len(positions) != m.vertexCount*3 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*4, unsafe.Pointer(&positions[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *glMesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	for _, b := range []*uint32{&m.posVBO, &m.uvVBO, &m.triEBO, &m.lineEBO} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
}
