package renderer

import (
	"fmt"
	stdmath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/imageplane/internal/engine/shader"
	"github.com/Faultbox/imageplane/internal/engine/ui2d"
)

const (
	solidStride = 6 // pos2 + color4
	textStride  = 8 // pos2 + uv2 + color4
)

// UIRenderer batches solid and textured quads and draws them in screen space.
// It implements ui2d.Painter.
type UIRenderer struct {
	screenWidth  int
	screenHeight int

	solid *shader.Program
	text  *shader.Program

	solidVAO uint32
	solidVBO uint32
	textVAO  uint32
	textVBO  uint32

	solidVertices []float32
	textVertices  []float32

	font    *ui2d.Font
	fontTex uint32
}

// NewUI creates a 2D UI renderer. A GL context must be current.
func NewUI(width, height int) (*UIRenderer, error) {
	r := &UIRenderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
		font:          ui2d.NewFont(),
	}

	var err error
	if r.solid, err = loadProgram(shader.UISolid); err != nil {
		return nil, err
	}
	if r.text, err = loadProgram(shader.UIText); err != nil {
		r.solid.Delete()
		return nil, err
	}

	r.solidVAO, r.solidVBO = newBuffers(solidStride, 2, 4)
	r.textVAO, r.textVBO = newBuffers(textStride, 2, 2, 4)
	r.uploadFont()

	return r, nil
}

func loadProgram(name string) (*shader.Program, error) {
	src, err := shader.Load(name)
	if err != nil {
		return nil, err
	}
	p, err := shader.New(src)
	if err != nil {
		return nil, fmt.Errorf("create %s shader: %w", name, err)
	}
	return p, nil
}

// newBuffers creates a VAO/VBO pair with float attributes of the given sizes
// at consecutive locations.
func newBuffers(stride int32, sizes ...int32) (uint32, uint32) {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := uintptr(0)
	for loc, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, stride*4, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(size) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func (r *UIRenderer) uploadFont() {
	atlas := r.font.Atlas()
	b := atlas.Bounds()

	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Resize updates the screen dimensions.
func (r *UIRenderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (r *UIRenderer) ScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *UIRenderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
}

// End draws everything queued since Begin.
func (r *UIRenderer) End() {
	prevBlend := gl.IsEnabled(gl.BLEND)
	prevDepth := gl.IsEnabled(gl.DEPTH_TEST)
	prevCull := gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := mgl32.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(r.solidVertices) > 0 {
		r.solid.Use()
		gl.UniformMatrix4fv(r.solid.Uniform("uProjection"), 1, false, &proj[0])
		draw(r.solidVAO, r.solidVBO, r.solidVertices, solidStride)
	}

	// Text on top of solids.
	if len(r.textVertices) > 0 {
		r.text.Use()
		gl.UniformMatrix4fv(r.text.Uniform("uProjection"), 1, false, &proj[0])
		gl.Uniform1i(r.text.Uniform("uTexture"), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
		draw(r.textVAO, r.textVBO, r.textVertices, textStride)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if !prevBlend {
		gl.Disable(gl.BLEND)
	}
	if prevDepth {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull {
		gl.Enable(gl.CULL_FACE)
	}
}

func draw(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

// Close releases renderer resources.
func (r *UIRenderer) Close() {
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
		r.fontTex = 0
	}
	if r.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &r.solidVAO)
		gl.DeleteBuffers(1, &r.solidVBO)
		r.solidVAO, r.solidVBO = 0, 0
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
		gl.DeleteBuffers(1, &r.textVBO)
		r.textVAO, r.textVBO = 0, 0
	}
	if r.solid != nil {
		r.solid.Delete()
	}
	if r.text != nil {
		r.text.Delete()
	}
}

// DrawRect draws a filled rectangle.
func (r *UIRenderer) DrawRect(x, y, width, height float32, color ui2d.Color) {
	r.addQuad(x, y, x+width, y, x+width, y+height, x, y+height, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *UIRenderer) DrawRectOutline(x, y, width, height, thickness float32, color ui2d.Color) {
	r.DrawRect(x, y, width, thickness, color)
	r.DrawRect(x, y+height-thickness, width, thickness, color)
	r.DrawRect(x, y+thickness, thickness, height-thickness*2, color)
	r.DrawRect(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawLine draws a line segment as a quad of the given thickness.
func (r *UIRenderer) DrawLine(x0, y0, x1, y1, thickness float32, color ui2d.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(stdmath.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	// Perpendicular, half thickness on each side.
	nx := -dy / length * thickness / 2
	ny := dx / length * thickness / 2
	r.addQuad(x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny, color)
}

// addQuad appends two triangles (a, b, c) and (a, c, d).
func (r *UIRenderer) addQuad(ax, ay, bx, by, cx, cy, dx, dy float32, c ui2d.Color) {
	r.solidVertices = append(r.solidVertices,
		ax, ay, c.R, c.G, c.B, c.A,
		bx, by, c.R, c.G, c.B, c.A,
		cx, cy, c.R, c.G, c.B, c.A,
		ax, ay, c.R, c.G, c.B, c.A,
		cx, cy, c.R, c.G, c.B, c.A,
		dx, dy, c.R, c.G, c.B, c.A,
	)
}

func (r *UIRenderer) addTexturedQuad(x, y, w, h, u0, v0, u1, v1 float32, c ui2d.Color) {
	r.textVertices = append(r.textVertices,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// DrawText draws text with its top-left corner at (x, y).
func (r *UIRenderer) DrawText(x, y float32, text string, scale float32, color ui2d.Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := r.font.GlyphUV(char)
		r.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *UIRenderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}
