package ui2d

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph  = ' '
	lastGlyph   = '~'
	atlasCols   = 16
	glyphAtlasW = 7
	glyphAtlasH = 13
)

// Font is a fixed-width bitmap font rasterized from basicfont.Face7x13 into
// a single-channel atlas. Glyph coverage is stored in the gray channel.
type Font struct {
	atlas *image.Gray
	face  *basicfont.Face
}

// NewFont rasterizes printable ASCII into an atlas.
func NewFont() *Font {
	face := basicfont.Face7x13
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols
	atlas := image.NewGray(image.Rect(0, 0, atlasCols*glyphAtlasW, rows*glyphAtlasH))

	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := int(r - firstGlyph)
		x := (i % atlasCols) * glyphAtlasW
		y := (i / atlasCols) * glyphAtlasH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}
	return &Font{atlas: atlas, face: face}
}

// Atlas returns the glyph atlas.
func (f *Font) Atlas() *image.Gray { return f.atlas }

// GlyphSize returns the glyph cell size in pixels.
func (f *Font) GlyphSize() (int, int) { return glyphAtlasW, glyphAtlasH }

// GlyphUV returns the atlas UV rectangle for r. Runes outside printable
// ASCII map to '?'.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	b := f.atlas.Bounds()
	x := float32((i % atlasCols) * glyphAtlasW)
	y := float32((i / atlasCols) * glyphAtlasH)
	w, h := float32(b.Dx()), float32(b.Dy())
	return x / w, y / h, (x + glyphAtlasW) / w, (y + glyphAtlasH) / h
}

// MeasureText returns the width and height of text at the given scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		longest = max(longest, len([]rune(l)))
	}
	return float32(longest*glyphAtlasW) * scale, float32(len(lines)*glyphAtlasH) * scale
}
