package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Panel theme.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}

	ColorPanelBg      = Color{0.08, 0.08, 0.1, 0.92}
	ColorPanelBorder  = Color{0.3, 0.3, 0.36, 1}
	ColorHeader       = Color{0.13, 0.13, 0.17, 1}
	ColorButtonNormal = Color{0.16, 0.16, 0.2, 1}
	ColorButtonHover  = Color{0.24, 0.24, 0.3, 1}
	ColorButtonActive = Color{0.12, 0.32, 0.5, 1}
	ColorInputBg      = Color{0.05, 0.05, 0.07, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.55, 0.55, 0.6, 1}
	ColorHighlight    = Color{0.2, 0.6, 0.9, 1}
	ColorGuide        = Color{0.2, 0.9, 1, 0.6}
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// ScaleAlpha returns a copy of the color with alpha multiplied by f.
func (c Color) ScaleAlpha(f float32) Color {
	return Color{c.R, c.G, c.B, c.A * f}
}
