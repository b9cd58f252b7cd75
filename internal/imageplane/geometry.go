package imageplane

import "slices"

// Geometry is a subdivided plane centred on the origin in the XY plane.
//
// Vertices are laid out row by row from the top edge (+H/2) to the bottom,
// left to right within a row. UV v runs from 1 at the top to 0 at the bottom.
type Geometry struct {
	Width, Height float32
	SegmentsX     int
	SegmentsY     int

	// Positions holds xyz per vertex and is rewritten every frame.
	Positions []float32
	// UVs holds uv per vertex and never changes.
	UVs []float32
	// Indices lists two triangles per grid cell.
	Indices []uint32
	// LineIndices lists every unique triangle edge for wireframe drawing.
	LineIndices []uint32

	rest []float32
}

// NewGeometry builds a w x h grid with segX x segY cells.
func NewGeometry(w, h float32, segX, segY int) *Geometry {
	segX = max(1, segX)
	segY = max(1, segY)
	cols := segX + 1
	rows := segY + 1

	g := &Geometry{
		Width:     w,
		Height:    h,
		SegmentsX: segX,
		SegmentsY: segY,
		Positions: make([]float32, 0, cols*rows*3),
		UVs:       make([]float32, 0, cols*rows*2),
	}

	segW := w / float32(segX)
	segH := h / float32(segY)
	for iy := 0; iy < rows; iy++ {
		y := h/2 - float32(iy)*segH
		for ix := 0; ix < cols; ix++ {
			x := float32(ix)*segW - w/2
			g.Positions = append(g.Positions, x, y, 0)
			g.UVs = append(g.UVs, float32(ix)/float32(segX), 1-float32(iy)/float32(segY))
		}
	}

	idx := func(ix, iy int) uint32 { return uint32(ix + cols*iy) }

	g.Indices = make([]uint32, 0, segX*segY*6)
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := idx(ix, iy)
			b := idx(ix, iy+1)
			c := idx(ix+1, iy+1)
			d := idx(ix+1, iy)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	// Horizontal, vertical, then the b-d diagonal of each cell.
	g.LineIndices = make([]uint32, 0, 2*(segX*rows+segY*cols+segX*segY))
	for iy := 0; iy < rows; iy++ {
		for ix := 0; ix < segX; ix++ {
			g.LineIndices = append(g.LineIndices, idx(ix, iy), idx(ix+1, iy))
		}
	}
	for ix := 0; ix < cols; ix++ {
		for iy := 0; iy < segY; iy++ {
			g.LineIndices = append(g.LineIndices, idx(ix, iy), idx(ix, iy+1))
		}
	}
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			g.LineIndices = append(g.LineIndices, idx(ix, iy+1), idx(ix+1, iy))
		}
	}

	g.rest = slices.Clone(g.Positions)
	return g
}

// VertexCount returns the number of grid vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// RestPositions returns a copy of the undeformed positions.
func (g *Geometry) RestPositions() []float32 {
	return slices.Clone(g.rest)
}
