package imageplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeometryLayout(t *testing.T) {
	g := NewGeometry(300, 200, 3, 2)
	cols := 4

	require.Equal(t, 12, g.VertexCount())
	require.Len(t, g.UVs, 24)
	require.Len(t, g.RestPositions(), len(g.Positions))

	// First vertex is top-left, last is bottom-right.
	assert.Equal(t, []float32{-150, 100, 0}, g.Positions[:3])
	assert.Equal(t, []float32{0, 1}, g.UVs[:2])
	assert.Equal(t, []float32{150, -100, 0}, g.Positions[len(g.Positions)-3:])
	assert.Equal(t, []float32{1, 0}, g.UVs[len(g.UVs)-2:])

	// Centre vertex of the middle row.
	mid := (1*cols + 1) * 3
	assert.InDelta(t, -50, g.Positions[mid], 1e-4)
	assert.InDelta(t, 0, g.Positions[mid+1], 1e-4)
}

func TestNewGeometryIndices(t *testing.T) {
	g := NewGeometry(300, 200, 3, 2)
	cols := uint32(4)

	require.Len(t, g.Indices, 3*2*6)
	assert.Equal(t, []uint32{0, cols, 1, cols, cols + 1, 1}, g.Indices[:6])

	// Unique edges: horizontal + vertical + one diagonal per cell.
	assert.Len(t, g.LineIndices, 2*(3*3+2*4+3*2))

	n := uint32(g.VertexCount())
	for _, i := range g.Indices {
		assert.Less(t, i, n)
	}
	for _, i := range g.LineIndices {
		assert.Less(t, i, n)
	}
}

func TestNewGeometryMinimumSegments(t *testing.T) {
	g := NewGeometry(10, 10, 0, -3)
	assert.Equal(t, 1, g.SegmentsX)
	assert.Equal(t, 1, g.SegmentsY)
	assert.Equal(t, 4, g.VertexCount())
}

func TestRestPositionsIsCopy(t *testing.T) {
	g := NewGeometry(100, 100, 2, 2)
	rest := g.RestPositions()
	rest[0] = 999

	assert.NotEqual(t, float32(999), g.RestPositions()[0])
}

func TestFullRelaxRestoresRest(t *testing.T) {
	g := NewGeometry(100, 100, 4, 4)
	Distort(g.Positions, g.UVs, 50, 50, 0.1)
	require.Greater(t, MaxDisplacement(g.Positions, g.RestPositions()), float32(0))

	Relax(g.Positions, g.RestPositions(), 1)
	assert.InDelta(t, 0, MaxDisplacement(g.Positions, g.RestPositions()), 1e-4)
}
