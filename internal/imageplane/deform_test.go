package imageplane

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistortPinsEdges(t *testing.T) {
	g := NewGeometry(350, 175, 11, 5)
	rest := g.RestPositions()

	Distort(g.Positions, g.UVs, 1e6, -1e6, 0.1)

	for i := 0; i < g.VertexCount(); i++ {
		u, v := g.UVs[i*2], g.UVs[i*2+1]
		if v == 0 || v == 1 {
			assert.Equal(t, rest[i*3], g.Positions[i*3], "x of vertex %d (v=%v)", i, v)
		}
		if u == 0 || u == 1 {
			assert.Equal(t, rest[i*3+1], g.Positions[i*3+1], "y of vertex %d (u=%v)", i, u)
		}
		assert.Equal(t, rest[i*3+2], g.Positions[i*3+2], "z never moves")
	}
}

func TestDistortPeaksAtMidline(t *testing.T) {
	g := NewGeometry(100, 100, 2, 2)
	rest := g.RestPositions()

	Distort(g.Positions, g.UVs, 10, 20, 0.5)

	// Centre vertex has u = v = 0.5.
	c := 4
	assert.InDelta(t, rest[c*3]+5, g.Positions[c*3], 1e-4)
	assert.InDelta(t, rest[c*3+1]+10, g.Positions[c*3+1], 1e-4)
}

func TestEdgeWeight(t *testing.T) {
	assert.Equal(t, float32(0), edgeWeight(0))
	assert.Equal(t, float32(0), edgeWeight(1))
	assert.Equal(t, float32(0), edgeWeight(-0.1))
	assert.InDelta(t, 1, edgeWeight(0.5), 1e-6)
	assert.InDelta(t, math32.Sin(0.25*math32.Pi), edgeWeight(0.25), 1e-6)
}

func TestRelaxRate(t *testing.T) {
	assert.InDelta(t, 0.12, RelaxRate(0.04), 1e-6)
	assert.InDelta(t, 0.6, RelaxRate(0.2), 1e-6)
	assert.Equal(t, float32(1), RelaxRate(0.5))
	assert.Equal(t, float32(0), RelaxRate(-1))
}

func TestRelaxDecaysGeometrically(t *testing.T) {
	g := NewGeometry(350, 175, 11, 5)
	rest := g.RestPositions()
	Distort(g.Positions, g.UVs, 300, -200, 0.1)

	rate := RelaxRate(0.04)
	prev := MaxDisplacement(g.Positions, rest)
	require.Greater(t, prev, float32(1))
	d0 := prev

	for n := 1; n <= 120; n++ {
		Relax(g.Positions, rest, rate)
		d := MaxDisplacement(g.Positions, rest)
		assert.LessOrEqual(t, d, prev, "frame %d", n)
		assert.LessOrEqual(t, d, d0*math32.Pow(1-rate, float32(n))+1e-3, "frame %d", n)
		prev = d
	}
	assert.Less(t, prev, float32(1e-3))
}

func TestRelaxFullRateSnaps(t *testing.T) {
	g := NewGeometry(100, 100, 3, 3)
	Distort(g.Positions, g.UVs, 50, 50, 0.1)

	Relax(g.Positions, g.RestPositions(), 1)
	assert.InDeltaSlice(t, g.RestPositions(), g.Positions, 1e-4)
}
