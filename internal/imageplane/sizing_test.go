package imageplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayoutWorkedExample(t *testing.T) {
	l, err := ComputeLayout(Viewport{Width: 1000, Height: 800}, 0.35, 0.6, 2000, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 350, l.Box.W, 1e-4)
	assert.InDelta(t, 480, l.Box.H, 1e-4)
	assert.InDelta(t, 350, l.W, 1e-4)
	assert.InDelta(t, 175, l.H, 1e-4)
	assert.Equal(t, 11, l.SegmentsX)
	assert.Equal(t, 16, l.SegmentsY)
}

func TestFitHeightLimited(t *testing.T) {
	// Box aspect 4 is wider than the square image.
	s, err := Fit(Size{W: 400, H: 100}, 500, 500)
	require.NoError(t, err)
	assert.InDelta(t, 100, s.H, 1e-4)
	assert.InDelta(t, 100, s.W, 1e-4)
}

func TestFitNeverUpscales(t *testing.T) {
	s, err := Fit(Size{W: 350, H: 480}, 100, 50)
	require.NoError(t, err)
	assert.InDelta(t, 100, s.W, 1e-4)
	assert.InDelta(t, 50, s.H, 1e-4)

	s, err = Fit(Size{W: 1000, H: 100}, 60, 80)
	require.NoError(t, err)
	assert.InDelta(t, 80, s.H, 1e-4)
	assert.InDelta(t, 60, s.W, 1e-4)
}

func TestFitBoundsAndAspect(t *testing.T) {
	boxes := []Size{{350, 480}, {1000, 100}, {100, 1000}, {64, 64}, {1920, 1080}, {31, 17}}
	natives := [][2]int{{2000, 1000}, {1000, 2000}, {1, 1}, {640, 480}, {4096, 16}, {16, 4096}, {350, 480}}

	for _, box := range boxes {
		for _, n := range natives {
			s, err := Fit(box, n[0], n[1])
			require.NoError(t, err)

			aspect := float32(n[0]) / float32(n[1])
			limW := min(box.W, float32(n[0]))
			limH := min(box.H, float32(n[1]))

			assert.LessOrEqual(t, s.W, limW*(1+1e-5), "box %v native %v", box, n)
			assert.LessOrEqual(t, s.H, limH*(1+1e-5), "box %v native %v", box, n)
			assert.InEpsilon(t, aspect, s.W/s.H, 1e-5, "box %v native %v", box, n)
		}
	}
}

func TestComputeLayoutDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		wr, hr float32
		nw, nh int
	}{
		{"zero viewport width", Viewport{0, 800}, 0.35, 0.6, 100, 100},
		{"negative viewport height", Viewport{1000, -1}, 0.35, 0.6, 100, 100},
		{"zero width ratio", testViewport, 0, 0.6, 100, 100},
		{"negative height ratio", testViewport, 0.35, -0.5, 100, 100},
		{"zero image width", testViewport, 0.35, 0.6, 0, 100},
		{"zero image height", testViewport, 0.35, 0.6, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLayout(tt.vp, tt.wr, tt.hr, tt.nw, tt.nh)
			assert.ErrorIs(t, err, ErrDegenerateSize)
		})
	}
}

func TestSubdivisions(t *testing.T) {
	tests := []struct {
		box        Size
		segX, segY int
	}{
		{Size{350, 480}, 11, 16},
		{Size{30, 30}, 1, 1},
		{Size{29.9, 5}, 1, 1},
		{Size{0.5, 0.5}, 1, 1},
		{Size{672, 480}, 22, 16},
	}
	for _, tt := range tests {
		segX, segY := Subdivisions(tt.box)
		assert.Equal(t, tt.segX, segX, "box %v", tt.box)
		assert.Equal(t, tt.segY, segY, "box %v", tt.box)
	}
}
