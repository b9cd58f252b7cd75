package texture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodePNG(t, 20, 10)))
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 20, img.NativeWidth)
	assert.Equal(t, 10, img.NativeHeight)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.RGBA.Bounds())
	assert.Equal(t, color.RGBA{R: 3, G: 4, B: 200, A: 255}, img.RGBA.RGBAAt(3, 4))
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(8, 6)))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, 8, img.NativeWidth)
	assert.Equal(t, 6, img.NativeHeight)
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image, just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeRejectsEmpty(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeTruncatedPNG(t *testing.T) {
	data := encodePNG(t, 20, 10)
	_, err := Decode(bytes.NewReader(data[:40]))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeDownscalesLargeImages(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodePNG(t, MaxDimension*2, 4)))
	require.NoError(t, err)

	// Native size is kept for plane sizing.
	assert.Equal(t, MaxDimension*2, img.NativeWidth)
	assert.Equal(t, 4, img.NativeHeight)
	assert.Equal(t, MaxDimension, img.RGBA.Bounds().Dx())
	assert.Equal(t, 2, img.RGBA.Bounds().Dy())
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, limit int
		nw, nh      int
		ok          bool
	}{
		{100, 50, 200, 100, 50, false},
		{400, 100, 200, 200, 50, true},
		{100, 400, 200, 50, 200, true},
		{10000, 1, 100, 100, 1, true},
	}
	for _, tt := range tests {
		nw, nh, ok := fitWithin(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.nw, nw)
		assert.Equal(t, tt.nh, nh)
	}
}

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plane.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 16, 8), 0644))

	f := NewLoader().Load(path)
	assert.Equal(t, path, f.Path())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	img, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, img.NativeWidth)

	assert.True(t, f.Ready())
	again, err := f.Result()
	require.NoError(t, err)
	assert.Same(t, img, again)
}

func TestLoaderMissingFile(t *testing.T) {
	f := NewLoader().Load(filepath.Join(t.TempDir(), "missing.png"))

	<-f.Done()
	_, err := f.Result()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFuturePendingAndCancelledWait(t *testing.T) {
	f, _ := NewFuture("pending.png")

	assert.False(t, f.Ready())
	_, err := f.Result()
	assert.ErrorIs(t, err, ErrPending)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolved(t *testing.T) {
	img := &Image{NativeWidth: 1, NativeHeight: 1}
	f := Resolved(img, nil)

	assert.True(t, f.Ready())
	got, err := f.Result()
	require.NoError(t, err)
	assert.Same(t, img, got)
}

func TestNewFutureCompletesOnce(t *testing.T) {
	f, complete := NewFuture("a.png")
	img := &Image{NativeWidth: 2, NativeHeight: 2}

	complete(img, nil)
	complete(nil, ErrUnsupportedFormat)

	got, err := f.Result()
	require.NoError(t, err)
	assert.Same(t, img, got)
}

func TestBottomUpFlipsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	for y := 0; y < 3; y++ {
		img.Set(0, y, color.RGBA{R: uint8(y), A: 255})
	}

	rows := BottomUp(img)
	require.Len(t, rows, 12)
	assert.Equal(t, []byte{2, 0, 0, 255}, rows[0:4])
	assert.Equal(t, []byte{1, 0, 0, 255}, rows[4:8])
	assert.Equal(t, []byte{0, 0, 0, 255}, rows[8:12])
}

func TestBottomUpSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	rows := BottomUp(sub)
	require.Len(t, rows, 2*2*4)
	assert.Equal(t, []byte{1, 2, 0, 255, 2, 2, 0, 255}, rows[:8])
	assert.Equal(t, []byte{1, 1, 0, 255, 2, 1, 0, 255}, rows[8:])
}

func TestBottomUpEmpty(t *testing.T) {
	assert.Nil(t, BottomUp(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}
