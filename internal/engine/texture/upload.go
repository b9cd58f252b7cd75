package texture

import "image"

// BottomUp returns the pixels of img as tightly packed RGBA rows with the
// bottom row first, the order glTexImage2D expects for t = 0 at the bottom.
func BottomUp(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	row := w * 4
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Max.Y-1-y)
		copy(out[y*row:(y+1)*row], img.Pix[src:src+row])
	}
	return out
}
