// Package texture decodes image files into RGBA pixel data for GPU upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxDimension is the largest texture edge uploaded to the GPU.
// Larger images are downscaled, keeping their aspect ratio.
const MaxDimension = 4096

// sniffLen is the header size filetype needs to identify any format it knows.
const sniffLen = 262

// ErrUnsupportedFormat is returned for data that is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image is decoded pixel data ready for upload.
type Image struct {
	RGBA *image.RGBA
	// Native size of the source image before any downscale.
	NativeWidth  int
	NativeHeight int
	// Format is the sniffed file extension, e.g. "png".
	Format string
}

// Decode reads an image, converts it to RGBA and downscales it to MaxDimension.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	head := data[:min(len(data), sniffLen)]
	kind, _ := filetype.Match(head)
	if kind == filetype.Unknown || !filetype.IsImage(head) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.Extension)
		}
		return nil, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}

	b := src.Bounds()
	out := &Image{
		NativeWidth:  b.Dx(),
		NativeHeight: b.Dy(),
		Format:       kind.Extension,
	}
	if out.NativeWidth <= 0 || out.NativeHeight <= 0 {
		return nil, fmt.Errorf("decoding %s: empty image", kind.Extension)
	}

	if w, h, ok := fitWithin(out.NativeWidth, out.NativeHeight, MaxDimension); ok {
		out.RGBA = transform.Resize(src, w, h, transform.Linear)
	} else {
		out.RGBA = clone.AsRGBA(src)
	}
	return out, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// fitWithin scales w x h down so neither edge exceeds limit.
// ok is false when no scaling is needed.
func fitWithin(w, h, limit int) (nw, nh int, ok bool) {
	if w <= limit && h <= limit {
		return w, h, false
	}
	if w >= h {
		nw = limit
		nh = max(1, h*limit/w)
	} else {
		nh = limit
		nw = max(1, w*limit/h)
	}
	return nw, nh, true
}
