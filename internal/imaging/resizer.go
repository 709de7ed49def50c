// Package imaging holds the two image-side components of the catalog
// pipeline: the Resizer that normalizes uploads into bounded JPEGs and the
// Acquirer that obtains image bytes for catalog rendering.
package imaging

import (
	"bytes"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/solestack/catalog-service/internal/apperr"
)

const (
	// MaxEdge bounds the longest edge of a stored product image.
	MaxEdge = 1200
	// JPEGQuality is tuned for catalog print use.
	JPEGQuality = 90
)

type Resizer struct{}

func NewResizer() *Resizer {
	return &Resizer{}
}

// Resize normalizes arbitrary raster bytes into a JPEG whose longest edge
// is at most MaxEdge, preserving aspect ratio and never upscaling. A decode
// failure returns an ImageDecode error; callers fall back to the original
// bytes, resizing is best-effort.
func (r *Resizer) Resize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindImageDecode, "failed to decode image", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxEdge || bounds.Dy() > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, apperr.Wrap(apperr.KindImageDecode, "failed to encode image", err)
	}
	return buf.Bytes(), nil
}
