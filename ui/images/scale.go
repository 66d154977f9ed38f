package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/soocke/bbox-annotator-go/domain/annotate"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = pngEncoder.Encode(&buf, img)
	return buf.Bytes()
}

// LoadDisplay decodes the image at path and shrinks it by factor so it
// matches the display coordinate space. A factor of 1 or less returns the
// image at its original size.
func LoadDisplay(path string, factor float64) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return ScaleByFactor(img, factor), nil
}

// ScaleByFactor resizes src to annotate.DisplaySize using a box filter,
// which averages cleanly when downsampling large photos.
func ScaleByFactor(src image.Image, factor float64) image.Image {
	if src == nil || factor <= 1 {
		return src
	}
	b := src.Bounds()
	w, h := annotate.DisplaySize(b.Dx(), b.Dy(), factor)
	return imaging.Resize(src, max(w, 1), max(h, 1), imaging.Box)
}
