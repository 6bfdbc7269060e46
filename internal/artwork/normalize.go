package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Canonical card art as the engine expects it.
const (
	Width   = 177
	Height  = 254
	Quality = 95
)

// Normalize decodes an image, scales it to Width x Height when it is any
// other size, flattens transparency onto white and encodes it as JPEG.
func Normalize(r io.Reader, w io.Writer) (image.Point, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return image.Point{}, fmt.Errorf("failed to decode image: %w", err)
	}
	orig := img.Bounds().Size()
	log.Debugf("decoded %s image %dx%d", format, orig.X, orig.Y)

	if orig.X != Width || orig.Y != Height {
		img = resize.Resize(Width, Height, img, resize.Lanczos3)
	}

	if err := jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: Quality}); err != nil {
		return orig, fmt.Errorf("failed to encode image: %w", err)
	}
	return orig, nil
}

// NormalizeBytes is Normalize over in-memory data.
func NormalizeBytes(data []byte) ([]byte, image.Point, error) {
	var buf bytes.Buffer
	orig, err := Normalize(bytes.NewReader(data), &buf)
	if err != nil {
		return nil, orig, err
	}
	return buf.Bytes(), orig, nil
}

// flatten draws img over an opaque white background.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// Dimensions reads only the header of an image.
func Dimensions(r io.Reader) (image.Point, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return image.Point{}, err
	}
	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}
