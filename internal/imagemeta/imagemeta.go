// Package imagemeta derives canvas dimensions from map source images.
package imagemeta

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/mapzones/zonemap/internal/geo"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ProbeCanvas reads the image header and returns its pixel dimensions
// without decoding pixel data.
func ProbeCanvas(path string) (geo.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return geo.Canvas{}, err
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return geo.Canvas{}, fmt.Errorf("decode image header %s: %w", path, err)
	}

	canvas := geo.Canvas{Width: cfg.Width, Height: cfg.Height}
	if err := canvas.Validate(); err != nil {
		return geo.Canvas{}, fmt.Errorf("image %s (%s): %w", path, format, err)
	}

	return canvas, nil
}
