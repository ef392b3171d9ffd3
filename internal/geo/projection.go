package geo

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCanvasSize is returned when canvas width or height is not positive.
	ErrInvalidCanvasSize = errors.New("invalid canvas size")
	// ErrInvalidBounds is returned when geographic bounds are degenerate or misordered.
	ErrInvalidBounds = errors.New("invalid geographic bounds")
)

// Bounds is the real-world latitude/longitude rectangle the full canvas
// extent maps onto. Requires MinLat < MaxLat and MinLng < MaxLng.
type Bounds struct {
	MinLat float64 `json:"minLat" yaml:"min_lat"`
	MaxLat float64 `json:"maxLat" yaml:"max_lat"`
	MinLng float64 `json:"minLng" yaml:"min_lng"`
	MaxLng float64 `json:"maxLng" yaml:"max_lng"`
}

// Validate checks bounds ordering on both axes.
func (b Bounds) Validate() error {
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("%w: min_lat %.6f >= max_lat %.6f", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	if b.MinLng >= b.MaxLng {
		return fmt.Errorf("%w: min_lng %.6f >= max_lng %.6f", ErrInvalidBounds, b.MinLng, b.MaxLng)
	}
	return nil
}

// Canvas is the pixel extent the zone coordinates are expressed in.
// Origin is top-left, y increasing downward.
type Canvas struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Validate checks that both dimensions are positive.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, c.Width, c.Height)
	}
	return nil
}

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// mercatorY maps latitude in degrees to Mercator-Y.
func mercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360.0))
}

// latFromMercatorY is the inverse of mercatorY, returning degrees.
func latFromMercatorY(y float64) float64 {
	return (2.0*math.Atan(math.Exp(y)) - math.Pi/2.0) * 180.0 / math.Pi
}

// PixelToGeo converts a canvas pixel position to a WGS84 coordinate.
//
// Longitude is a linear interpolation across the canvas width. Latitude is
// interpolated in Mercator-Y space so the result stays aligned with Web
// Mercator basemap tiles; interpolating raw latitude instead would drift
// north-south against the imagery. Pixel y=0 maps to MaxLat, y=height to
// MinLat.
func PixelToGeo(x, y float64, canvas Canvas, bounds Bounds) (GeoPoint, error) {
	if err := canvas.Validate(); err != nil {
		return GeoPoint{}, err
	}
	if err := bounds.Validate(); err != nil {
		return GeoPoint{}, err
	}

	lng := bounds.MinLng + (x/float64(canvas.Width))*(bounds.MaxLng-bounds.MinLng)

	mercMin := mercatorY(bounds.MinLat)
	mercMax := mercatorY(bounds.MaxLat)
	relY := y / float64(canvas.Height)
	lat := latFromMercatorY(mercMax + relY*(mercMin-mercMax))

	return GeoPoint{Lat: lat, Lng: lng}, nil
}

// GeoToPixel converts a WGS84 coordinate to a canvas pixel position.
// It is the exact inverse of PixelToGeo: round-tripping a coordinate
// strictly inside the bounds reproduces it within 1e-9 degrees.
func GeoToPixel(lat, lng float64, canvas Canvas, bounds Bounds) (x, y float64, err error) {
	if err := canvas.Validate(); err != nil {
		return 0, 0, err
	}
	if err := bounds.Validate(); err != nil {
		return 0, 0, err
	}

	x = (lng - bounds.MinLng) / (bounds.MaxLng - bounds.MinLng) * float64(canvas.Width)

	mercMin := mercatorY(bounds.MinLat)
	mercMax := mercatorY(bounds.MaxLat)
	relY := (mercMax - mercatorY(lat)) / (mercMax - mercMin)
	y = relY * float64(canvas.Height)

	return x, y, nil
}
