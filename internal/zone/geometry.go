// Package zone models annotated map zones and their decoding from the
// persistence wire format.
package zone

import "github.com/mapzones/zonemap/internal/geo"

// GeometryType discriminates the zone geometry union.
type GeometryType string

const (
	TypePoint     GeometryType = "point"
	TypeRectangle GeometryType = "rectangle"
	TypeCircle    GeometryType = "circle"
)

// Geometry is the closed set of zone shapes. Center returns the
// representative pixel point that stands in for the whole shape during
// projection.
type Geometry interface {
	Center() (x, y float64)
}

// Point is a single pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the point itself.
func (p Point) Center() (float64, float64) { return p.X, p.Y }

// Rect is an axis-aligned rectangle, top-left corner plus extent.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() (float64, float64) { return r.X + r.Width/2, r.Y + r.Height/2 }

// Circle is a center plus radius. The radius has no geographic meaning
// without an anisotropic scale factor, so projection only uses the center.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Center returns the circle's center.
func (c Circle) Center() (float64, float64) { return c.X, c.Y }

// Project converts a geometry's representative point to a geographic
// coordinate within the given canvas and bounds.
func Project(g Geometry, canvas geo.Canvas, bounds geo.Bounds) (geo.GeoPoint, error) {
	x, y := g.Center()
	return geo.PixelToGeo(x, y, canvas, bounds)
}
