package zone

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Record is the wire shape zones arrive in from the persistence collaborator:
// coordinates, content and style are JSON-encoded strings.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Coordinates string `json:"coordinates" yaml:"coordinates"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	Style       string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Zone is a fully decoded zone.
type Zone struct {
	ID       string
	Type     GeometryType
	Geometry Geometry
	Content  Content
	Style    Style
}

// Content carries the user-authored zone payload. All fields are optional;
// absent fields stay zero.
type Content struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Links       []Link   `json:"links,omitempty"`
	Videos      []string `json:"videos,omitempty"`
}

// Link is a titled external reference inside zone content.
type Link struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Style carries zone display hints.
type Style struct {
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// PayloadError reports a zone payload that could not be decoded,
// identifying the zone and the offending field.
type PayloadError struct {
	ZoneID string
	Field  string
	Err    error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("zone %q: malformed %s payload: %v", e.ZoneID, e.Field, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports an unknown geometry type in strict mode.
type UnsupportedTypeError struct {
	ZoneID string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("zone %q: unsupported geometry type %q", e.ZoneID, e.Type)
}

// NewID mints a zone id for records authored without one.
func NewID() string { return uuid.NewString() }

// rawGeometry is the superset of coordinate fields across all shapes.
type rawGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius"`
}

// Decode parses a wire record into a typed Zone. Unknown geometry types fall
// back to a point at the payload's x/y; with strict set they return an
// UnsupportedTypeError instead.
func Decode(rec Record, strict bool) (Zone, error) {
	z := Zone{ID: rec.ID, Type: GeometryType(rec.Type)}

	var raw rawGeometry
	if err := json.Unmarshal([]byte(rec.Coordinates), &raw); err != nil {
		return Zone{}, &PayloadError{ZoneID: rec.ID, Field: "coordinates", Err: err}
	}

	switch GeometryType(rec.Type) {
	case TypePoint:
		z.Geometry = Point{X: raw.X, Y: raw.Y}
	case TypeRectangle:
		z.Geometry = Rect{X: raw.X, Y: raw.Y, Width: raw.Width, Height: raw.Height}
	case TypeCircle:
		z.Geometry = Circle{X: raw.X, Y: raw.Y, Radius: raw.Radius}
	default:
		if strict {
			return Zone{}, &UnsupportedTypeError{ZoneID: rec.ID, Type: rec.Type}
		}
		// All known shapes expose x/y, so a point is a safe stand-in.
		z.Geometry = Point{X: raw.X, Y: raw.Y}
	}

	if rec.Content != "" {
		if err := json.Unmarshal([]byte(rec.Content), &z.Content); err != nil {
			return Zone{}, &PayloadError{ZoneID: rec.ID, Field: "content", Err: err}
		}
	}
	if rec.Style != "" {
		if err := json.Unmarshal([]byte(rec.Style), &z.Style); err != nil {
			return Zone{}, &PayloadError{ZoneID: rec.ID, Field: "style", Err: err}
		}
	}

	return z, nil
}
