// Package landmark turns decoded zones into the external-facing landmark
// sequence and its CSV and GeoJSON serializations.
package landmark

import (
	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/zone"
)

const (
	// DefaultName is used for zones with no title.
	DefaultName = "Unnamed Zone"
	// DefaultColor is used for zones with no style color.
	DefaultColor = "#0066CC"
)

// Landmark is the normalized record the 3D rendering surface consumes.
// Color is always set; the remaining optional fields are omitted when empty.
type Landmark struct {
	Name        string      `json:"name"`
	Lon         float64     `json:"lon"`
	Lat         float64     `json:"lat"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	ContentURL  string      `json:"contentUrl,omitempty"`
	Description string      `json:"description,omitempty"`
	Images      []string    `json:"images,omitempty"`
	Links       []zone.Link `json:"links,omitempty"`
	Videos      []string    `json:"videos,omitempty"`
}

// Options control zone conversion.
type Options struct {
	DefaultIcon  string
	DefaultColor string

	// Strict rejects unknown geometry types instead of projecting their
	// x/y as a point.
	Strict bool

	// SkipInvalid drops malformed zones instead of failing the whole batch.
	// Best-effort mode for interactive use; exports default to fail-fast.
	SkipInvalid bool
}

func (o Options) color() string {
	if o.DefaultColor != "" {
		return o.DefaultColor
	}
	return DefaultColor
}

// FromZones projects each zone and builds its landmark, preserving input
// order. A nil bounds returns an empty sequence: a map with no geographic
// context cannot be placed on a globe, which the renderer handles gracefully.
func FromZones(records []zone.Record, canvas geo.Canvas, bounds *geo.Bounds, opts Options) ([]Landmark, error) {
	if bounds == nil {
		return []Landmark{}, nil
	}
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	landmarks := make([]Landmark, 0, len(records))
	for _, rec := range records {
		z, err := zone.Decode(rec, opts.Strict)
		if err != nil {
			if opts.SkipInvalid {
				continue
			}
			return nil, err
		}

		lm, err := fromZone(z, canvas, *bounds, opts)
		if err != nil {
			return nil, err
		}
		landmarks = append(landmarks, lm)
	}

	return landmarks, nil
}

// fromZone builds one landmark from a decoded zone.
func fromZone(z zone.Zone, canvas geo.Canvas, bounds geo.Bounds, opts Options) (Landmark, error) {
	pt, err := zone.Project(z.Geometry, canvas, bounds)
	if err != nil {
		return Landmark{}, err
	}

	lm := Landmark{
		Name:  z.Content.Title,
		Lon:   pt.Lng,
		Lat:   pt.Lat,
		Icon:  z.Style.Icon,
		Color: z.Style.Color,
	}
	if lm.Name == "" {
		lm.Name = DefaultName
	}
	if lm.Icon == "" {
		lm.Icon = opts.DefaultIcon
	}
	if lm.Color == "" {
		lm.Color = opts.color()
	}

	// Videos take priority over links as the detail-view target; never both.
	if len(z.Content.Videos) > 0 && z.Content.Videos[0] != "" {
		lm.ContentURL = z.Content.Videos[0]
	} else if len(z.Content.Links) > 0 && z.Content.Links[0].URL != "" {
		lm.ContentURL = z.Content.Links[0].URL
	}

	if z.Content.Description != "" {
		lm.Description = z.Content.Description
	}
	if len(z.Content.Images) > 0 {
		lm.Images = z.Content.Images
	}
	if len(z.Content.Links) > 0 {
		lm.Links = z.Content.Links
	}
	if len(z.Content.Videos) > 0 {
		lm.Videos = z.Content.Videos
	}

	return lm, nil
}
