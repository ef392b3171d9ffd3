package landmark

import (
	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/zone"
)

// ToFeatureCollection converts landmarks into GeoJSON Point features for the
// map/globe rendering surface. Optional fields are present only when set.
func ToFeatureCollection(landmarks []Landmark) geo.FeatureCollection {
	fc := geo.NewFeatureCollection()

	for _, lm := range landmarks {
		props := map[string]interface{}{
			"name":  lm.Name,
			"icon":  lm.Icon,
			"color": lm.Color,
		}
		if lm.ContentURL != "" {
			props["contentUrl"] = lm.ContentURL
		}
		if lm.Description != "" {
			props["description"] = lm.Description
		}
		if len(lm.Images) > 0 {
			props["images"] = lm.Images
		}
		if len(lm.Links) > 0 {
			props["links"] = lm.Links
		}
		if len(lm.Videos) > 0 {
			props["videos"] = lm.Videos
		}

		fc.Features = append(fc.Features, geo.PointFeature(
			geo.GeoPoint{Lat: lm.Lat, Lng: lm.Lon}, props))
	}

	return fc
}

// ToGeoJSON projects zones and returns their GeoJSON feature collection.
// Like ToCSV it refuses to export a map without bounds.
func ToGeoJSON(records []zone.Record, canvas geo.Canvas, bounds *geo.Bounds, opts Options) (geo.FeatureCollection, error) {
	if bounds == nil {
		return geo.FeatureCollection{}, ErrMissingBounds
	}

	landmarks, err := FromZones(records, canvas, bounds, opts)
	if err != nil {
		return geo.FeatureCollection{}, err
	}

	return ToFeatureCollection(landmarks), nil
}
