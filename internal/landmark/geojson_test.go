package landmark

import (
	"errors"
	"testing"

	"github.com/mapzones/zonemap/internal/zone"
)

func TestToGeoJSON(t *testing.T) {
	rec := zone.Record{
		ID:          "hq",
		Type:        "point",
		Coordinates: `{"x":400,"y":300}`,
		Content:     `{"title":"HQ","description":"Main office"}`,
		Style:       `{"icon":"pin","color":"#00ff00"}`,
	}

	fc, err := ToGeoJSON([]zone.Record{rec}, testCanvas, &testBounds, Options{})
	if err != nil {
		t.Fatalf("ToGeoJSON error: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("fc = %+v", fc)
	}

	f := fc.Features[0]
	if f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) != 2 {
		t.Fatalf("geometry = %+v", f.Geometry)
	}
	// GeoJSON order is [lng, lat].
	if f.Geometry.Coordinates[0] > -73 || f.Geometry.Coordinates[1] < 40 {
		t.Errorf("coordinates = %v, want [lng lat]", f.Geometry.Coordinates)
	}
	if f.Properties["name"] != "HQ" || f.Properties["icon"] != "pin" || f.Properties["color"] != "#00ff00" {
		t.Errorf("properties = %v", f.Properties)
	}
	if f.Properties["description"] != "Main office" {
		t.Errorf("description property = %v", f.Properties["description"])
	}
	if _, ok := f.Properties["contentUrl"]; ok {
		t.Error("contentUrl property set for zone without videos/links")
	}
}

func TestToGeoJSON_MissingBounds(t *testing.T) {
	_, err := ToGeoJSON(nil, testCanvas, nil, Options{})
	if !errors.Is(err, ErrMissingBounds) {
		t.Errorf("error = %v, want ErrMissingBounds", err)
	}
}
