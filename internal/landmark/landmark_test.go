package landmark

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/zone"
)

var (
	testCanvas = geo.Canvas{Width: 800, Height: 600}
	testBounds = geo.Bounds{MinLat: 40.70, MaxLat: 40.80, MinLng: -74.02, MaxLng: -73.92}
)

func pointZone(id string, x, y float64) zone.Record {
	coords := fmt.Sprintf(`{"x":%g,"y":%g}`, x, y)
	return zone.Record{ID: id, Type: "point", Coordinates: coords}
}

func TestFromZones_EndToEnd(t *testing.T) {
	rec := zone.Record{
		ID:          "hq",
		Type:        "point",
		Coordinates: `{"x":400,"y":300}`,
		Content:     `{"title":"HQ"}`,
		Style:       `{"icon":"pin"}`,
	}

	got, err := FromZones([]zone.Record{rec}, testCanvas, &testBounds, Options{})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	lm := got[0]
	if lm.Name != "HQ" || lm.Icon != "pin" {
		t.Errorf("landmark = %+v", lm)
	}
	if math.Abs(lm.Lon-(-73.97)) > 1e-9 {
		t.Errorf("lon = %v, want -73.97", lm.Lon)
	}
	// Mercator-interpolated midpoint latitude, not the naive 40.75.
	const wantLat = 40.750018798407346
	if math.Abs(lm.Lat-wantLat) > 1e-9 {
		t.Errorf("lat = %.15f, want %.15f", lm.Lat, wantLat)
	}
	if lm.Color != DefaultColor {
		t.Errorf("color = %q, want default %q", lm.Color, DefaultColor)
	}
}

func TestFromZones_Defaults(t *testing.T) {
	rec := pointZone("z1", 100, 100)

	got, err := FromZones([]zone.Record{rec}, testCanvas, &testBounds, Options{DefaultIcon: "flag", DefaultColor: "#123456"})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}

	lm := got[0]
	if lm.Name != DefaultName {
		t.Errorf("name = %q, want %q", lm.Name, DefaultName)
	}
	if lm.Icon != "flag" {
		t.Errorf("icon = %q, want flag", lm.Icon)
	}
	if lm.Color != "#123456" {
		t.Errorf("color = %q, want #123456", lm.Color)
	}
	if lm.ContentURL != "" || lm.Description != "" || lm.Images != nil || lm.Links != nil || lm.Videos != nil {
		t.Errorf("optional fields not empty: %+v", lm)
	}
}

func TestFromZones_ContentURLPriority(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"video wins over link", `{"videos":["v.mp4"],"links":[{"url":"https://a"}]}`, "v.mp4"},
		{"link when no videos", `{"links":[{"url":"https://a"},{"url":"https://b"}]}`, "https://a"},
		{"empty first video falls through", `{"videos":[""],"links":[{"url":"https://a"}]}`, "https://a"},
		{"nothing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := pointZone("z1", 10, 10)
			rec.Content = tt.content

			got, err := FromZones([]zone.Record{rec}, testCanvas, &testBounds, Options{})
			if err != nil {
				t.Fatalf("FromZones error: %v", err)
			}
			if got[0].ContentURL != tt.want {
				t.Errorf("contentUrl = %q, want %q", got[0].ContentURL, tt.want)
			}
		})
	}
}

func TestFromZones_PreservesOrderAndCount(t *testing.T) {
	records := []zone.Record{pointZone("a", 10, 10), pointZone("b", 20, 20), pointZone("c", 30, 30)}
	for i := range records {
		records[i].Content = `{"title":"` + records[i].ID + `"}`
	}

	got, err := FromZones(records, testCanvas, &testBounds, Options{})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Name != want {
			t.Errorf("landmark[%d].Name = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestFromZones_NilBounds(t *testing.T) {
	got, err := FromZones([]zone.Record{pointZone("z1", 10, 10)}, testCanvas, nil, Options{})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0 for nil bounds", len(got))
	}
}

func TestFromZones_MalformedStopsBatch(t *testing.T) {
	records := []zone.Record{
		pointZone("ok", 10, 10),
		{ID: "bad", Type: "point", Coordinates: `{`},
		pointZone("after", 20, 20),
	}

	_, err := FromZones(records, testCanvas, &testBounds, Options{})
	var perr *zone.PayloadError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want PayloadError", err)
	}
	if perr.ZoneID != "bad" {
		t.Errorf("PayloadError.ZoneID = %q, want bad", perr.ZoneID)
	}
}

func TestFromZones_SkipInvalid(t *testing.T) {
	records := []zone.Record{
		pointZone("ok", 10, 10),
		{ID: "bad", Type: "point", Coordinates: `{`},
		pointZone("after", 20, 20),
	}

	got, err := FromZones(records, testCanvas, &testBounds, Options{SkipInvalid: true})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 with SkipInvalid", len(got))
	}
}

func TestFromZones_InvalidGeometryContext(t *testing.T) {
	records := []zone.Record{pointZone("z1", 10, 10)}

	if _, err := FromZones(records, geo.Canvas{Width: 0, Height: 600}, &testBounds, Options{}); !errors.Is(err, geo.ErrInvalidCanvasSize) {
		t.Errorf("error = %v, want ErrInvalidCanvasSize", err)
	}

	bad := geo.Bounds{MinLat: 40.8, MaxLat: 40.7, MinLng: -74.02, MaxLng: -73.92}
	if _, err := FromZones(records, testCanvas, &bad, Options{}); !errors.Is(err, geo.ErrInvalidBounds) {
		t.Errorf("error = %v, want ErrInvalidBounds", err)
	}
}

func TestFromZones_CopiesDetailFields(t *testing.T) {
	rec := pointZone("z1", 10, 10)
	rec.Content = `{"title":"T","description":"D","images":["a.png"],"links":[{"url":"https://a","label":"A"}],"videos":["v.mp4"]}`

	got, err := FromZones([]zone.Record{rec}, testCanvas, &testBounds, Options{})
	if err != nil {
		t.Fatalf("FromZones error: %v", err)
	}

	lm := got[0]
	if lm.Description != "D" {
		t.Errorf("description = %q", lm.Description)
	}
	if len(lm.Images) != 1 || lm.Images[0] != "a.png" {
		t.Errorf("images = %v", lm.Images)
	}
	if len(lm.Links) != 1 || lm.Links[0].Label != "A" {
		t.Errorf("links = %v", lm.Links)
	}
	if len(lm.Videos) != 1 || lm.Videos[0] != "v.mp4" {
		t.Errorf("videos = %v", lm.Videos)
	}
}
