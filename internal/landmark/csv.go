package landmark

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/zone"
)

// ErrMissingBounds is returned when an export is requested for a map with no
// geographic bounds. Unlike FromZones, exports treat this as a hard error:
// a silently empty file is a likely caller mistake.
var ErrMissingBounds = errors.New("missing geographic bounds")

// csvHeader is a compatibility surface; column set and order must not change.
const csvHeader = "name,lon,lat,icon,color,contentUrl"

// ToCSV serializes zones as CSV text with the fixed six-column layout.
// Coordinates are fixed-point with 7 decimals. Rows are joined with a single
// newline and the final row carries no trailing newline.
func ToCSV(records []zone.Record, canvas geo.Canvas, bounds *geo.Bounds, opts Options) (string, error) {
	if bounds == nil {
		return "", ErrMissingBounds
	}

	landmarks, err := FromZones(records, canvas, bounds, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	for _, lm := range landmarks {
		b.WriteByte('\n')
		b.WriteString(escapeCSV(lm.Name))
		b.WriteByte(',')
		fmt.Fprintf(&b, "%.7f,%.7f", lm.Lon, lm.Lat)
		b.WriteByte(',')
		b.WriteString(escapeCSV(lm.Icon))
		b.WriteByte(',')
		b.WriteString(escapeCSV(lm.Color))
		b.WriteByte(',')
		b.WriteString(escapeCSV(lm.ContentURL))
	}

	return b.String(), nil
}

// escapeCSV quotes a field containing a comma, double-quote or newline,
// doubling internal quotes. Applied to every column uniformly, including
// colors and URLs, as a fixed policy.
func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
