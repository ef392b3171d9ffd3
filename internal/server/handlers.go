// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mapzones/zonemap/internal/config"
	"github.com/mapzones/zonemap/internal/landmark"
	"github.com/mapzones/zonemap/internal/zone"

	"github.com/rs/zerolog/log"
)

const etagCap = 64

// HandleMapsList serves the JSON configuration of available maps.
func (s *ServerContext) HandleMapsList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Config.Maps)
}

// HandleMapResource serves landmark exports and the source image for a map.
// Paths: /maps/{idOrAlias}/{landmarks.json|landmarks.csv|landmarks.geojson|image}
func (s *ServerContext) HandleMapResource(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}

	realID, ok := s.MapNameResolver[parts[1]]
	if !ok {
		http.NotFound(w, r)
		return
	}
	m := s.mapByID(realID)
	if m == nil {
		http.NotFound(w, r)
		return
	}

	switch parts[2] {
	case "landmarks.json":
		s.serveLandmarks(w, m)
	case "landmarks.csv":
		s.serveCSV(w, m)
	case "landmarks.geojson":
		s.serveGeoJSON(w, m)
	case "image":
		if m.Image == "" || !s.serveFile(w, r, m.Image, "") {
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

// serveLandmarks writes the in-memory landmark sequence. A map without
// bounds yields an empty list, not an error.
func (s *ServerContext) serveLandmarks(w http.ResponseWriter, m *config.Map) {
	records, err := m.Zones()
	if err != nil {
		s.zoneError(w, m.ID, err)
		return
	}

	landmarks, err := landmark.FromZones(records, *m.Canvas, m.Bounds, s.Opts)
	if err != nil {
		s.zoneError(w, m.ID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(landmarks)
}

// serveCSV writes the CSV export. Missing bounds are a client-visible
// condition here, not an empty file.
func (s *ServerContext) serveCSV(w http.ResponseWriter, m *config.Map) {
	records, err := m.Zones()
	if err != nil {
		s.zoneError(w, m.ID, err)
		return
	}

	text, err := landmark.ToCSV(records, *m.Canvas, m.Bounds, s.Opts)
	if err != nil {
		if errors.Is(err, landmark.ErrMissingBounds) {
			http.Error(w, "map has no geographic bounds", http.StatusUnprocessableEntity)
			return
		}
		s.zoneError(w, m.ID, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="landmarks.csv"`)
	_, _ = w.Write([]byte(text))
}

// serveGeoJSON writes the minified GeoJSON export for the map viewer.
func (s *ServerContext) serveGeoJSON(w http.ResponseWriter, m *config.Map) {
	records, err := m.Zones()
	if err != nil {
		s.zoneError(w, m.ID, err)
		return
	}

	fc, err := landmark.ToGeoJSON(records, *m.Canvas, m.Bounds, s.Opts)
	if err != nil {
		if errors.Is(err, landmark.ErrMissingBounds) {
			http.Error(w, "map has no geographic bounds", http.StatusUnprocessableEntity)
			return
		}
		s.zoneError(w, m.ID, err)
		return
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.minifier.Minify("application/json", &buf, bytes.NewReader(raw)); err != nil {
		// Minification is cosmetic; fall back to the marshaled form.
		buf.Reset()
		buf.Write(raw)
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(buf.Bytes())
}

// zoneError maps conversion failures to HTTP responses. Malformed zone
// payloads are server-side data corruption, reported as 500 and logged with
// the offending zone id.
func (s *ServerContext) zoneError(w http.ResponseWriter, mapID string, err error) {
	var perr *zone.PayloadError
	if errors.As(err, &perr) {
		log.Error().
			Err(perr.Err).
			Str("map", mapID).
			Str("zone", perr.ZoneID).
			Str("field", perr.Field).
			Msg("Malformed zone payload")
		http.Error(w, "malformed zone data", http.StatusInternalServerError)
		return
	}

	log.Error().Err(err).Str("map", mapID).Msg("Failed to build landmarks")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
