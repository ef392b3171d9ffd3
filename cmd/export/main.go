package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mapzones/zonemap/internal/config"
	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/imagemeta"
	"github.com/mapzones/zonemap/internal/landmark"
	"github.com/mapzones/zonemap/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"       env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"        env:"LIMIT_IDS"   description:"Limit processing to specific map ids"`
	OutDir      string   `short:"o" long:"out"          env:"OUT_DIR"     description:"Output directory" default:"export"`
	Format      string   `short:"f" long:"format"       description:"Output format" choice:"csv" choice:"geojson" choice:"json" choice:"all" default:"all"`
	Minify      bool     `short:"m" long:"minify"       description:"Minify GeoJSON output"`
	Strict      bool     `short:"s" long:"strict"       description:"Reject unknown zone geometry types"`
	SkipInvalid bool     `short:"k" long:"skip-invalid" description:"Skip malformed zones instead of failing the map"`
	Force       bool     `short:"F" long:"force"        description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Filter maps if limit is set
	mapsToProcess := cfg.Maps
	if len(opts.Limit) > 0 {
		mapsToProcess = make([]config.Map, 0)
		availableMaps := make(map[string]config.Map)
		for _, m := range cfg.Maps {
			availableMaps[m.ID] = m
		}

		seen := make(map[string]bool)

		for _, limitID := range opts.Limit {
			if seen[limitID] {
				continue
			}
			seen[limitID] = true

			if m, ok := availableMaps[limitID]; ok {
				mapsToProcess = append(mapsToProcess, m)
			} else {
				log.Error().
					Str("id", limitID).
					Msg("Map specified in --limit not found in configuration")
			}
		}
	}

	lmOpts := landmark.Options{
		DefaultIcon:  cfg.DefaultIcon,
		DefaultColor: cfg.DefaultColor,
		Strict:       opts.Strict,
		SkipInvalid:  opts.SkipInvalid,
	}

	log.Info().
		Int("maps_total", len(cfg.Maps)).
		Int("maps_queued", len(mapsToProcess)).
		Str("format", opts.Format).
		Msg("Starting export")

	failures := 0
	for _, world := range mapsToProcess {
		if err := exportMap(world, opts, lmOpts); err != nil {
			log.Error().Err(err).Str("map", world.ID).Msg("Failed to export map")
			failures++
		}
	}

	if failures > 0 {
		log.Fatal().Int("failed", failures).Msg("Export finished with errors")
	}
	log.Info().Msg("Export finished successfully")
}

// exportMap writes the requested output files for a single map.
func exportMap(m config.Map, opts Options, lmOpts landmark.Options) error {
	canvas, err := resolveCanvas(m)
	if err != nil {
		return err
	}

	if m.Bounds == nil {
		log.Warn().
			Str("map", m.ID).
			Msg("Map has no geographic bounds, skipping export")
		return nil
	}

	records, err := m.Zones()
	if err != nil {
		return err
	}

	destDir := filepath.Join(opts.OutDir, m.ID)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	if opts.Format == "csv" || opts.Format == "all" {
		text, err := landmark.ToCSV(records, canvas, m.Bounds, lmOpts)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(destDir, "landmarks.csv"), []byte(text), opts.Force); err != nil {
			return err
		}
	}

	if opts.Format == "json" || opts.Format == "all" {
		landmarks, err := landmark.FromZones(records, canvas, m.Bounds, lmOpts)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(landmarks, "", "  ")
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(destDir, "landmarks.json"), data, opts.Force); err != nil {
			return err
		}
	}

	if opts.Format == "geojson" || opts.Format == "all" {
		fc, err := landmark.ToGeoJSON(records, canvas, m.Bounds, lmOpts)
		if err != nil {
			return err
		}
		data, err := marshalGeoJSON(fc, opts.Minify)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(destDir, "landmarks.geojson"), data, opts.Force); err != nil {
			return err
		}
	}

	log.Info().
		Str("map", m.ID).
		Int("zones", len(records)).
		Str("dest", destDir).
		Msg("Map exported")

	return nil
}

// resolveCanvas returns the configured canvas or probes it from the image.
func resolveCanvas(m config.Map) (geo.Canvas, error) {
	if m.Canvas != nil {
		return *m.Canvas, m.Canvas.Validate()
	}
	if m.Image == "" {
		return geo.Canvas{}, geo.ErrInvalidCanvasSize
	}

	canvas, err := imagemeta.ProbeCanvas(m.Image)
	if err != nil {
		return geo.Canvas{}, err
	}

	log.Debug().
		Str("map", m.ID).
		Int("width", canvas.Width).
		Int("height", canvas.Height).
		Msg("Canvas probed from image")

	return canvas, nil
}

// marshalGeoJSON serializes a feature collection, optionally compacted.
func marshalGeoJSON(fc geo.FeatureCollection, compact bool) ([]byte, error) {
	if !compact {
		return json.MarshalIndent(fc, "", "  ")
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		return nil, err
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)

	var buf bytes.Buffer
	if err := m.Minify("application/json", &buf, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile refuses to clobber existing exports unless forced.
func writeFile(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Debug().Str("path", path).Msg("File exists, skipping")
			return nil
		}
	}
	return os.WriteFile(path, data, 0644)
}
