package server

import (
	"sort"

	"github.com/mapzones/zonemap/internal/config"
	"github.com/mapzones/zonemap/internal/imagemeta"
	"github.com/mapzones/zonemap/internal/landmark"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config          *config.Config
	MapNameResolver map[string]string
	Opts            landmark.Options

	minifier *minify.M
}

// NewServerContext initializes the context and processes the map configuration.
// It resolves canvas dimensions, validates bounds and sets up the name resolver.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_maps_count", len(cfg.Maps)).Msg("Initializing server context")

	resolver := make(map[string]string)
	validMaps := make([]config.Map, 0, len(cfg.Maps))

	// Normalize and Sort
	for i := range cfg.Maps {
		world := &cfg.Maps[i]

		if world.Attribution == "" {
			world.Attribution = cfg.Attribution
		}

		// Resolve canvas: explicit config wins, else probe the source image.
		if world.Canvas == nil {
			if world.Image == "" {
				log.Warn().
					Str("map", world.ID).
					Msg("Skipping map: no canvas size and no image to probe")
				continue
			}

			canvas, err := imagemeta.ProbeCanvas(world.Image)
			if err != nil {
				log.Warn().
					Err(err).
					Str("map", world.ID).
					Str("image", world.Image).
					Msg("Skipping map: failed to probe canvas from image")
				continue
			}

			world.Canvas = &canvas
			log.Debug().
				Str("map", world.ID).
				Int("width", canvas.Width).
				Int("height", canvas.Height).
				Msg("Canvas probed from image")
		} else if err := world.Canvas.Validate(); err != nil {
			log.Warn().
				Err(err).
				Str("map", world.ID).
				Msg("Skipping map: invalid canvas size in config")
			continue
		}

		// Bounds are optional: a map without them is still browsable, its
		// landmark list is just empty and exports are refused.
		if world.Bounds == nil {
			world.NoBounds = true
			log.Trace().
				Str("map", world.ID).
				Msg("Map has no geographic bounds, landmarks disabled")
		} else if err := world.Bounds.Validate(); err != nil {
			log.Warn().
				Err(err).
				Str("map", world.ID).
				Msg("Ignoring invalid geographic bounds")
			world.Bounds = nil
			world.NoBounds = true
		}

		// Setup Resolver
		resolver[world.ID] = world.ID
		for _, alias := range world.Aliases {
			resolver[alias] = world.ID
		}

		log.Debug().
			Str("map", world.ID).
			Bool("bounds", !world.NoBounds).
			Msg("Map validated and added to context")

		validMaps = append(validMaps, *world)
	}

	cfg.Maps = validMaps

	sort.Slice(cfg.Maps, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Maps[i].Index != nil {
			idxI = *cfg.Maps[i].Index
		}
		if cfg.Maps[j].Index != nil {
			idxJ = *cfg.Maps[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Maps[i].Name < cfg.Maps[j].Name
	})

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)

	log.Info().
		Int("valid_maps_count", len(cfg.Maps)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:          cfg,
		MapNameResolver: resolver,
		Opts: landmark.Options{
			DefaultIcon:  cfg.DefaultIcon,
			DefaultColor: cfg.DefaultColor,
		},
		minifier: m,
	}
}

// mapByID returns the validated map for a resolved id.
func (s *ServerContext) mapByID(id string) *config.Map {
	for i := range s.Config.Maps {
		if s.Config.Maps[i].ID == id {
			return &s.Config.Maps[i]
		}
	}
	return nil
}
