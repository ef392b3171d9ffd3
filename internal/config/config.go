// Package config handles configuration loading and shared data structures.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mapzones/zonemap/internal/geo"
	"github.com/mapzones/zonemap/internal/zone"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution  string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	DefaultIcon  string `yaml:"default_icon,omitempty" json:"default_icon,omitempty"`
	DefaultColor string `yaml:"default_color,omitempty" json:"default_color,omitempty"`
	Maps         []Map  `yaml:"maps" json:"maps"`
}

// Map represents a single annotated map configuration.
type Map struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	// defining zones directly in config.yaml
	ZonesInline []zone.Record `yaml:"zones,omitempty" json:"-"`

	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Aliases     []string    `yaml:"aliases,omitempty" json:"-"`
	Image       string      `yaml:"image,omitempty" json:"-"`
	ZonesFile   string      `yaml:"zones_file,omitempty" json:"-"`
	Attribution string      `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Canvas      *geo.Canvas `yaml:"canvas,omitempty" json:"canvas,omitempty"`
	Bounds      *geo.Bounds `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	NoBounds    bool        `yaml:"-" json:"no_bounds,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Zones returns the map's zone records, preferring inline config data over
// the zones file. A map with neither returns an empty list. Records that
// arrive without an id are assigned one, so payload errors can always name
// the offending zone; inline records keep their minted id for the process
// lifetime.
func (m *Map) Zones() ([]zone.Record, error) {
	records := m.ZonesInline

	if records == nil {
		if m.ZonesFile == "" {
			return []zone.Record{}, nil
		}

		data, err := os.ReadFile(m.ZonesFile)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse zones file %s: %w", m.ZonesFile, err)
		}
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = zone.NewID()
		}
	}

	return records, nil
}
