package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/geo"
)

// Config is read from '${ZMANIM_HOME}/config.yaml', by default
// '~/.config/zmanim/config.yaml'. Every field is optional.
type Config struct {
	Calculator            string                    `yaml:"calculator"`
	CandleLightingMinutes *int                      `yaml:"candle_lighting_minutes,omitempty"`
	Locations             map[string]LocationConfig `yaml:"locations"`
}

// LocationConfig is a named place in the config file.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Elevation float64 `yaml:"elevation"`
	TimeZone  string  `yaml:"time_zone"`
}

// ParseConfig reads and checks YAML config data.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshaling error (%s)", err.Error())
	}
	if _, err := astro.ByName(c.Calculator); err != nil {
		return Config{}, err
	}
	if c.CandleLightingMinutes != nil && *c.CandleLightingMinutes < 0 {
		return Config{}, fmt.Errorf("candle_lighting_minutes %d: %w", *c.CandleLightingMinutes, geo.ErrInvalidArgument)
	}
	for name := range c.Locations {
		if _, err := c.Location(name); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// LoadConfig reads the config file at path. A missing file is an empty
// config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("can't read config file: %w", err)
	}
	return ParseConfig(data)
}

// DefaultConfigPath honors ZMANIM_HOME.
func DefaultConfigPath() string {
	if home := os.Getenv("ZMANIM_HOME"); home != "" {
		return filepath.Join(home, "config.yaml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "zmanim", "config.yaml")
}

// Location builds the named location.
func (c Config) Location(name string) (*geo.Location, error) {
	lc, ok := c.Locations[name]
	if !ok {
		return nil, fmt.Errorf("no location %q in config (have %v): %w", name, c.locationNames(), geo.ErrInvalidArgument)
	}
	tz := geo.UTC
	if lc.TimeZone != "" {
		var err error
		if tz, err = geo.LoadZone(lc.TimeZone); err != nil {
			return nil, fmt.Errorf("location %q: %w", name, err)
		}
	}
	loc, err := geo.New(name, lc.Latitude, lc.Longitude, lc.Elevation, tz)
	if err != nil {
		return nil, fmt.Errorf("location %q: %w", name, err)
	}
	return loc, nil
}

func (c Config) locationNames() []string {
	names := make([]string, 0, len(c.Locations))
	for name := range c.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
