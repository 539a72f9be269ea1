package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/zmandash/pkg/geo"
)

const testConfig = `
calculator: naval
candle_lighting_minutes: 40
locations:
  lakewood:
    latitude: 40.09596
    longitude: -74.22213
    time_zone: America/New_York
  longyearbyen:
    latitude: 78.2232
    longitude: 15.6267
    time_zone: Arctic/Longyearbyen
  sea:
    latitude: 0
    longitude: 0
  jerusalem:
    latitude: 31.778
    longitude: 35.2354
    elevation: 800
    time_zone: Asia/Jerusalem
`

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(testConfig))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if c.Calculator != "naval" {
		t.Errorf("calculator %q", c.Calculator)
	}
	if c.CandleLightingMinutes == nil || *c.CandleLightingMinutes != 40 {
		t.Errorf("candle lighting %v", c.CandleLightingMinutes)
	}
	if diff := cmp.Diff([]string{"jerusalem", "lakewood", "longyearbyen", "sea"}, c.locationNames()); diff != "" {
		t.Errorf("location names (-want,+got): %s", diff)
	}

	loc, err := c.Location("lakewood")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if loc.Name() != "lakewood" || loc.Latitude() != 40.09596 || loc.TimeZone().ID() != "America/New_York" {
		t.Errorf("lakewood is %v", loc)
	}
	sea, err := c.Location("sea")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if sea.TimeZone().ID() != "UTC" {
		t.Errorf("a location without a zone is in %s, want UTC", sea.TimeZone().ID())
	}
	if _, err := c.Location("atlantis"); !errors.Is(err, geo.ErrInvalidArgument) {
		t.Errorf("unknown location gave %v", err)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	table := []struct {
		name string
		data string
	}{
		{"not yaml", "locations: [1, 2"},
		{"calculator", "calculator: sundial"},
		{"negative candles", "candle_lighting_minutes: -5"},
		{"latitude", "locations:\n  x:\n    latitude: 91\n    longitude: 0"},
		{"longitude", "locations:\n  x:\n    latitude: 0\n    longitude: -181"},
		{"zone", "locations:\n  x:\n    latitude: 0\n    longitude: 0\n    time_zone: Mars/Olympus_Mons"},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tc.data)); err == nil {
				t.Errorf("parsed %q without error", tc.data)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	c, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("a missing file gave %v", err)
	}
	if len(c.Locations) != 0 {
		t.Errorf("a missing file has locations %v", c.Locations)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if len(c.Locations) != 4 {
		t.Errorf("got %d locations, want 4", len(c.Locations))
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("ZMANIM_HOME", "/etc/zmanim")
	if got := DefaultConfigPath(); got != "/etc/zmanim/config.yaml" {
		t.Errorf("got %q", got)
	}
	t.Setenv("ZMANIM_HOME", "")
	t.Setenv("HOME", "/home/test")
	if got := DefaultConfigPath(); got != "/home/test/.config/zmanim/config.yaml" {
		t.Errorf("got %q", got)
	}
}
