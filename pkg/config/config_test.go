package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
	"github.com/ray1729/film-locations/pkg/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "film-map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, geocode.ProviderNominatim, cfg.Geocoder.Provider)
	assert.Equal(t, "geomap-app", cfg.Geocoder.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, locations.DefaultConstraints, cfg.Constraints())
	assert.Equal(t, string(locations.ModeCompat), cfg.Selection.Mode)
	assert.Equal(t, "map.html", cfg.OutputPath())
	assert.Equal(t, render.FormatHTML, cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
geocoder:
  provider: gazetteer
  gazetteer: /var/lib/film-map/places.db
  timeout: 3s
selection:
  max_count: 25
  max_distance: 250.5
  mode: nearest
output:
  format: geojson
  path: out.geojson
log:
  level: debug
  pretty: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, geocode.ProviderGazetteer, cfg.Geocoder.Provider)
	assert.Equal(t, "/var/lib/film-map/places.db", cfg.Geocoder.Gazetteer)
	assert.Equal(t, 3*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, locations.Constraints{MaxCount: 25, MaxDistance: 250.5}, cfg.Constraints())
	assert.Equal(t, "nearest", cfg.Selection.Mode)
	assert.Equal(t, render.FormatGeoJSON, cfg.Output.Format)
	assert.Equal(t, "out.geojson", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Len(t, cfg.GeocoderOptions(), 4)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "selection:\n  max_count: 25\n")
	t.Setenv("FILM_MAP_SELECTION_MAX_COUNT", "3")
	t.Setenv("FILM_MAP_OUTPUT_FORMAT", "gpx")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Selection.MaxCount)
	assert.Equal(t, render.FormatGPX, cfg.Output.Format)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"{}\n", "map.html"},
		{"output:\n  format: gpx\n", "map.gpx"},
		{"output:\n  format: geojson\n", "map.geojson"},
		{"output:\n  format: gpx\n  path: rides/track.xml\n", "rides/track.xml"},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, tt.body))
		require.NoError(t, err)
		assert.Equal(t, tt.want, cfg.OutputPath(), tt.body)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"provider", "geocoder:\n  provider: carrier-pigeon\n", geocode.ErrUnknownProvider},
		{"count", "selection:\n  max_count: 0\n", locations.ErrInvalidConstraints},
		{"distance", "selection:\n  max_distance: -1\n", locations.ErrInvalidConstraints},
		{"mode", "selection:\n  mode: sideways\n", locations.ErrInvalidMode},
		{"format", "output:\n  format: pdf\n", render.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "log:\n  level: chatty\n"))
	assert.ErrorContains(t, err, "invalid log level")
}
