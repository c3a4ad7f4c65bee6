package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ray1729/film-locations/pkg/locations"
)

// Renderer writes a visual artifact for the selected entries around the
// reference point.
type Renderer interface {
	Render(w io.Writer, ref locations.Coordinate, entries []locations.Record) error
}

const (
	FormatHTML    = "html"
	FormatGeoJSON = "geojson"
	FormatGPX     = "gpx"
)

var Formats = []string{FormatHTML, FormatGeoJSON, FormatGPX}

var ErrUnknownFormat = errors.New("unknown output format")

func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatHTML:
		return NewHTML(), nil
	case FormatGeoJSON:
		return NewGeoJSON(), nil
	case FormatGPX:
		return NewGPX(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// DefaultPath is the output file used when none is configured: "map"
// with the extension of the format.
func DefaultPath(format string) string {
	switch format {
	case FormatGeoJSON:
		return "map.geojson"
	case FormatGPX:
		return "map.gpx"
	default:
		return "map.html"
	}
}

// CircleRadius returns the radius in metres of the circle enclosing the
// entries: one kilometre beyond the farthest of them. There is no circle
// for an empty selection. This is not sized from the last entry: in
// compat order that is the nearest one, and a circle drawn around it
// leaves the farther selected markers outside, so maps differ from ones
// sized that way.
func CircleRadius(entries []locations.Record) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	farthest := entries[0].Distance
	for _, e := range entries[1:] {
		if e.Distance > farthest {
			farthest = e.Distance
		}
	}
	return (farthest + 1) * 1000, true
}

// Save renders to a temporary file next to path and renames it into place,
// so a failed render never leaves a partial artifact behind.
func Save(path string, r Renderer, ref locations.Coordinate, entries []locations.Record) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating output file for %s: %w", path, err)
	}
	tmp := f.Name()
	if err := r.Render(f, ref, entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("error rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error closing file %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("error moving output into %s: %w", path, err)
	}
	return nil
}
