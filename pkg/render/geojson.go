package render

import (
	"encoding/json"
	"io"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ray1729/film-locations/pkg/locations"
)

// GeoJSON renders the selection as a FeatureCollection of points. The
// reference point carries role "reference" and, when there is a selection,
// the enclosing circle radius in metres.
type GeoJSON struct {
	grid *gridRefs
}

func NewGeoJSON() *GeoJSON {
	return &GeoJSON{grid: newGridRefs()}
}

func point(c locations.Coordinate) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lon, c.Lat})
}

func (g *GeoJSON) Render(w io.Writer, ref locations.Coordinate, entries []locations.Record) error {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(entries)+1)}
	for _, e := range entries {
		props := map[string]interface{}{
			"role":        "location",
			"title":       e.Title,
			"address":     e.Address,
			"distance_km": e.Distance,
		}
		if ng, ok := g.grid.lookup(e.Coordinate); ok {
			props["easting"] = ng.Easting
			props["northing"] = ng.Northing
		}
		fc.Features = append(fc.Features, &geojson.Feature{Geometry: point(e.Coordinate), Properties: props})
	}
	refProps := map[string]interface{}{
		"role":  "reference",
		"title": "Given spot",
	}
	if radius, ok := CircleRadius(entries); ok {
		refProps["circle_radius_m"] = radius
	}
	fc.Features = append(fc.Features, &geojson.Feature{Geometry: point(ref), Properties: refProps})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(&fc)
}
