package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/twpayne/go-gpx"

	"github.com/ray1729/film-locations/pkg/locations"
)

// GPX renders the selection as waypoints, followed by one for the
// reference point.
type GPX struct {
	grid *gridRefs
}

func NewGPX() *GPX {
	return &GPX{grid: newGridRefs()}
}

func (g *GPX) Render(w io.Writer, ref locations.Coordinate, entries []locations.Record) error {
	doc := &gpx.GPX{
		Version: "1.1",
		Creator: "film-map",
		Wpt:     make([]*gpx.WptType, 0, len(entries)+1),
	}
	for _, e := range entries {
		desc := fmt.Sprintf("%s (%.1f km)", e.Address, e.Distance)
		if label := g.grid.label(e.Coordinate); label != "" {
			desc += "; " + label
		}
		doc.Wpt = append(doc.Wpt, &gpx.WptType{
			Lat:  e.Coordinate.Lat,
			Lon:  e.Coordinate.Lon,
			Name: e.Title,
			Desc: desc,
		})
	}
	doc.Wpt = append(doc.Wpt, &gpx.WptType{
		Lat:  ref.Lat,
		Lon:  ref.Lon,
		Name: "Given spot",
	})
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return doc.WriteIndent(w, "", "  ")
}
