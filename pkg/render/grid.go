package render

import (
	"fmt"

	"github.com/fofanov/go-osgb"
	"github.com/rs/zerolog/log"

	"github.com/ray1729/film-locations/pkg/locations"
)

// Extent of the OSTN15 transformation grid, in metres, and a geographic
// box around it. Points outside the box are not projected at all.
const (
	maxEasting  = 700000
	maxNorthing = 1250000
	minLat      = 49.0
	maxLat      = 62.0
	minLon      = -10.0
	maxLon      = 3.0
)

// gridRefs converts coordinates to British National Grid references for
// popups. Coordinates outside Great Britain have no reference.
type gridRefs struct {
	trans osgb.CoordinateTransformer
}

func newGridRefs() *gridRefs {
	trans, err := osgb.NewOSTN15Transformer()
	if err != nil {
		log.Warn().Err(err).Msg("National Grid references disabled")
		return &gridRefs{}
	}
	return &gridRefs{trans: trans}
}

func (g *gridRefs) lookup(c locations.Coordinate) (*osgb.OSGB36Coordinate, bool) {
	if g == nil || g.trans == nil {
		return nil, false
	}
	if c.Lat < minLat || c.Lat > maxLat || c.Lon < minLon || c.Lon > maxLon {
		return nil, false
	}
	ng, err := g.trans.ToNationalGrid(osgb.NewETRS89Coord(c.Lon, c.Lat, 0))
	if err != nil {
		return nil, false
	}
	if ng.Easting < 0 || ng.Easting > maxEasting || ng.Northing < 0 || ng.Northing > maxNorthing {
		return nil, false
	}
	return ng, true
}

// label formats the grid reference of c, or "" outside Great Britain.
func (g *gridRefs) label(c locations.Coordinate) string {
	ng, ok := g.lookup(c)
	if !ok {
		return ""
	}
	return fmt.Sprintf("OS grid E %.0f N %.0f", ng.Easting, ng.Northing)
}
