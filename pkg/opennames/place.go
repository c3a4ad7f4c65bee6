package opennames

import (
	"fmt"
	"strings"

	"github.com/fofanov/go-osgb"

	"github.com/ray1729/film-locations/pkg/geocode"
)

// Places converts Open Names records to gazetteer entries, projecting
// National Grid positions back to WGS-84 latitude and longitude.
type Places struct {
	trans osgb.CoordinateTransformer
}

func NewPlaces() (*Places, error) {
	trans, err := osgb.NewOSTN15Transformer()
	if err != nil {
		return nil, fmt.Errorf("error creating OSTN15 transformer: %w", err)
	}
	return &Places{trans: trans}, nil
}

// Location returns the gazetteer entry for r, keyed by its name.
func (p *Places) Location(r *Record) (geocode.Location, error) {
	c, err := p.trans.FromNationalGrid(&osgb.OSGB36Coordinate{Easting: r.GeomX, Northing: r.GeomY})
	if err != nil {
		return geocode.Location{}, fmt.Errorf("error projecting %s (%s): %w", r.Name, r.ID, err)
	}
	return geocode.Location{
		Address:   Address(r),
		Latitude:  c.Lat,
		Longitude: c.Lon,
	}, nil
}

// Address joins the record's name with its enclosing areas, most specific
// first, dropping blanks and repeats.
func Address(r *Record) string {
	var parts []string
	for _, s := range []string{r.Name, r.PopulatedPlace, r.DistrictBorough, r.CountyUnitary, r.Region, r.Country} {
		if s == "" || (len(parts) > 0 && parts[len(parts)-1] == s) {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// PopulatedPlaces keeps the settlements that film locations are usually
// listed against.
var PopulatedPlaces = FilterType("populatedPlace")

// PlaceFilters selects populated places, narrowed to the include local
// types when any are given and without the exclude ones.
func PlaceFilters(include, exclude []string) []Filter {
	filters := []Filter{PopulatedPlaces}
	if len(include) > 0 {
		filters = append(filters, FilterLocalType(include...))
	}
	if len(exclude) > 0 {
		filters = append(filters, FilterLocalType(exclude...).Complement())
	}
	return filters
}
