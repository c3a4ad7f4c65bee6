package locations

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ray1729/film-locations/pkg/geocode"
)

type parser struct {
	geocoder geocode.Geocoder
	records  []Record
}

// Parse reads every row from s, geocodes its address and returns the
// distinct records in input order. Rows that are malformed or whose
// address cannot be resolved are skipped; only read errors and context
// cancellation are returned.
func Parse(ctx context.Context, s *Scanner, g geocode.Geocoder) ([]Record, error) {
	log.Info().Msg("Started the parsing of locations file")
	p := parser{geocoder: g}
	for s.Scan() {
		if err := p.add(ctx, s.Row()); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("error reading locations: %w", err)
	}
	log.Info().Int("records", len(p.records)).Msg("Finished the parsing of locations file")
	return p.records, nil
}

// ParseRows is Parse for rows that are already split into fields.
func ParseRows(ctx context.Context, rows [][]string, g geocode.Geocoder) ([]Record, error) {
	p := parser{geocoder: g}
	for _, row := range rows {
		if err := p.add(ctx, row); err != nil {
			return nil, err
		}
	}
	return p.records, nil
}

func (p *parser) add(ctx context.Context, fields []string) error {
	if len(fields) <= 2 {
		return nil
	}
	address := fields[len(fields)-2]
	if address == "" {
		return nil
	}
	title := TitleOf(fields[0])
	loc, err := p.geocoder.Resolve(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Str("address", address).Msg("Geocoding failed, skipping row")
		return nil
	}
	if loc == nil {
		log.Debug().Str("address", address).Msg("Address not found")
		return nil
	}
	r := Record{
		Title:      title,
		Address:    loc.Address,
		Coordinate: Coordinate{Lat: loc.Latitude, Lon: loc.Longitude},
	}
	for _, x := range p.records {
		if x.Same(r) {
			return nil
		}
	}
	p.records = append(p.records, r)
	return nil
}

// TitleOf cuts the first field of a row just after its first closing
// parenthesis. A field without one is returned unchanged.
func TitleOf(field string) string {
	i := strings.IndexByte(field, ')')
	if i < 0 {
		return field
	}
	return field[:i+1]
}
