package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
)

// Query describes one "where were films from Year shot near Reference"
// request.
type Query struct {
	Year        int
	Reference   locations.Coordinate
	Constraints locations.Constraints
	Mode        locations.Mode
}

// Select filters parsed records to the query year and picks the closest
// subset according to the query mode.
func Select(records []locations.Record, q Query) ([]locations.Record, error) {
	if err := q.Constraints.Validate(); err != nil {
		return nil, err
	}
	selected := locations.FilterYear(records, q.Year)
	log.Debug().Int("year", q.Year).Int("records", len(selected)).Msg("Filtered by year")
	switch q.Mode {
	case "", locations.ModeCompat:
		ranked := locations.RankByDistance(selected, q.Reference)
		return locations.SelectClosest(ranked, q.Constraints), nil
	case locations.ModeNearest:
		ix := locations.NewIndex(selected)
		log.Debug().Int("indexed", ix.Size()).Msg("Built location index")
		return ix.SelectNearest(q.Reference, q.Constraints), nil
	default:
		return nil, fmt.Errorf("%w: %s", locations.ErrInvalidMode, q.Mode)
	}
}

// Load parses and geocodes a whole locations corpus.
func Load(ctx context.Context, r io.Reader, g geocode.Geocoder) ([]locations.Record, error) {
	s, err := locations.NewScanner(r)
	if err != nil {
		return nil, fmt.Errorf("error reading locations: %w", err)
	}
	return locations.Parse(ctx, s, g)
}

// LoadFile is Load for a corpus on disk.
func LoadFile(ctx context.Context, filename string, g geocode.Geocoder) ([]locations.Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening %s for reading: %w", filename, err)
	}
	defer f.Close()
	records, err := Load(ctx, f, g)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return records, nil
}

// Run loads the corpus in r and answers q.
func Run(ctx context.Context, r io.Reader, g geocode.Geocoder, q Query) ([]locations.Record, error) {
	if err := q.Constraints.Validate(); err != nil {
		return nil, err
	}
	records, err := Load(ctx, r, g)
	if err != nil {
		return nil, err
	}
	return Select(records, q)
}
