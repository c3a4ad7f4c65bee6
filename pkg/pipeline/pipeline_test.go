package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// places resolves a handful of Ontario towns; anything else is unknown.
var places = map[string]geocode.Location{
	"Toronto":     {Address: "Toronto, Ontario, Canada", Latitude: 43.6532, Longitude: -79.3832},
	"Hamilton":    {Address: "Hamilton, Ontario, Canada", Latitude: 43.2557, Longitude: -79.8711},
	"Guelph":      {Address: "Guelph, Ontario, Canada", Latitude: 43.5448, Longitude: -80.2482},
	"Ottawa":      {Address: "Ottawa, Ontario, Canada", Latitude: 45.4215, Longitude: -75.6972},
	"Vancouver":   {Address: "Vancouver, British Columbia, Canada", Latitude: 49.2827, Longitude: -123.1207},
	"Los Angeles": {Address: "Los Angeles, California, USA", Latitude: 34.0522, Longitude: -118.2437},
}

var fakeGeocoder = geocode.GeocoderFunc(func(ctx context.Context, address string) (*geocode.Location, error) {
	loc, ok := places[address]
	if !ok {
		return nil, nil
	}
	return &loc, nil
})

var waterloo = locations.Coordinate{Lat: 43.422037, Lon: -80.525161}

const corpus = "Suits (2016) {Pilot}\t\tToronto\t(Bay Street)\n" +
	"Suits (2016) {Pilot}\t\tToronto\t(Bay Street)\n" +
	"Pixels (2016)\t\tHamilton\t\n" +
	"The Handmaid's Tale (2016)\t\tGuelph\t\n" +
	"Deadpool (2016)\t\tVancouver\t\n" +
	"La La Land (2016)\t\tLos Angeles\t\n" +
	"Parliament (2015)\t\tOttawa\t\n" +
	"Nowhere (2016)\t\tAtlantis\t\n" +
	"Broken Row (2016)\tToronto\n"

func titles(records []locations.Record) []string {
	var xs []string
	for _, r := range records {
		xs = append(xs, r.Title)
	}
	return xs
}

func TestRun_Compat(t *testing.T) {
	q := Query{Year: 2016, Reference: waterloo, Constraints: locations.DefaultConstraints}
	got, err := Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	// Farthest first; Los Angeles and Vancouver are beyond 1000 km but the
	// first record is always kept and the walk stops at the second.
	assert.Equal(t, []string{"La La Land (2016)"}, titles(got))
}

func TestRun_CompatWithinBound(t *testing.T) {
	q := Query{Year: 2016, Reference: waterloo, Constraints: locations.Constraints{MaxCount: 10, MaxDistance: 5000}}
	got, err := Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"La La Land (2016)",
		"Deadpool (2016)",
		"Suits (2016)",
		"Pixels (2016)",
		"The Handmaid's Tale (2016)",
	}, titles(got))
}

func TestRun_Nearest(t *testing.T) {
	q := Query{
		Year:        2016,
		Reference:   waterloo,
		Constraints: locations.Constraints{MaxCount: 2, MaxDistance: 1000},
		Mode:        locations.ModeNearest,
	}
	got, err := Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Handmaid's Tale (2016)", "Pixels (2016)"}, titles(got))
}

func TestRun_Deterministic(t *testing.T) {
	q := Query{Year: 2016, Reference: waterloo, Constraints: locations.Constraints{MaxCount: 10, MaxDistance: 5000}}
	first, err := Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	second, err := Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_EmptyPropagates(t *testing.T) {
	q := Query{Year: 2016, Reference: waterloo, Constraints: locations.DefaultConstraints}
	got, err := Run(context.Background(), strings.NewReader(""), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Empty(t, got)

	q.Year = 1950
	got, err = Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Empty(t, got)

	q.Mode = locations.ModeNearest
	got, err = Run(context.Background(), strings.NewReader(corpus), fakeGeocoder, q)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_InvalidConstraintsSkipGeocoding(t *testing.T) {
	calls := 0
	g := geocode.GeocoderFunc(func(ctx context.Context, address string) (*geocode.Location, error) {
		calls++
		return nil, nil
	})
	q := Query{Year: 2016, Reference: waterloo, Constraints: locations.Constraints{MaxCount: 0}}
	_, err := Run(context.Background(), strings.NewReader(corpus), g, q)
	assert.ErrorIs(t, err, locations.ErrInvalidConstraints)
	assert.Zero(t, calls)
}

func TestSelect_InvalidMode(t *testing.T) {
	_, err := Select(nil, Query{Constraints: locations.DefaultConstraints, Mode: "sideways"})
	assert.ErrorIs(t, err, locations.ErrInvalidMode)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.list")
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0644))

	records, err := LoadFile(context.Background(), path, fakeGeocoder)
	require.NoError(t, err)
	assert.Len(t, records, 6)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.list"), fakeGeocoder)
	assert.Error(t, err)
}
