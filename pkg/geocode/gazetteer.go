package geocode

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Gazetteer resolves addresses from a local SQLite table of known places.
// Lookups match the whole query, ignoring ASCII case.
type Gazetteer struct {
	db *sql.DB
}

// OpenGazetteer opens the gazetteer at path for loading, creating the
// database and its schema if needed.
func OpenGazetteer(path string) (*Gazetteer, error) {
	g, err := open(path, path)
	if err != nil {
		return nil, err
	}
	if err := g.migrate(); err != nil {
		g.db.Close()
		return nil, fmt.Errorf("error migrating gazetteer %s: %w", path, err)
	}
	return g, nil
}

// LoadGazetteer opens an existing gazetteer at path for lookups only. A
// missing file or one without a places table is an error.
func LoadGazetteer(path string) (*Gazetteer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error opening gazetteer %s: %w", path, err)
	}
	g, err := open(path, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if _, err := g.db.Exec(`SELECT 1 FROM places LIMIT 1`); err != nil {
		g.Close()
		return nil, fmt.Errorf("error reading gazetteer %s: %w", path, err)
	}
	return g, nil
}

func open(path, dsn string) (*Gazetteer, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening gazetteer %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging gazetteer %s: %w", path, err)
	}
	return &Gazetteer{db: db}, nil
}

func (g *Gazetteer) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS places (
			query TEXT PRIMARY KEY COLLATE NOCASE,
			address TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		);
	`
	_, err := g.db.Exec(schema)
	return err
}

func (g *Gazetteer) Close() error {
	return g.db.Close()
}

func (g *Gazetteer) Resolve(ctx context.Context, address string) (*Location, error) {
	var loc Location
	err := g.db.QueryRowContext(ctx,
		`SELECT address, latitude, longitude FROM places WHERE query = ?`, address,
	).Scan(&loc.Address, &loc.Latitude, &loc.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up %q: %w", address, err)
	}
	return &loc, nil
}

// Add stores or replaces the place answering query.
func (g *Gazetteer) Add(ctx context.Context, query string, loc Location) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO places (query, address, latitude, longitude) VALUES (?, ?, ?, ?)`,
		query, loc.Address, loc.Latitude, loc.Longitude,
	)
	if err != nil {
		return fmt.Errorf("error adding %q: %w", query, err)
	}
	return nil
}

// Batch is the add function handed to an Update callback.
type Batch func(query string, loc Location) error

// Update runs fn inside a single transaction, storing or replacing every
// place it adds, and returns the number of places added. Nothing is kept
// if fn returns an error.
func (g *Gazetteer) Update(ctx context.Context, fn func(add Batch) error) (int, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting import: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO places (query, address, latitude, longitude) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing import: %w", err)
	}
	defer stmt.Close()

	n := 0
	add := func(query string, loc Location) error {
		if _, err := stmt.ExecContext(ctx, query, loc.Address, loc.Latitude, loc.Longitude); err != nil {
			return fmt.Errorf("error importing %q: %w", query, err)
		}
		n++
		return nil
	}
	if err := fn(add); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing import: %w", err)
	}
	log.Debug().Int("places", n).Msg("Imported gazetteer")
	return n, nil
}

// Import loads tab-separated QUERY, ADDRESS, LATITUDE, LONGITUDE rows in a
// single transaction and returns the number of places stored.
func (g *Gazetteer) Import(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 4
	cr.LazyQuotes = true
	cr.Comment = '#'

	return g.Update(ctx, func(add Batch) error {
		for {
			xs, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error reading gazetteer rows: %w", err)
			}
			lat, err := strconv.ParseFloat(xs[2], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude for %q: %w", xs[0], err)
			}
			lon, err := strconv.ParseFloat(xs[3], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude for %q: %w", xs[0], err)
			}
			if err := add(xs[0], Location{Address: xs[1], Latitude: lat, Longitude: lon}); err != nil {
				return err
			}
		}
	})
}

// Count returns the number of places in the gazetteer.
func (g *Gazetteer) Count(ctx context.Context) (int, error) {
	var n int
	if err := g.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting places: %w", err)
	}
	return n, nil
}
