package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/logging"
	"github.com/ray1729/film-locations/pkg/opennames"
)

func main() {
	app := &cli.App{
		Name:      "import-gazetteer",
		Usage:     "Load places into an offline gazetteer",
		ArgsUsage: "TSV_FILE | OPNAME_CSV_ZIP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite gazetteer `PATH`",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "open-names",
				Usage: "Read an OS Open Names CSV zip instead of QUERY ADDRESS LATITUDE LONGITUDE rows",
			},
			&cli.StringSliceFlag{
				Name:  "local-type",
				Usage: "With --open-names, only import populated places of this local `TYPE` (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-local-type",
				Usage: "With --open-names, skip populated places of this local `TYPE` (repeatable)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
				Value: "info",
			},
		},
		Action: importGazetteer,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("import-gazetteer failed")
	}
}

func importGazetteer(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("expected 1 argument, got %d", c.NArg())
	}
	if err := logging.Setup(c.String("log-level"), os.Stderr, true); err != nil {
		return err
	}
	filename := c.Args().First()

	g, err := geocode.OpenGazetteer(c.String("db"))
	if err != nil {
		return err
	}
	defer g.Close()

	var n int
	if c.Bool("open-names") {
		filters := opennames.PlaceFilters(c.StringSlice("local-type"), c.StringSlice("exclude-local-type"))
		n, err = importOpenNames(c.Context, g, filename, filters)
	} else {
		n, err = importTSV(c.Context, g, filename)
	}
	if err != nil {
		return fmt.Errorf("error importing %s: %w", filename, err)
	}
	total, err := g.Count(c.Context)
	if err != nil {
		return err
	}
	log.Info().Int("imported", n).Int("total", total).Str("db", c.String("db")).Msg("Gazetteer updated")
	return nil
}

func importTSV(ctx context.Context, g *geocode.Gazetteer, filename string) (int, error) {
	r, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("error opening %s for reading: %w", filename, err)
	}
	defer r.Close()
	return g.Import(ctx, r)
}

func importOpenNames(ctx context.Context, g *geocode.Gazetteer, filename string, filters []opennames.Filter) (int, error) {
	places, err := opennames.NewPlaces()
	if err != nil {
		return 0, err
	}
	return g.Update(ctx, func(add geocode.Batch) error {
		return opennames.ProcessFile(filename, func(r *opennames.Record) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			loc, err := places.Location(r)
			if err != nil {
				log.Warn().Err(err).Msg("Skipping place")
				return nil
			}
			return add(r.Name, loc)
		}, filters...)
	})
}
