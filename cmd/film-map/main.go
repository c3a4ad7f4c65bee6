package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ray1729/film-locations/pkg/config"
	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
	"github.com/ray1729/film-locations/pkg/logging"
	"github.com/ray1729/film-locations/pkg/pipeline"
	"github.com/ray1729/film-locations/pkg/render"
)

func main() {
	app := &cli.App{
		Name:      "film-map",
		Usage:     "Build a map of where films from a given year were shot near a point",
		ArgsUsage: "YEAR LATITUDE LONGITUDE FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Read configuration from `FILE`",
			},
			&cli.IntFlag{
				Name:    "max-count",
				Aliases: []string{"n"},
				Usage:   "Show at most `N` locations",
				Value:   locations.DefaultConstraints.MaxCount,
			},
			&cli.Float64Flag{
				Name:    "max-distance",
				Aliases: []string{"d"},
				Usage:   "Only extend the selection with locations within `KM` kilometres",
				Value:   locations.DefaultConstraints.MaxDistance,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Selection mode: compat or nearest",
				Value: string(locations.ModeCompat),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the map to `PATH` (default map.html, map.geojson or map.gpx by format)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: html, geojson or gpx",
				Value:   render.FormatHTML,
			},
			&cli.StringFlag{
				Name:  "geocoder",
				Usage: "Geocoder: nominatim, geocoding-api or gazetteer",
				Value: geocode.ProviderNominatim,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
				Value: "info",
			},
		},
		Action: buildMap,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("film-map failed")
	}
}

type args struct {
	year     int
	ref      locations.Coordinate
	fileName string
}

func parseArgs(c *cli.Context) (*args, error) {
	if c.NArg() != 4 {
		return nil, fmt.Errorf("expected 4 arguments, got %d", c.NArg())
	}
	year, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", c.Args().Get(0))
	}
	lat, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", c.Args().Get(1))
	}
	lon, err := strconv.ParseFloat(c.Args().Get(2), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", c.Args().Get(2))
	}
	return &args{year: year, ref: locations.Coordinate{Lat: lat, Lon: lon}, fileName: c.Args().Get(3)}, nil
}

// applyFlags overrides configuration with flags given on the command line.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("max-count") {
		cfg.Selection.MaxCount = c.Int("max-count")
	}
	if c.IsSet("max-distance") {
		cfg.Selection.MaxDistance = c.Float64("max-distance")
	}
	if c.IsSet("mode") {
		cfg.Selection.Mode = c.String("mode")
	}
	if c.IsSet("output") {
		cfg.Output.Path = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("geocoder") {
		cfg.Geocoder.Provider = c.String("geocoder")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	return cfg.Validate()
}

func buildMap(c *cli.Context) error {
	a, err := parseArgs(c)
	if err != nil {
		cli.ShowAppHelp(c)
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, os.Stderr, cfg.Log.Pretty); err != nil {
		return err
	}
	mode, err := locations.ParseMode(cfg.Selection.Mode)
	if err != nil {
		return err
	}
	renderer, err := render.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	g, err := geocode.New(cfg.Geocoder.Provider, cfg.GeocoderOptions()...)
	if err != nil {
		return err
	}
	defer geocode.Close(g)

	start := time.Now()
	records, err := pipeline.LoadFile(c.Context, a.fileName, g)
	if err != nil {
		return err
	}
	selected, err := pipeline.Select(records, pipeline.Query{
		Year:        a.year,
		Reference:   a.ref,
		Constraints: cfg.Constraints(),
		Mode:        mode,
	})
	if err != nil {
		return err
	}
	log.Info().Int("selected", len(selected)).Str("mode", string(mode)).Msg("Selected locations")
	if err := render.Save(cfg.OutputPath(), renderer, a.ref, selected); err != nil {
		return err
	}
	fmt.Printf("A map was built successfully!\nTaken time: %.2fs.\n", time.Since(start).Seconds())
	return nil
}
