package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ray1729/film-locations/pkg/config"
	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
	"github.com/ray1729/film-locations/pkg/logging"
	"github.com/ray1729/film-locations/pkg/pipeline"
	"github.com/ray1729/film-locations/pkg/render"
	"github.com/ray1729/film-locations/pkg/web"
)

func main() {
	app := &cli.App{
		Name:  "serve-film-map",
		Usage: "Serve filming location maps over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "corpus",
				Aliases:  []string{"c"},
				Usage:    "Locations `FILE` to parse at start-up",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Read configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen on `ADDR` (overrides server.address)",
			},
		},
		Action: serve,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("serve-film-map failed")
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("listen") {
		cfg.Server.Address = c.String("listen")
	}
	if err := logging.Setup(cfg.Log.Level, os.Stderr, cfg.Log.Pretty); err != nil {
		return err
	}
	mode, err := locations.ParseMode(cfg.Selection.Mode)
	if err != nil {
		return err
	}

	g, err := geocode.New(cfg.Geocoder.Provider, cfg.GeocoderOptions()...)
	if err != nil {
		return err
	}
	records, err := pipeline.LoadFile(c.Context, c.String("corpus"), g)
	geocode.Close(g)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	h := web.NewHandler(records, cfg.Constraints(), mode, render.NewHTML(), render.NewGeoJSON())
	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Int("records", len(records)).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-c.Context.Done():
	}
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
