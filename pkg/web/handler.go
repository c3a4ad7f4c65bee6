package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ray1729/film-locations/pkg/locations"
	"github.com/ray1729/film-locations/pkg/pipeline"
	"github.com/ray1729/film-locations/pkg/render"
)

// Handler answers map queries against a corpus that was parsed and
// geocoded once at start-up.
type Handler struct {
	records  []locations.Record
	defaults locations.Constraints
	mode     locations.Mode
	html     render.Renderer
	geojson  render.Renderer
}

func NewHandler(records []locations.Record, defaults locations.Constraints, mode locations.Mode, html, geojson render.Renderer) *Handler {
	return &Handler{
		records:  records,
		defaults: defaults,
		mode:     mode,
		html:     html,
		geojson:  geojson,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/locations", h.Locations)
	r.GET("/map", h.Map)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(h.records)})
}

// Locations handles GET /locations, returning the selection as GeoJSON.
func (h *Handler) Locations(c *gin.Context) {
	h.render(c, h.geojson, "application/geo+json")
}

// Map handles GET /map, returning the selection as an HTML map.
func (h *Handler) Map(c *gin.Context) {
	h.render(c, h.html, "text/html; charset=utf-8")
}

func (h *Handler) render(c *gin.Context, r render.Renderer, contentType string) {
	q, err := h.query(c)
	if err != nil {
		log.Debug().Err(err).Str("query", c.Request.URL.RawQuery).Msg("Bad request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	selected, err := pipeline.Select(h.records, q)
	if err != nil {
		if errors.Is(err, locations.ErrInvalidConstraints) || errors.Is(err, locations.ErrInvalidMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("Selection failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, q.Reference, selected); err != nil {
		log.Error().Err(err).Msg("Rendering failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) query(c *gin.Context) (pipeline.Query, error) {
	q := pipeline.Query{Constraints: h.defaults, Mode: h.mode}
	var err error
	if q.Year, err = requiredInt(c, "year"); err != nil {
		return q, err
	}
	if q.Reference.Lat, err = requiredFloat(c, "lat"); err != nil {
		return q, err
	}
	if q.Reference.Lon, err = requiredFloat(c, "lon"); err != nil {
		return q, err
	}
	if q.Reference.Lat < -90 || q.Reference.Lat > 90 {
		return q, fmt.Errorf("invalid latitude: %g", q.Reference.Lat)
	}
	if q.Reference.Lon < -180 || q.Reference.Lon > 180 {
		return q, fmt.Errorf("invalid longitude: %g", q.Reference.Lon)
	}
	if s := c.Query("max_count"); s != "" {
		if q.Constraints.MaxCount, err = strconv.Atoi(s); err != nil {
			return q, fmt.Errorf("invalid max_count: %q", s)
		}
	}
	if s := c.Query("max_distance"); s != "" {
		if q.Constraints.MaxDistance, err = strconv.ParseFloat(s, 64); err != nil {
			return q, fmt.Errorf("invalid max_distance: %q", s)
		}
	}
	if s := c.Query("mode"); s != "" {
		if q.Mode, err = locations.ParseMode(s); err != nil {
			return q, err
		}
	}
	return q, nil
}

func requiredInt(c *gin.Context, name string) (int, error) {
	s := c.Query(name)
	if s == "" {
		return 0, fmt.Errorf("missing required query parameter '%s'", name)
	}
	x, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return x, nil
}

func requiredFloat(c *gin.Context, name string) (float64, error) {
	s := c.Query(name)
	if s == "" {
		return 0, fmt.Errorf("missing required query parameter '%s'", name)
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return x, nil
}
