package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Location is an address resolved to a point.
type Location struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-form address. A nil Location with a nil error
// means the address is unknown to the geocoder.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Location, error)
}

// GeocoderFunc adapts a function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, address string) (*Location, error)

func (f GeocoderFunc) Resolve(ctx context.Context, address string) (*Location, error) {
	return f(ctx, address)
}

const (
	ProviderNominatim = "nominatim"
	ProviderService   = "geocoding-api"
	ProviderGazetteer = "gazetteer"
)

var Providers = []string{ProviderNominatim, ProviderService, ProviderGazetteer}

var ErrUnknownProvider = errors.New("unknown geocoder")

const (
	defaultUserAgent = "geomap-app"
	defaultTimeout   = 10 * time.Second
)

type config struct {
	BaseUrl       string
	UserAgent     string
	Timeout       time.Duration
	GazetteerPath string
	Client        *http.Client
}

type Option func(*config)

func WithBaseUrl(u string) Option {
	return func(c *config) {
		c.BaseUrl = u
	}
}

func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.UserAgent = ua
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.Timeout = d
	}
}

func WithGazetteerPath(path string) Option {
	return func(c *config) {
		c.GazetteerPath = path
	}
}

// WithHTTPClient overrides the client used by the HTTP geocoders; the
// timeout option is ignored when it is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.Client = hc
	}
}

func newConfig(defaultUrl string, opt []Option) config {
	c := config{BaseUrl: defaultUrl, UserAgent: defaultUserAgent, Timeout: defaultTimeout}
	for _, f := range opt {
		f(&c)
	}
	if c.BaseUrl == "" {
		c.BaseUrl = defaultUrl
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// New constructs the named geocoder. The gazetteer geocoder opens an
// existing database read-only and holds its handle; callers should close
// it when done (see Close).
func New(provider string, opt ...Option) (Geocoder, error) {
	switch provider {
	case ProviderNominatim:
		return NewNominatim(opt...), nil
	case ProviderService:
		return NewService(opt...), nil
	case ProviderGazetteer:
		c := newConfig("", opt)
		if c.GazetteerPath == "" {
			return nil, fmt.Errorf("gazetteer geocoder requires a database path")
		}
		g, err := LoadGazetteer(c.GazetteerPath)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// Close releases any resources held by g.
func Close(g Geocoder) error {
	if c, ok := g.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
