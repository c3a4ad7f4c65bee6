package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ray1729/film-locations/pkg/geocode"
	"github.com/ray1729/film-locations/pkg/locations"
	"github.com/ray1729/film-locations/pkg/logging"
	"github.com/ray1729/film-locations/pkg/render"
)

const envPrefix = "FILM_MAP"

type Config struct {
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Selection SelectionConfig `mapstructure:"selection"`
	Output    OutputConfig    `mapstructure:"output"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

type GeocoderConfig struct {
	Provider  string        `mapstructure:"provider"`
	URL       string        `mapstructure:"url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Gazetteer string        `mapstructure:"gazetteer"`
}

type SelectionConfig struct {
	MaxCount    int     `mapstructure:"max_count"`
	MaxDistance float64 `mapstructure:"max_distance"`
	Mode        string  `mapstructure:"mode"`
}

type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("geocoder.provider", geocode.ProviderNominatim)
	v.SetDefault("geocoder.url", "")
	v.SetDefault("geocoder.user_agent", "geomap-app")
	v.SetDefault("geocoder.timeout", 10*time.Second)
	v.SetDefault("geocoder.gazetteer", "gazetteer.db")
	v.SetDefault("selection.max_count", locations.DefaultConstraints.MaxCount)
	v.SetDefault("selection.max_distance", locations.DefaultConstraints.MaxDistance)
	v.SetDefault("selection.mode", string(locations.ModeCompat))
	v.SetDefault("output.path", "")
	v.SetDefault("output.format", render.FormatHTML)
	v.SetDefault("server.address", ":8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Load reads configuration from defaults, an optional config file and
// FILM_MAP_* environment variables (a .env file in the working directory
// is honoured). With an empty path, film-map.{yaml,toml,json} is looked up
// in the working directory and $HOME/.config/film-map; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("film-map")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/film-map")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !contains(geocode.Providers, c.Geocoder.Provider) {
		return fmt.Errorf("%w: %s", geocode.ErrUnknownProvider, c.Geocoder.Provider)
	}
	if c.Geocoder.Timeout <= 0 {
		return fmt.Errorf("geocoder timeout must be positive, got %s", c.Geocoder.Timeout)
	}
	if err := c.Constraints().Validate(); err != nil {
		return err
	}
	if _, err := locations.ParseMode(c.Selection.Mode); err != nil {
		return err
	}
	if !render.ValidFormat(c.Output.Format) {
		return fmt.Errorf("%w: %s", render.ErrUnknownFormat, c.Output.Format)
	}
	if !contains(logging.Levels, c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

func (c *Config) Constraints() locations.Constraints {
	return locations.Constraints{
		MaxCount:    c.Selection.MaxCount,
		MaxDistance: c.Selection.MaxDistance,
	}
}

// OutputPath is the configured output path, or a default named after the
// output format.
func (c *Config) OutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return render.DefaultPath(c.Output.Format)
}

// GeocoderOptions translates the geocoder section into geocode options.
func (c *Config) GeocoderOptions() []geocode.Option {
	return []geocode.Option{
		geocode.WithBaseUrl(c.Geocoder.URL),
		geocode.WithUserAgent(c.Geocoder.UserAgent),
		geocode.WithTimeout(c.Geocoder.Timeout),
		geocode.WithGazetteerPath(c.Geocoder.Gazetteer),
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
