package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultServiceUrl = "http://localhost:8080"

// Service resolves addresses against a geocoding-api deployment
// (GET /geocode?q=ADDRESS returning a JSON array of ranked matches).
type Service struct {
	baseUrl   string
	userAgent string
	client    *http.Client
}

type serviceLocation struct {
	ID           int     `json:"id"`
	Prefecture   string  `json:"prefecture"`
	Municipality string  `json:"municipality"`
	Address1     string  `json:"address1"`
	Address2     string  `json:"address2"`
	BlockLot     string  `json:"block_lot"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (l serviceLocation) address() string {
	var parts []string
	for _, s := range []string{l.Prefecture, l.Municipality, l.Address1, l.Address2, l.BlockLot} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func NewService(opt ...Option) *Service {
	c := newConfig(defaultServiceUrl, opt)
	return &Service{
		baseUrl:   strings.TrimSuffix(c.BaseUrl, "/"),
		userAgent: c.UserAgent,
		client:    c.Client,
	}
}

func (s *Service) Resolve(ctx context.Context, address string) (*Location, error) {
	u := s.baseUrl + "/geocode?" + url.Values{"q": {address}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", u, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", u, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", u, res.Status)
	}
	var matches []serviceLocation
	if err := json.NewDecoder(res.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("error decoding response from %s: %w", u, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	m := matches[0]
	return &Location{Address: m.address(), Latitude: m.Latitude, Longitude: m.Longitude}, nil
}
