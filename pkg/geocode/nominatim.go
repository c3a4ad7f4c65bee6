package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultNominatimUrl = "https://nominatim.openstreetmap.org"

// Nominatim resolves addresses with the OpenStreetMap Nominatim search API.
type Nominatim struct {
	baseUrl   string
	userAgent string
	client    *http.Client
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatim(opt ...Option) *Nominatim {
	c := newConfig(defaultNominatimUrl, opt)
	return &Nominatim{
		baseUrl:   strings.TrimSuffix(c.BaseUrl, "/"),
		userAgent: c.UserAgent,
		client:    c.Client,
	}
}

func (n *Nominatim) Resolve(ctx context.Context, address string) (*Location, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	u := n.baseUrl + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", u, err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")
	res, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %w", u, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", u, res.Status)
	}
	var places []nominatimPlace
	if err := json.NewDecoder(res.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("error decoding response from %s: %w", u, err)
	}
	if len(places) == 0 {
		return nil, nil
	}
	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q for %q: %w", p.Lat, address, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q for %q: %w", p.Lon, address, err)
	}
	return &Location{Address: p.DisplayName, Latitude: lat, Longitude: lon}, nil
}
