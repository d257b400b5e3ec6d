package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pharmaflux/internal/config"
)

type Coordinates struct {
	Lat float64
	Lon float64
}

// Client resolves free-text locations to coordinates.
type Client interface {
	Lookup(ctx context.Context, location string) (Coordinates, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a Nominatim-compatible geocoder. Returns nil when no
// base URL is configured; callers treat a nil client as a lookup failure
// and fall back to the default coordinate.
func NewClient(cfg config.GeocoderConfig) Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *httpClient) Lookup(ctx context.Context, location string) (Coordinates, error) {
	if c == nil || c.client == nil {
		return Coordinates{}, errors.New("nil geocoder client")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return Coordinates{}, errors.New("empty location")
	}

	endpoint := c.baseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, err
	}
	if len(results) == 0 {
		return Coordinates{}, errors.New("location not found")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
