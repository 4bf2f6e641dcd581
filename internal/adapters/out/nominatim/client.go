// Package nominatim geocodes addresses with the OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/ports"
)

const (
	// DefaultBaseURL is the public Nominatim endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent identifies the application as the usage policy requires.
	DefaultUserAgent = "DeliveryTracker/1.0 (delivery-tracker-backend)"
	// DefaultCountry is appended to every query.
	DefaultCountry = "Brazil"
)

// Config holds the client settings. Empty fields take the defaults above.
type Config struct {
	BaseURL   string
	UserAgent string
	Country   string
}

// HTTPDoer executes requests; *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.Geocoder.
type Client struct {
	cfg        Config
	httpClient HTTPDoer
}

// NewClient creates a geocoding client.
func NewClient(cfg Config, httpClient HTTPDoer) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// GeocodeAddress searches q = "street, number, city, region, country".
func (c *Client) GeocodeAddress(ctx context.Context, query ports.GeocodeQuery) (kernel.Coordinates, error) {
	q := strings.Join([]string{query.Street, query.Number, query.City, query.Region, c.cfg.Country}, ", ")
	return c.search(ctx, url.Values{"q": {q}})
}

// GeocodePostalCode searches by postal code and country only.
func (c *Client) GeocodePostalCode(ctx context.Context, code kernel.PostalCode) (kernel.Coordinates, error) {
	return c.search(ctx, url.Values{
		"postalcode": {code.String()},
		"country":    {c.cfg.Country},
	})
}

func (c *Client) search(ctx context.Context, params url.Values) (kernel.Coordinates, error) {
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return kernel.Coordinates{}, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Coordinates{}, fmt.Errorf("nominatim responded %d", resp.StatusCode)
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return kernel.Coordinates{}, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return kernel.Coordinates{}, ports.ErrNoGeocodeMatch
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return kernel.Coordinates{}, fmt.Errorf("parse lon: %w", err)
	}

	return kernel.NewCoordinates(lat, lon)
}
