// Package weather proxies forecast lookups to the Weatherbit API via
// RapidAPI. The upstream JSON body is relayed verbatim; failures, including
// timeouts, are fatal to the request and never retried.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"librarium/internal/config"
)

const (
	defaultBaseURL = "https://weatherbit-v1-mashape.p.rapidapi.com"
	rapidAPIHost   = "weatherbit-v1-mashape.p.rapidapi.com"

	// MinForecastDays and MaxForecastDays bound the daily forecast window.
	MinForecastDays = 1
	MaxForecastDays = 16
)

// Query holds the validated parameters common to all forecast lookups.
type Query struct {
	Lat   float64
	Lon   float64
	Units string // "metric" or "imperial"
	Lang  string
}

// Client calls the Weatherbit API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Weatherbit client with a fixed request timeout.
func NewClient(cfg config.Weather) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
	}
}

// Current fetches the current weather for a location.
func (c *Client) Current(ctx context.Context, q Query) (json.RawMessage, error) {
	return c.get(ctx, "/current", q.values())
}

// Forecast3Hourly fetches the three-hourly forecast for a location.
func (c *Client) Forecast3Hourly(ctx context.Context, q Query) (json.RawMessage, error) {
	return c.get(ctx, "/forecast/3hourly", q.values())
}

// ForecastDaily fetches the daily forecast. Days outside [1, 16] are clamped.
func (c *Client) ForecastDaily(ctx context.Context, q Query, days int) (json.RawMessage, error) {
	if days < MinForecastDays {
		days = MinForecastDays
	}
	if days > MaxForecastDays {
		days = MaxForecastDays
	}
	params := q.values()
	params.Set("days", strconv.Itoa(days))
	return c.get(ctx, "/forecast/daily", params)
}

func (q Query) values() url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	params.Set("units", q.Units)
	params.Set("lang", q.Lang)
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", rapidAPIHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return json.RawMessage(body), nil
}
