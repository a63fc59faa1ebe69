// Package wttr queries the wttr.in JSON API for current conditions.
package wttr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"

	"github.com/tidwall/gjson"
)

var _ output.WeatherPort = (*Client)(nil)

const (
	DefaultBaseURL = "https://wttr.in"
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// ErrUnavailable covers a non-2xx status or a body without current
// conditions. Transport failures are returned unwrapped.
var ErrUnavailable = entity.ErrWeatherUnavailable

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Current(ctx context.Context, city string) (*entity.WeatherReport, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read weather body: %w", err)
	}

	return parseReport(city, body)
}

func parseReport(city string, body []byte) (*entity.WeatherReport, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrUnavailable)
	}

	current := gjson.GetBytes(body, "current_condition.0")
	if !current.Exists() {
		return nil, fmt.Errorf("%w: no current_condition", ErrUnavailable)
	}

	return &entity.WeatherReport{
		City:       city,
		TempC:      current.Get("temp_C").String(),
		TempF:      current.Get("temp_F").String(),
		FeelsLikeC: current.Get("FeelsLikeC").String(),
		FeelsLikeF: current.Get("FeelsLikeF").String(),
		Condition:  current.Get("weatherDesc.0.value").String(),
		Humidity:   current.Get("humidity").String(),
		WindKmph:   current.Get("windspeedKmph").String(),
	}, nil
}
