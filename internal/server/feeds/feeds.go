// Package feeds forwards requests to the third-party news and weather APIs.
// Calls are single-shot: no retries, caching or reshaping beyond picking the
// articles list out of the NewsAPI envelope.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/common"
	"github.com/dmitrijs2005/marketpulse/internal/server/config"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	NewsService    = "newsapi"
	WeatherService = "weatherapi"

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 4 << 20
)

// Observer is notified after every upstream call with the service name and
// the HTTP status (0 when the request failed in transport).
type Observer func(service string, status int)

// Client talks to NewsAPI and WeatherAPI with a pooled HTTP client.
type Client struct {
	http *http.Client

	newsURL      string
	newsKey      string
	newsLanguage string
	newsPageSize int

	weatherURL      string
	weatherKey      string
	weatherLanguage string

	observe Observer
}

// NewClient builds a Client from the passthrough settings in cfg.
func NewClient(cfg *config.Config) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.UpstreamTimeout

	return &Client{
		http:            hc,
		newsURL:         cfg.NewsAPIBaseURL,
		newsKey:         cfg.NewsAPIKey,
		newsLanguage:    cfg.NewsLanguage,
		newsPageSize:    cfg.NewsPageSize,
		weatherURL:      cfg.WeatherAPIBaseURL,
		weatherKey:      cfg.WeatherAPIKey,
		weatherLanguage: cfg.WeatherLanguage,
		observe:         func(string, int) {},
	}
}

// WithObserver sets the per-call hook; nil is ignored.
func (c *Client) WithObserver(o Observer) *Client {
	if o != nil {
		c.observe = o
	}
	return c
}

// MarketNews runs a NewsAPI "everything" search for query and returns the
// raw article objects.
func (c *Client) MarketNews(ctx context.Context, query string) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", c.newsLanguage)
	params.Set("pageSize", strconv.Itoa(c.newsPageSize))

	header := http.Header{}
	header.Set("X-Api-Key", c.newsKey)

	body, err := c.get(ctx, NewsService, c.newsURL, params, header)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Articles []json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", NewsService, err)
	}
	if envelope.Articles == nil {
		envelope.Articles = []json.RawMessage{}
	}
	return envelope.Articles, nil
}

// CurrentWeather returns WeatherAPI's current conditions at lat,lon verbatim.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("key", c.weatherKey)
	params.Set("q", formatCoord(lat)+","+formatCoord(lon))
	params.Set("lang", c.weatherLanguage)

	body, err := c.get(ctx, WeatherService, c.weatherURL, params, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: response is not JSON", WeatherService)
	}
	return json.RawMessage(body), nil
}

// get performs one GET against base with params and header. Transport errors
// are returned without the request URL, since WeatherAPI takes its key as a
// query parameter.
func (c *Client) get(ctx context.Context, service, base string, params url.Values, header http.Header) ([]byte, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%s: bad base url: %w", service, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", service, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(service, 0)
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%s: request failed after %s: %w", service, time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	c.observe(service, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &common.UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", service, err)
	}
	return body, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
