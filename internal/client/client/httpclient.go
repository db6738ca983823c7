package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/client/models"
	"github.com/dmitrijs2005/marketpulse/internal/common"
	"github.com/hashicorp/go-cleanhttp"
)

const maxResponseBytes = 4 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient validates baseURL and builds a client whose calls are
// bounded by timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	return &HTTPClient{baseURL: u, http: hc}, nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

func (c *HTTPClient) Register(ctx context.Context, userName, password string) (*models.User, error) {
	body, err := json.Marshal(map[string]string{"username": userName, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/register", nil, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user models.User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and keeps it for the
// gated calls.
func (c *HTTPClient) Login(ctx context.Context, userName, password string) error {
	form := url.Values{"username": {userName}, "password": {password}}

	req, err := c.newRequest(ctx, http.MethodPost, "/token", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" || !strings.EqualFold(resp.TokenType, common.TokenType) {
		return fmt.Errorf("unexpected token response (type %q)", resp.TokenType)
	}

	c.setToken(resp.AccessToken)
	return nil
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	req, err := c.newAuthedRequest(ctx, "/me", nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MarketData searches news for query; an empty query uses the server
// default.
func (c *HTTPClient) MarketData(ctx context.Context, query string) ([]models.Article, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}

	req, err := c.newAuthedRequest(ctx, "/market-data", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []models.Article `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) Weather(ctx context.Context, at *models.Coordinates) (*models.Weather, error) {
	params := url.Values{}
	if at != nil {
		params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	}

	req, err := c.newAuthedRequest(ctx, "/weather", params)
	if err != nil {
		return nil, err
	}

	var w models.Weather
	if err := c.do(req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Ping probes /healthz.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/healthz", nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *HTTPClient) newAuthedRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	token := c.token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out (skipped when out is
// nil). Failures are mapped onto the package's sentinel errors.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp.StatusCode, body)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapError(status int, body io.Reader) error {
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(body).Decode(&env)

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		if env.Error.Code == "" {
			return ErrUnavailable
		}
	}

	return &APIError{StatusCode: status, Code: env.Error.Code, Message: env.Error.Message}
}
