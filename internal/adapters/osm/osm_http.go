package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"trip-route-planner/internal/domain"
)

// ClientConfig holds the connection settings shared by the geocoder and the router.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
	// Upper bound for a single outbound call, including reading the body.
	Timeout time.Duration
	// Optional; defaults to a client bounded by Timeout.
	HTTPClient *http.Client
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// client performs single-shot JSON GETs. It holds no per-request state and
// is safe for concurrent use.
type client struct {
	session   *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
}

func newClient(cfg ClientConfig, defaultBaseURL string) (*client, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("user agent is empty")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	session := cfg.HTTPClient
	if session == nil {
		session = &http.Client{Timeout: timeout}
	}

	return &client{
		session:   session,
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		timeout:   timeout,
	}, nil
}

func (c *client) newRequest(ctx context.Context, endpoint string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	return req, nil
}

func (c *client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// getJSON issues exactly one GET bounded by the client timeout and decodes the body into out.
// Every failure is wrapped with domain.ErrServiceError; there is no retry.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, c.baseURL+path, query)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrServiceError, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", domain.ErrServiceError, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrServiceError, err)
	}

	return nil
}
