package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/apicache"
)

// APIError is a non-2xx response from an upstream API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code: %d, response: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type BaseClient struct {
	baseURL  string
	client   *http.Client
	headers  map[string]string
	cache    apicache.Cache
	cacheTTL time.Duration
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetCache memoizes successful GET responses in cache for ttl
func (c *BaseClient) SetCache(cache apicache.Cache, ttl time.Duration) {
	c.cache = cache
	c.cacheTTL = ttl
}

// InvalidateCache drops cached responses for every endpoint under endpointPrefix
func (c *BaseClient) InvalidateCache(endpointPrefix string) int {
	if c.cache == nil {
		return 0
	}
	prefix := endpointPrefix
	if u, err := url.Parse(c.baseURL + endpointPrefix); err == nil {
		prefix = u.Path
	}
	return c.cache.InvalidatePrefix(prefix)
}

func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return responseBody, nil
}

// Get performs a GET, served from the cache when a fresh copy exists
func (c *BaseClient) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.GetChecked(ctx, endpoint, nil)
}

// GetChecked is Get with a check run on every body, cached or fetched. A fetched body
// is cached only when check accepts it; a check error is returned unwrapped.
func (c *BaseClient) GetChecked(ctx context.Context, endpoint string, check func([]byte) error) ([]byte, error) {
	if check == nil {
		check = func([]byte) error { return nil }
	}

	key := c.baseURL + endpoint
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			if err := check(cached); err != nil {
				c.cache.Delete(key)
				return nil, err
			}
			return cached, nil
		}
	}

	body, err := c.MakeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err := check(body); err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Put(key, body, c.cacheTTL)
	}
	return body, nil
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, body io.Reader) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, body)
}
