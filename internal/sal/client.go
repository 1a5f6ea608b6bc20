package sal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public JET SAL endpoint.
const DefaultBaseURL = "https://sal.jetdata.eu"

// Client talks to a SAL data server. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache attaches a read-through signal cache; fetched signals are stored
// and later Gets for the same path are served locally.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the signal at the given data path (see PPFPath).
func (c *Client) Get(ctx context.Context, path string) (*Signal, error) {
	if c.cache != nil {
		if sig, ok, err := c.cache.Get(path); err != nil {
			return nil, err
		} else if ok {
			return sig, nil
		}
	}

	u, err := url.JoinPath(c.baseURL, "data", path)
	if err != nil {
		return nil, fmt.Errorf("sal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?object=full", nil)
	if err != nil {
		return nil, fmt.Errorf("sal: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sal: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sal: get %s: server returned %s: %s", path, resp.Status, body)
	}

	var sig Signal
	if err := json.NewDecoder(resp.Body).Decode(&sig); err != nil {
		return nil, fmt.Errorf("sal: get %s: %w", path, err)
	}
	if err := sig.validate(); err != nil {
		return nil, fmt.Errorf("sal: get %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(path, &sig); err != nil {
			return nil, err
		}
	}
	return &sig, nil
}
