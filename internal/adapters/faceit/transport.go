package faceit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBase = "https://open.faceit.com/data/v4"

type Client struct {
	apiKey  string
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBase,
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// doJSON: arma la URL, agrega Authorization y mapea 404. Sin reintentos: un
// 429 vuelve al caller como *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("faceit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("faceit http: %w", err)
	}
	defer res.Body.Close()
	c.log.Debug("faceit call", "method", method, "path", path, "status_code", res.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if res.StatusCode == http.StatusTooManyRequests {
		c.log.Warn("faceit rate limited", "path", path, "retry_after", res.Header.Get("Retry-After"))
	}

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("faceit decode %s: %w", path, err)
	}
	return nil
}
