package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gamecatalog/web/internal/cache"
)

// StatusError reports a non-2xx answer from the backend.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s %s: unexpected status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// doJSON runs a request and decodes the answer with decode. Bodies that
// decode cleanly are cached; transport, status and decode failures never are.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body []byte, decode func([]byte) error) error {
	key := ""
	if c.cache != nil {
		key = cache.Key(method, endpoint, string(body))
		if b, ok, err := c.cache.Get(ctx, key); err != nil {
			c.log.Warn().Err(err).Str("url", endpoint).Msg("cache read")
		} else if ok && decode(b) == nil {
			c.log.Debug().Str("url", endpoint).Msg("cache hit")
			return nil
		}
	}

	b, err := c.fetch(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if err := decode(b); err != nil {
		return fmt.Errorf("catalog: decode %s %s: %w", method, endpoint, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, b, c.cacheTTL); err != nil {
			c.log.Warn().Err(err).Str("url", endpoint).Msg("cache write")
		}
	}
	return nil
}

// fetch performs one request and returns the raw body of a 2xx answer.
func (c *Client) fetch(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("catalog: rate limit wait: %w", err)
		}
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s %s: %w", method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Method: method,
			URL:    endpoint,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", endpoint, err)
	}
	return b, nil
}
