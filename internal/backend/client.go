// Package backend is the typed client for the external Immermex compute
// API. All KPI and chart computation happens on the other side of this
// client; this side only builds requests, bounds them with a deadline and
// decodes the response shapes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/immermex/dashboard-api/internal/metrics"
	"github.com/rs/zerolog"
)

const (
	// requestTimeout bounds every backend call client-side.
	requestTimeout = 30 * time.Second

	// altPrefix is where the backend lives when it is not mounted at the
	// bare root. The working prefix is probed once and remembered.
	altPrefix = "/api"

	maxErrorBody = 512
)

// PrefixStore remembers the discovered API path prefix across restarts.
type PrefixStore interface {
	APIPrefix(ctx context.Context) (string, bool)
	SetAPIPrefix(ctx context.Context, prefix string) error
}

type Client struct {
	BaseURL string
	Client  *http.Client

	prefixes PrefixStore
	logger   zerolog.Logger

	mu        sync.Mutex
	prefix    string
	confirmed bool
}

func New(baseURL string, prefixes PrefixStore, logger zerolog.Logger) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: requestTimeout,
		},
		prefixes: prefixes,
		logger:   logger,
	}

	if prefixes != nil {
		if prefix, ok := prefixes.APIPrefix(context.Background()); ok {
			c.prefix = prefix
			c.confirmed = true
			logger.Debug().Str("prefix", prefix).Msg("restored backend path prefix")
		}
	}

	return c
}

func (c *Client) currentPrefix() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefix, c.confirmed
}

func (c *Client) rememberPrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	already := c.confirmed && c.prefix == prefix
	c.prefix = prefix
	c.confirmed = true
	c.mu.Unlock()

	if already || c.prefixes == nil {
		return
	}
	if err := c.prefixes.SetAPIPrefix(ctx, prefix); err != nil {
		c.logger.Warn().Err(err).Str("prefix", prefix).Msg("failed to persist backend path prefix")
	}
}

func (c *Client) buildURL(prefix, path string, q url.Values) string {
	u := c.BaseURL + prefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) attempt(ctx context.Context, method, prefix, path string, q url.Values, body []byte, contentType string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(prefix, path, q), reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}

// do executes one request against the backend, probing the alternate path
// prefix on the first "not found" and remembering whichever prefix works.
// The returned response is always 2xx; the caller owns closing the body.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte, contentType string) (*http.Response, error) {
	start := time.Now()
	defer func() {
		metrics.BackendRequestLatencySeconds.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	prefix, confirmed := c.currentPrefix()

	resp, err := c.attempt(ctx, method, prefix, path, q, body, contentType)
	if err != nil {
		metrics.BackendRequestErrorsTotal.WithLabelValues(path, ErrorClass(err)).Inc()
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound && !confirmed {
		resp.Body.Close()

		alt := altPrefix
		if prefix == altPrefix {
			alt = ""
		}

		c.logger.Debug().Str("path", path).Str("alt", alt).Msg("probing alternate backend prefix")
		resp, err = c.attempt(ctx, method, alt, path, q, body, contentType)
		if err != nil {
			metrics.BackendRequestErrorsTotal.WithLabelValues(path, ErrorClass(err)).Inc()
			return nil, err
		}
		if resp.StatusCode != http.StatusNotFound {
			prefix = alt
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()

		serr := &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(excerpt)),
		}
		c.logger.Error().Int("status_code", serr.Code).Str("path", path).Str("body", serr.Body).Msg("backend request failed")
		metrics.BackendRequestErrorsTotal.WithLabelValues(path, "http").Inc()
		return nil, serr
	}

	c.rememberPrefix(ctx, prefix)
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, b, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
