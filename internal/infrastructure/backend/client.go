// Package backend implements the remote gateway ports against the commerce
// backend's REST API. One Client exists per storefront session and owns
// that session's cookie jar: the backend's httpOnly auth cookie lives in
// the jar and is replayed on every call, never parsed or stored elsewhere.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client is a thin JSON client over the backend base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client with a fresh, empty cookie jar. A default
// timeout is applied when none is provided.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

// errorBody is the backend's failure envelope. The backend reports in
// Spanish ("mensaje"); some newer endpoints use "error".
type errorBody struct {
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

// do performs one JSON round-trip. body and out may be nil. Non-2xx
// responses become *domain.RemoteError with the backend's message passed
// through verbatim; transport failures wrap domain.ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, out)
	metrics.BackendRequestDuration.WithLabelValues(op, outcomeLabel(err)).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend transport failure")
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
		msg := eb.Mensaje
		if msg == "" {
			msg = eb.Error
		}
		return &domain.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isRemote(err):
		return "backend_error"
	default:
		return "transport_error"
	}
}

func isRemote(err error) bool {
	var re *domain.RemoteError
	return errors.As(err, &re)
}
