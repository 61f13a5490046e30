// Package registry provides a single shot client for the model registry signature API
package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "stencil/internal/platform/errors"
	"stencil/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "stencil-api"

	maxBodyBytes = 1 << 20
)

// Options configures the Client
type Options struct {
	// BaseURL is the workspace root, e.g. https://workspace.example.com
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches model version signatures. It never retries on its own:
// retry and deadline policy belong to the caller so the backoff schedule
// lives in exactly one place
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("registry"),
	}
}

// RateLimitedError reports a 429 from the registry with its Retry-After
// hint. RetryAfter is zero when the header was absent or unparsable
type RateLimitedError struct {
	RetryAfter time.Duration
	Err        error
}

// Error interface
func (e *RateLimitedError) Error() string { return e.Err.Error() }

// Unwrap interface
func (e *RateLimitedError) Unwrap() error { return e.Err }

// signatureResponse is the wire shape of the signature API
type signatureResponse struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Inputs  json.RawMessage `json:"inputs"`
}

// ModelSchema fetches the input signature for one model version and returns
// the raw inputs JSON for the schema parser
func (c *Client) ModelSchema(ctx context.Context, name, version string) ([]byte, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("version", version)
	u := c.opts.BaseURL + "/api/2.0/model-versions/signature?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "registry new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "registry request failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("model", name).Msg("registry close body failed")
		}
	}()

	c.log.Debug().
		Str("model", name).
		Str("version", version).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("registry signature response")

	switch {
	case resp.StatusCode == http.StatusOK:
		// decoded below
	case resp.StatusCode == http.StatusNotFound:
		return nil, perr.NotFoundf("model %q version %q not found in registry", name, version)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, perr.Forbiddenf("registry denied access to model %q", name)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitedError{
			RetryAfter: retryAfter(resp.Header),
			Err:        perr.TooManyRequestsf("registry rate limited"),
		}
	case resp.StatusCode >= 500:
		return nil, perr.Unavailablef("registry upstream status %d", resp.StatusCode)
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Newf(perr.ErrorCodeUnknown, "registry unexpected status %d body %s", resp.StatusCode, string(tail))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "registry read body failed")
	}
	var sig signatureResponse
	if err := json.Unmarshal(b, &sig); err != nil {
		return nil, perr.MalformedUpstreamf("registry signature for %q: %v", name, err)
	}
	if len(sig.Inputs) == 0 || string(sig.Inputs) == "null" {
		return nil, perr.MalformedUpstreamf("registry signature for %q has no inputs", name)
	}
	return sig.Inputs, nil
}

// retryAfter parses the Retry-After header as delay seconds
func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	sec, err := strconv.Atoi(s)
	if err != nil || sec <= 0 {
		return 0
	}
	return time.Duration(sec) * time.Second
}
