package serving

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	perr "stencil/internal/platform/errors"
)

const endpointsBase = "/api/2.0/serving-endpoints"

// List returns every serving endpoint in the workspace, following pagination
func (c *Client) List(ctx context.Context) ([]Endpoint, error) {
	var out []Endpoint
	token := ""
	for {
		path := endpointsBase
		if token != "" {
			path += "?page_token=" + url.QueryEscape(token)
		}
		resp, err := c.do(ctx, http.MethodGet, path, nil, true)
		if err != nil {
			return nil, err
		}
		var page endpointsPage
		if err := c.decodeBody(resp, path, &page); err != nil {
			return nil, perr.MalformedUpstreamf("serving list endpoints: %v", err)
		}
		for _, raw := range page.Endpoints {
			out = append(out, raw.toEndpoint())
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		token = page.NextPageToken
	}
}

// Get returns one serving endpoint by name
func (c *Client) Get(ctx context.Context, name string) (Endpoint, error) {
	path := endpointsBase + "/" + url.PathEscape(name)
	resp, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return Endpoint{}, err
	}
	var raw rawEndpoint
	if err := c.decodeBody(resp, path, &raw); err != nil {
		return Endpoint{}, perr.MalformedUpstreamf("serving get endpoint %q: %v", name, err)
	}
	return raw.toEndpoint(), nil
}

// Invoke posts a payload to the endpoint and returns the upstream response
// verbatim. Never retried: invocations are not idempotent. Non-2xx upstream
// statuses come back as data so the workbench can render model errors
func (c *Client) Invoke(ctx context.Context, name string, payload []byte) (InvokeResult, error) {
	u := c.opts.BaseURL + "/serving-endpoints/" + url.PathEscape(name) + "/invocations"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return InvokeResult{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "serving invoke request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return InvokeResult{}, ctx.Err()
		}
		return InvokeResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "serving invoke failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("endpoint", name).Msg("serving close body failed")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, invokeBodyMax))
	if err != nil {
		return InvokeResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "serving invoke read failed")
	}
	c.log.Debug().
		Str("endpoint", name).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("bytes", len(body)).
		Msg("serving invocation response")

	return InvokeResult{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		Latency:     lat,
	}, nil
}

// decodeBody reads and unmarshals a 2xx body, closing it either way
func (c *Client) decodeBody(resp *http.Response, path string, out any) error {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("serving close body failed")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
