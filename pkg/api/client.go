// Package api is the client for the fitness backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	fgerr "github.com/kerbaras/fitguide/pkg/errors"
)

// Client sends JSON and expects JSON. Every non-2xx answer is an error.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, "", v)
}

func (c *Client) post(ctx context.Context, path string, body any, v any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeInternal, "failed to encode request")
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), "application/json", v)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, v any) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", v)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e := fgerr.Wrap(err, fgerr.CodeNetwork, fmt.Sprintf("%s %s failed", method, path))
		e.Retryable = true
		return e
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(method, path, resp)
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fgerr.Wrap(err, fgerr.CodeServer, "invalid response from "+path)
	}
	return nil
}

// statusError maps a failed response to a coded error, using the backend's
// "detail" or "message" field when present.
func statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(raw, &body) == nil {
		switch d := body.Detail.(type) {
		case string:
			msg = d
		case nil:
			if body.Message != "" {
				msg = body.Message
			}
		default:
			if b, err := json.Marshal(d); err == nil {
				msg = string(b)
			}
		}
	}

	code := fgerr.CodeServer
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		code = fgerr.CodeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		code = fgerr.CodeNotFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		code = fgerr.CodeValidation
	}

	e := fgerr.Newf(code, "%s %s: %s", method, path, msg).
		WithMetadata("status", fmt.Sprint(resp.StatusCode))
	e.Retryable = resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
	return e
}
