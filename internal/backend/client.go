package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TokenHeader is the backend's bearer-like auth header for admin calls.
const TokenHeader = "x-access-token"

// Client calls the yearbook backend, the owner of every server-authoritative
// entity. Responses are decoded once here; callers receive either a typed
// value or an *Error carrying the taxonomy kind — no duck-typed success
// flags escape this package.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a backend client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do issues one request. token is attached as x-access-token when non-empty.
// A nil out skips body decoding.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindDecode, Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}

// statusError converts a non-2xx response into an *Error, preferring the
// body's msg field as the human-readable message.
func statusError(resp *http.Response) *Error {
	kind := KindHTTPStatus
	if resp.StatusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	e := &Error{Kind: kind, Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Msg != "" {
		e.Msg = body.Msg
	}
	return e
}
