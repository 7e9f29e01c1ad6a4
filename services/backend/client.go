// File: services/backend/client.go
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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// envelope is the backend's standard response wrapper.
type envelope struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
	Text    string          `json:"text"`
}

// Client talks to the course platform REST API.
type Client struct {
	baseURL  string
	authPath string
	http     *http.Client
}

// NewClient builds a client whose transport is traced with otelhttp.
func NewClient(baseURL, authPath string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, authPath, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewClientWithHTTP uses the given http.Client as is.
func NewClientWithHTTP(baseURL, authPath string, hc *http.Client) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		authPath: "/" + strings.Trim(authPath, "/"),
		http:     hc,
	}
}

// BaseURL is the backend origin, used to resolve relative asset paths.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient exposes the underlying client for health probes.
func (c *Client) HTTPClient() *http.Client { return c.http }

type call struct {
	method      string
	path        string
	token       string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// send performs the call and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, cl call) ([]byte, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		ct := cl.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnreachable, cl.path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage pulls message, then text, out of an error body.
func errorMessage(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		return env.Text
	}
	return ""
}

// do performs the call and decodes the envelope's result into out (when non-nil).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	data, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", cl.path, err)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", cl.path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		var err error
		if body, err = jsonBody(in); err != nil {
			return err
		}
	}
	return c.do(ctx, call{method: method, path: path, token: token, body: body}, out)
}
