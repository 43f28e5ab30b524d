// Package refiner turns a rough draft into a polished message through a
// remote text-transformation function, falling back to a local template
// when the function cannot be reached.
package refiner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Path is appended to the configured functions endpoint.
const Path = "/refine-message"

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Refiner rewrites a draft message.
type Refiner interface {
	Refine(ctx context.Context, draft string) (string, error)
}

// Unconfigured is the Refiner used when no endpoint is set. Every call
// fails, so sessions always show the offline fallback.
type Unconfigured struct{}

// Refine implements Refiner.
func (Unconfigured) Refine(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// Client calls the remote refine-message function. It makes a single
// attempt per call and relies on the transport's default timeout.
type Client struct {
	url        string
	publicKey  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the functions base URL endpoint.
func NewClient(endpoint, publicKey string, opts ...Option) *Client {
	c := &Client{
		url:        strings.TrimRight(endpoint, "/") + Path,
		publicKey:  publicKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the full refine-message URL.
func (c *Client) URL() string { return c.url }

type refineRequest struct {
	Message string `json:"message"`
}

// Refine posts the draft and returns the refinedMessage field of the reply.
func (c *Client) Refine(ctx context.Context, draft string) (string, error) {
	body, err := json.Marshal(refineRequest{Message: draft})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.publicKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling refine endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", NewAPIError(resp.StatusCode, c.url, errorMessage(data))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return parseRefined(data)
}

func parseRefined(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", ErrInvalidResponse
	}
	field := gjson.GetBytes(data, "refinedMessage")
	if !field.Exists() || field.Type != gjson.String {
		return "", ErrInvalidResponse
	}
	if field.String() == "" {
		return "", ErrNoContent
	}
	return field.String(), nil
}

// errorMessage pulls a readable message out of an error body.
func errorMessage(data []byte) string {
	if gjson.ValidBytes(data) {
		if msg := gjson.GetBytes(data, "error"); msg.Type == gjson.String {
			return msg.String()
		}
	}
	return strings.TrimSpace(string(data))
}
