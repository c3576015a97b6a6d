// Package api implements the client side of the diagram/flow REST
// contract.
//
// Every response arrives wrapped in the {success, message, data}
// envelope. Failures are normalized to a single human-readable message
// with a fixed priority: the server's message field, then the transport
// error, then a per-operation fallback. Raw transport errors never reach
// callers.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/isotrack/isotrack/pkg/errors"
	"github.com/isotrack/isotrack/pkg/flow"
	"github.com/isotrack/isotrack/pkg/httputil"
	"github.com/isotrack/isotrack/pkg/store"
)

// TokenSource supplies the bearer token attached to each request.
// Token acquisition and refresh live behind this interface; the client
// only asks for the current token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token. An empty token
// sends unauthenticated requests.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token(ctx context.Context) (string, error) { return string(t), nil }

// Client talks to an IsoTrack API server.
type Client struct {
	baseURL  string
	http     *http.Client
	token    TokenSource
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		token:    StaticToken(""),
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SaveRequest is the body of PUT /diagrams/{id}: the graph payload and,
// optionally, a freshly rendered branded snapshot.
type SaveRequest struct {
	Data      *flow.Graph `json:"data"`
	SVGExport string      `json:"svg_export,omitempty"`
}

// ListDiagrams fetches all diagram records.
func (c *Client) ListDiagrams(ctx context.Context) ([]store.Diagram, error) {
	var out []store.Diagram
	err := c.do(ctx, http.MethodGet, "/diagrams", nil, &out, "No se pudo obtener los diagramas")
	return out, err
}

// GetDiagram fetches a single diagram with its data payload.
func (c *Client) GetDiagram(ctx context.Context, id string) (*store.Diagram, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var out store.Diagram
	if err := c.do(ctx, http.MethodGet, "/diagrams/"+id, nil, &out, "No se pudo cargar el diagrama"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDiagramLinks fetches the artifact links of a diagram.
func (c *Client) GetDiagramLinks(ctx context.Context, id string) ([]store.Link, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var out []store.Link
	err := c.do(ctx, http.MethodGet, "/diagrams/"+id+"/links", nil, &out, "No se pudo cargar los vínculos")
	return out, err
}

// SaveDiagram persists a diagram's graph payload and optional snapshot,
// returning the updated record.
func (c *Client) SaveDiagram(ctx context.Context, id string, req SaveRequest) (*store.Diagram, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var out store.Diagram
	if err := c.do(ctx, http.MethodPut, "/diagrams/"+id, req, &out, "No se pudo guardar el diagrama"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFlows fetches all flow records.
func (c *Client) ListFlows(ctx context.Context) ([]store.Flow, error) {
	var out []store.Flow
	err := c.do(ctx, http.MethodGet, "/flows", nil, &out, "No se pudo obtener los flujos")
	return out, err
}

// GetFlow fetches a single flow with its nodes and edges.
func (c *Client) GetFlow(ctx context.Context, id string) (*store.Flow, error) {
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var out store.Flow
	if err := c.do(ctx, http.MethodGet, "/flows/"+id, nil, &out, "No se pudo cargar el flujo"); err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one contract operation with retries, envelope decoding, and
// error normalization. fallback is the operation's generic message used
// when neither the server nor the transport offers anything better.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		return c.once(ctx, method, path, body, out)
	})
	if err == nil {
		return nil
	}
	return normalize(err, fallback)
}

func (c *Client) once(ctx context.Context, method, path string, body, out any) error {
	reqBody := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode request body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.token.Token(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "acquire token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request %s %s", method, path))
	}
	defer resp.Body.Close()

	env, decodeErr := httputil.DecodeEnvelope(resp.Body)

	if resp.StatusCode >= 500 {
		return httputil.Retryable(serverError(resp.StatusCode, env))
	}
	if resp.StatusCode >= 400 || (decodeErr == nil && !env.Success) {
		return serverError(resp.StatusCode, env)
	}
	if decodeErr != nil {
		return errors.Wrap(errors.ErrCodeNetwork, decodeErr, "read response")
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := env.Unmarshal(out); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode response data")
	}
	return nil
}

// serverError converts a failed response into a coded error, preferring
// the server's own message when the envelope carried one.
func serverError(status int, env *httputil.Envelope) error {
	code := errors.ErrCodeNetwork
	switch status {
	case http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case http.StatusUnauthorized:
		code = errors.ErrCodeUnauthorized
	case http.StatusForbidden:
		code = errors.ErrCodeForbidden
	}

	if env != nil && env.Message != "" {
		return errors.New(code, "%s", env.Message)
	}
	return errors.New(code, "status %d", status)
}

// normalize collapses any failure into one user-facing message:
// server or transport message first, the operation fallback last.
func normalize(err error, fallback string) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeNetwork
	}

	var e *errors.Error
	if stderrors.As(err, &e) && e.Message != "" {
		return errors.Wrap(code, err, "%s", e.Message)
	}
	return errors.Wrap(code, err, "%s", fallback)
}
