package eas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	"nameplate/internal/identity/models"
	"nameplate/pkg/platform/circuit"
)

const maxResponseBytes = 4 << 20

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Client posts GraphQL queries to EAS indexers. One limiter is shared across
// endpoints; each endpoint gets its own breaker.
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	breakerOpts []circuit.Option

	mu       sync.Mutex
	breakers map[string]*circuit.Breaker
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the pooled cleanhttp client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithRateLimit caps outbound queries per second. Zero disables limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(cl *Client) {
		if perSecond <= 0 {
			cl.limiter = nil
			return
		}
		burst := max(int(perSecond), 1)
		cl.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithClientLogger sets the logger used for circuit transitions.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// WithBreakerOptions configures the per-endpoint breakers.
func WithBreakerOptions(opts ...circuit.Option) ClientOption {
	return func(cl *Client) {
		cl.breakerOpts = append(cl.breakerOpts, opts...)
	}
}

// NewClient builds a Client with a pooled cleanhttp transport.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:     cleanhttp.DefaultPooledClient(),
		logger:   slog.Default(),
		breakers: map[string]*circuit.Breaker{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) breaker(endpoint string) *circuit.Breaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breakers[endpoint]
	if !ok {
		b = circuit.New(endpoint, c.breakerOpts...)
		c.breakers[endpoint] = b
	}
	return b
}

// Query posts query with variables to endpoint and decodes the data member
// into out.
func (c *Client) Query(ctx context.Context, endpoint, query string, variables map[string]any, out any) error {
	b := c.breaker(endpoint)
	if !b.Allow() {
		return circuit.ErrOpen
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", models.ErrRateLimited, err)
		}
	}

	err := c.do(ctx, endpoint, query, variables, out)
	switch {
	case err == nil, errors.Is(err, models.ErrMalformedResponse):
		// The indexer answered; only transport-level trouble counts against it.
		if _, change := b.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "eas circuit closed", "endpoint", endpoint)
		}
	case errors.Is(err, context.Canceled):
	default:
		if _, change := b.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "eas circuit opened", "endpoint", endpoint, "error", err)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post graphql: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: indexer returned %d", models.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("indexer returned status %d", resp.StatusCode)
	}

	var gr graphQLResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&gr); err != nil {
		return fmt.Errorf("decode graphql response: %w", errors.Join(models.ErrMalformedResponse, err))
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("graphql errors: %s: %w", strings.Join(msgs, "; "), models.ErrMalformedResponse)
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return fmt.Errorf("graphql response has no data: %w", models.ErrMalformedResponse)
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", errors.Join(models.ErrMalformedResponse, err))
	}
	return nil
}
