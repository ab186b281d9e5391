// Package ethrpc shares lazily dialed JSON-RPC clients between every caller
// that needs the same node, with a circuit breaker per endpoint.
package ethrpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-cleanhttp"

	"nameplate/pkg/platform/circuit"
)

// Endpoint is one RPC node. The connection is established on first use.
type Endpoint struct {
	url     string
	breaker *circuit.Breaker
	logger  *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
}

// URL returns the node URL.
func (e *Endpoint) URL() string {
	return e.url
}

func (e *Endpoint) ethClient(ctx context.Context) (*ethclient.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		return e.client, nil
	}
	rc, err := rpc.DialOptions(ctx, e.url, rpc.WithHTTPClient(cleanhttp.DefaultPooledClient()))
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", redact(e.url), err)
	}
	e.client = ethclient.NewClient(rc)
	return e.client, nil
}

// CallContract implements ethereum.ContractCaller.
func (e *Endpoint) CallContract(ctx context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	var out []byte
	err := e.guard(ctx, "eth_call", func(c *ethclient.Client) error {
		var err error
		out, err = c.CallContract(ctx, msg, block)
		return err
	})
	return out, err
}

// BalanceAt returns the wei balance of account at block (nil for latest).
func (e *Endpoint) BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error) {
	var out *big.Int
	err := e.guard(ctx, "eth_getBalance", func(c *ethclient.Client) error {
		var err error
		out, err = c.BalanceAt(ctx, account, block)
		return err
	})
	return out, err
}

func (e *Endpoint) guard(ctx context.Context, method string, fn func(*ethclient.Client) error) error {
	if !e.breaker.Allow() {
		return fmt.Errorf("%s %s: %w", method, redact(e.url), circuit.ErrOpen)
	}
	c, err := e.ethClient(ctx)
	if err == nil {
		err = fn(c)
	}
	if err == nil || isRevert(err) {
		if _, change := e.breaker.RecordSuccess(); change.Closed {
			e.logger.InfoContext(ctx, "rpc circuit closed", "endpoint", redact(e.url))
		}
		return err
	}
	// The caller giving up says nothing about the node.
	if errors.Is(err, context.Canceled) {
		return err
	}
	if _, change := e.breaker.RecordFailure(); change.Opened {
		e.logger.WarnContext(ctx, "rpc circuit opened", "endpoint", redact(e.url), "method", method, "error", err)
	}
	return err
}

func isRevert(err error) bool {
	return strings.Contains(err.Error(), "execution reverted")
}

// redact drops everything after the host so API keys embedded in paths or
// query strings stay out of logs and errors.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return "rpc"
	}
	host, _, _ := strings.Cut(rest, "/")
	host, _, _ = strings.Cut(host, "?")
	return scheme + "://" + host
}

// Pool hands out one Endpoint per URL.
type Pool struct {
	logger      *slog.Logger
	breakerOpts []circuit.Option

	mu        sync.Mutex
	endpoints map[string]*Endpoint
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for circuit transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithBreakerOptions configures the breaker created for each endpoint.
func WithBreakerOptions(opts ...circuit.Option) Option {
	return func(p *Pool) {
		p.breakerOpts = append(p.breakerOpts, opts...)
	}
}

// NewPool creates an empty pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		logger:    slog.Default(),
		endpoints: map[string]*Endpoint{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Endpoint returns the shared endpoint for url.
func (p *Pool) Endpoint(url string) *Endpoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.endpoints[url]; ok {
		return e
	}
	e := &Endpoint{
		url:     url,
		breaker: circuit.New(redact(url), p.breakerOpts...),
		logger:  p.logger,
	}
	p.endpoints[url] = e
	return e
}

// Close releases every dialed connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.endpoints {
		e.mu.Lock()
		if e.client != nil {
			e.client.Close()
			e.client = nil
		}
		e.mu.Unlock()
	}
}
