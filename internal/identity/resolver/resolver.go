// Package resolver turns name service and node answers into identity
// artifacts. Each resolver makes a single attempt bounded by its timeout and
// normalizes failures into models.ResolutionError.
package resolver

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"nameplate/internal/chains"
	"nameplate/internal/identity/ens"
	"nameplate/internal/platform/ethrpc"
	id "nameplate/pkg/domain"
)

// DefaultTimeout bounds one backend call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ChainRegistry is the subset of the chain registry the resolvers read.
type ChainRegistry interface {
	Lookup(chainID id.ChainID) (chains.Entry, error)
	NameServiceFor(chainID id.ChainID) (chains.NameService, error)
	NameServiceForName(name string) (chains.NameService, error)
}

// NameLookup reads records from one name service deployment.
type NameLookup interface {
	Name(ctx context.Context, addr id.Address) (string, error)
	Text(ctx context.Context, name, key string) (string, error)
}

// BalanceReader reads native balances from one node.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
}

// Backends opens name service and balance clients for a chain.
type Backends interface {
	NameService(ns chains.NameService) NameLookup
	Balances(rpcURL string) BalanceReader
}

// RPCBackends serves both from a shared ethrpc pool.
type RPCBackends struct {
	Pool *ethrpc.Pool
}

func (b RPCBackends) NameService(ns chains.NameService) NameLookup {
	return ens.NewClient(b.Pool.Endpoint(ns.RPCURL), ns.NameServiceConfig)
}

func (b RPCBackends) Balances(rpcURL string) BalanceReader {
	return b.Pool.Endpoint(rpcURL)
}

// Option configures the resolvers in this package.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
