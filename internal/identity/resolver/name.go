package resolver

import (
	"context"
	"errors"
	"time"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

// NameResolver resolves an address to its primary name on a chain.
type NameResolver struct {
	registry ChainRegistry
	backends Backends
	options
}

// NewNameResolver wires a NameResolver.
func NewNameResolver(registry ChainRegistry, backends Backends, opts ...Option) (*NameResolver, error) {
	if registry == nil {
		return nil, errors.New("chain registry is required")
	}
	if backends == nil {
		return nil, errors.New("backends are required")
	}
	return &NameResolver{registry: registry, backends: backends, options: buildOptions(opts)}, nil
}

// Resolve returns the primary name of addr, or nil when the name service has
// none. An unknown chain yields the registry's ConfigError; every backend
// failure, including the timeout, yields a ResolutionError.
func (r *NameResolver) Resolve(ctx context.Context, addr id.Address, chainID id.ChainID) (*string, error) {
	ns, err := r.registry.NameServiceFor(chainID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	name, err := r.backends.NameService(ns).Name(ctx, addr)
	if err != nil {
		rerr := models.NewResolutionError(models.SourceName, chainID, err)
		r.logger.DebugContext(ctx, "name lookup failed",
			"address", addr.Hex(),
			"chain_id", uint64(chainID),
			"name_service_chain_id", uint64(ns.ChainID),
			"category", rerr.Category,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, rerr
	}
	if name == "" {
		return nil, nil
	}
	return &name, nil
}
