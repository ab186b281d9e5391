package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"nameplate/internal/chains"
	"nameplate/internal/identity/cache"
	"nameplate/internal/identity/eas"
	identitymetrics "nameplate/internal/identity/metrics"
	"nameplate/internal/identity/resolver"
	"nameplate/internal/identity/service"
	"nameplate/internal/platform/config"
	"nameplate/internal/platform/ethrpc"
	redisclient "nameplate/internal/platform/redis"
	id "nameplate/pkg/domain"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg      config.Server
	logger   *slog.Logger
	registry *chains.Registry
	pool     *ethrpc.Pool
	redis    *redisclient.Client
	service  *service.Service
}

type appOptions struct {
	withBalance bool
	// useRedis attaches the shared cache tier when REDIS_URL is set.
	useRedis   bool
	registerer prometheus.Registerer
}

func loadConfig() (config.Server, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Server{}, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Server{}, err
	}
	if chainsDirFlag != "" {
		cfg.ChainsDir = chainsDirFlag
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg config.Server, logger *slog.Logger, opts appOptions) (*app, error) {
	registry, err := chains.Load(chains.LoadOptions{
		DefaultChainID: id.ChainID(cfg.DefaultChainID),
		Dir:            cfg.ChainsDir,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load chains: %w", err)
	}

	pool := ethrpc.NewPool(ethrpc.WithLogger(logger))
	backends := resolver.RPCBackends{Pool: pool}
	resolverOpts := []resolver.Option{resolver.WithTimeout(cfg.SourceTimeout), resolver.WithLogger(logger)}

	names, err := resolver.NewNameResolver(registry, backends, resolverOpts...)
	if err != nil {
		return nil, err
	}
	avatars, err := resolver.NewAvatarResolver(registry, backends, cfg.IPFSGateway, resolverOpts...)
	if err != nil {
		return nil, err
	}

	easClient := eas.NewClient(
		eas.WithRateLimit(cfg.EASRequestsPerSecond),
		eas.WithClientLogger(logger),
	)
	fetcher, err := eas.New(registry, easClient, eas.WithLogger(logger), eas.WithTimeout(cfg.SourceTimeout))
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, registry: registry, pool: pool}

	var identityCache service.Cache = cache.NewMemory(cfg.CacheCapacity, cfg.CacheTTL)
	if opts.useRedis {
		rc, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if rc != nil {
			a.redis = rc
			identityCache = cache.NewTiered(cache.NewMemory(cfg.CacheCapacity, cfg.CacheTTL), cache.NewRedis(rc.Client), logger)
			logger.InfoContext(ctx, "redis identity cache enabled")
		}
	}

	svcOpts := []service.Option{
		service.WithLogger(logger),
		service.WithTTL(cfg.CacheTTL),
		service.WithSourceTimeout(cfg.SourceTimeout),
		service.WithResolveTimeout(cfg.ResolveTimeout),
	}
	if opts.registerer != nil {
		svcOpts = append(svcOpts, service.WithMetrics(identitymetrics.New(opts.registerer)))
	}
	if opts.withBalance {
		balances, err := resolver.NewBalanceProvider(registry, backends, resolverOpts...)
		if err != nil {
			a.Close()
			return nil, err
		}
		svcOpts = append(svcOpts, service.WithBalanceProvider(balances))
	}

	a.service, err = service.New(registry, names, avatars, fetcher, identityCache, svcOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() {
	a.pool.Close()
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
