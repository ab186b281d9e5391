// Package service assembles identity records. It fans out to the name,
// attestation and balance sources, degrades each failure to an empty field,
// and keeps the result in the identity cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"nameplate/internal/chains"
	"nameplate/internal/identity/metrics"
	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

const (
	DefaultTTL            = 5 * time.Minute
	DefaultSourceTimeout  = 5 * time.Second
	DefaultResolveTimeout = 10 * time.Second
)

// Registry resolves a chain id, with zero meaning the default chain.
type Registry interface {
	LookupOrDefault(chainID id.ChainID) (chains.Entry, error)
	List() []chains.Entry
}

// NameSource returns the primary name of an address, nil when it has none.
type NameSource interface {
	Resolve(ctx context.Context, addr id.Address, chainID id.ChainID) (*string, error)
}

// AvatarSource returns the avatar URL attached to a name, nil when it has none.
type AvatarSource interface {
	Resolve(ctx context.Context, name string) (*string, error)
}

// AttestationSource returns one page of attestations for a recipient.
type AttestationSource interface {
	Fetch(ctx context.Context, addr id.Address, chainID id.ChainID, opts models.GetAttestationsOptions) ([]models.Attestation, error)
}

// BalanceSource returns the native balance of an address in wei.
type BalanceSource interface {
	Balance(ctx context.Context, addr id.Address, chainID id.ChainID) (*big.Int, error)
}

// Cache stores assembled records, one per attestation schema selection. Get
// reports misses with sentinel.ErrNotFound. Invalidate drops every selection.
type Cache interface {
	Get(ctx context.Context, addr id.Address, chainID id.ChainID, schemas ...id.SchemaUID) (*models.IdentityRecord, error)
	Put(ctx context.Context, addr id.Address, chainID id.ChainID, record *models.IdentityRecord, ttl time.Duration, schemas ...id.SchemaUID) error
	Invalidate(ctx context.Context, addr id.Address, chainID id.ChainID) error
}

// Service resolves identity records for (address, chain) pairs.
type Service struct {
	registry     Registry
	names        NameSource
	avatars      AvatarSource
	attestations AttestationSource
	balances     BalanceSource
	cache        Cache

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	ttl            time.Duration
	sourceTimeout  time.Duration
	resolveTimeout time.Duration

	inflight singleflight.Group
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithBalanceProvider adds the native balance to every record. Without it the
// balance stays nil and is not counted as a source.
func WithBalanceProvider(b BalanceSource) Option {
	return func(s *Service) {
		s.balances = b
	}
}

// WithTTL sets how long assembled records stay cached.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithSourceTimeout bounds each individual source call.
func WithSourceTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sourceTimeout = d
		}
	}
}

// WithResolveTimeout bounds one complete resolution, avatar included.
func WithResolveTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.resolveTimeout = d
		}
	}
}

// New creates a Service. The cache may be nil, in which case every call
// resolves from the sources.
func New(registry Registry, names NameSource, avatars AvatarSource, attestations AttestationSource, cache Cache, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, errors.New("chain registry is required")
	}
	if names == nil {
		return nil, errors.New("name source is required")
	}
	if avatars == nil {
		return nil, errors.New("avatar source is required")
	}
	if attestations == nil {
		return nil, errors.New("attestation source is required")
	}

	s := &Service{
		registry:       registry,
		names:          names,
		avatars:        avatars,
		attestations:   attestations,
		cache:          cache,
		logger:         slog.Default(),
		tracer:         otel.Tracer("nameplate/identity"),
		ttl:            DefaultTTL,
		sourceTimeout:  DefaultSourceTimeout,
		resolveTimeout: DefaultResolveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ResolveOption tunes a single ResolveIdentity call.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	fresh   bool
	schemas []id.SchemaUID
}

// WithFreshLookup skips the cache read. The fresh record still replaces the
// cached one.
func WithFreshLookup() ResolveOption {
	return func(o *resolveOptions) {
		o.fresh = true
	}
}

// WithSchemas narrows the embedded attestations to the given schemas for this
// call. Schemas the chain does not trust are ignored; no schemas means the
// chain's configured set. Each selection is cached separately.
func WithSchemas(uids ...id.SchemaUID) ResolveOption {
	return func(o *resolveOptions) {
		o.schemas = append(o.schemas, uids...)
	}
}

// Chains lists the registered chains ordered by id.
func (s *Service) Chains() []chains.Entry {
	return s.registry.List()
}

// Invalidate drops the cached records of addr on chainID, every schema
// selection included.
func (s *Service) Invalidate(ctx context.Context, addr id.Address, chainID id.ChainID) error {
	entry, err := s.registry.LookupOrDefault(chainID)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, addr, entry.ChainID); err != nil {
		return fmt.Errorf("invalidate identity: %w", err)
	}
	s.logger.InfoContext(ctx, "identity invalidated",
		"address", addr.Hex(),
		"chain_id", uint64(entry.ChainID),
	)
	return nil
}

// Attestations fetches one attestation page directly, bypassing the cache.
func (s *Service) Attestations(ctx context.Context, addr id.Address, chainID id.ChainID, opts models.GetAttestationsOptions) ([]models.Attestation, error) {
	entry, err := s.registry.LookupOrDefault(chainID)
	if err != nil {
		return nil, err
	}
	var out []models.Attestation
	err = s.call(ctx, models.SourceAttestations, addr, entry.ChainID, func(ctx context.Context) error {
		var err error
		out, err = s.attestations.Fetch(ctx, addr, entry.ChainID, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Attestation{}
	}
	return out, nil
}
