package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"nameplate/internal/identity/metrics"
	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/platform/sentinel"
	"nameplate/pkg/requestcontext"
)

// ResolveIdentity returns the identity record of addr on chainID, where zero
// selects the default chain. Only an unregistered chain or the failure of
// every source is reported as an error; any other failure leaves its field
// empty.
//
// Concurrent calls for the same key share one resolution. That resolution is
// not tied to any single caller and is bounded by the resolve timeout; a
// caller whose context ends stops waiting without cancelling it.
func (s *Service) ResolveIdentity(ctx context.Context, addr id.Address, chainID id.ChainID, opts ...ResolveOption) (*models.IdentityRecord, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveResolveLatency(time.Since(start)) }()

	var ro resolveOptions
	for _, opt := range opts {
		opt(&ro)
	}

	entry, err := s.registry.LookupOrDefault(chainID)
	if err != nil {
		return nil, err
	}
	chainID = entry.ChainID
	chainLabel := strconv.FormatUint(uint64(chainID), 10)

	ctx, span := s.tracer.Start(ctx, "identity.ResolveIdentity", trace.WithAttributes(
		attribute.String("address", addr.Hex()),
		attribute.Int64("chain_id", int64(chainID)),
		attribute.Bool("fresh", ro.fresh),
		attribute.String("schemas", id.SchemaSelectionKey(ro.schemas)),
	))
	defer span.End()

	if !ro.fresh {
		if rec, ok := s.cached(ctx, addr, chainID, ro.schemas); ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			s.metrics.IncrementOutcome(metrics.OutcomeCached, chainLabel)
			return rec, nil
		}
	}

	key := fmt.Sprintf("%d/%s/%s", uint64(chainID), addr.Lower(), id.SchemaSelectionKey(ro.schemas))
	ch := s.inflight.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.resolveTimeout)
		defer cancel()

		rec, err := s.assemble(rctx, addr, chainID, ro.schemas)
		if err != nil {
			return nil, err
		}
		s.store(rctx, rec, ro.schemas)
		return rec, nil
	})

	select {
	case <-ctx.Done():
		span.SetStatus(codes.Error, "caller gave up")
		return nil, fmt.Errorf("resolve identity: %w", ctx.Err())
	case res := <-ch:
		if res.Shared {
			s.metrics.IncrementCoalesced()
		}
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "all sources failed")
			return nil, res.Err
		}
		rec := res.Val.(*models.IdentityRecord)
		return rec.Clone(), nil
	}
}

func (s *Service) cached(ctx context.Context, addr id.Address, chainID id.ChainID, schemas []id.SchemaUID) (*models.IdentityRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	rec, err := s.cache.Get(ctx, addr, chainID, schemas...)
	if err == nil {
		s.metrics.CacheHit()
		return rec, true
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "identity cache read failed",
			"address", addr.Hex(),
			"chain_id", uint64(chainID),
			"error", err,
		)
	}
	s.metrics.CacheMiss()
	return nil, false
}

// store writes rec through to the cache unless the resolution outlived its
// deadline, in which case the result is returned but not kept.
func (s *Service) store(ctx context.Context, rec *models.IdentityRecord, schemas []id.SchemaUID) {
	if s.cache == nil || ctx.Err() != nil {
		return
	}
	if err := s.cache.Put(ctx, rec.Address, rec.ChainID, rec, s.ttl, schemas...); err != nil {
		s.logger.WarnContext(ctx, "identity cache write failed",
			"address", rec.Address.Hex(),
			"chain_id", uint64(rec.ChainID),
			"error", err,
		)
	}
}

// assemble runs the sources and merges their answers. Goroutines never return
// errors; each records its own failure. Outcomes are counted here, once per
// computation, however many callers share it.
func (s *Service) assemble(ctx context.Context, addr id.Address, chainID id.ChainID, schemas []id.SchemaUID) (*models.IdentityRecord, error) {
	rec := &models.IdentityRecord{
		Address:      addr,
		ChainID:      chainID,
		Attestations: []models.Attestation{},
		ResolvedAt:   requestcontext.Now(ctx),
	}

	attOpts := models.GetAttestationsOptions{Schemas: schemas}

	var g errgroup.Group
	var nameErr, attErr, balErr error

	g.Go(func() error {
		nameErr = s.call(ctx, models.SourceName, addr, chainID, func(ctx context.Context) error {
			name, err := s.names.Resolve(ctx, addr, chainID)
			rec.Name = name
			return err
		})
		if nameErr != nil || rec.Name == nil || *rec.Name == "" {
			return nil
		}
		name := *rec.Name
		_ = s.call(ctx, models.SourceAvatar, addr, chainID, func(ctx context.Context) error {
			avatar, err := s.avatars.Resolve(ctx, name)
			rec.AvatarURL = avatar
			return err
		})
		return nil
	})

	g.Go(func() error {
		attErr = s.call(ctx, models.SourceAttestations, addr, chainID, func(ctx context.Context) error {
			atts, err := s.attestations.Fetch(ctx, addr, chainID, attOpts)
			if err == nil && atts != nil {
				rec.Attestations = atts
			}
			return err
		})
		return nil
	})

	if s.balances != nil {
		g.Go(func() error {
			balErr = s.call(ctx, models.SourceBalance, addr, chainID, func(ctx context.Context) error {
				bal, err := s.balances.Balance(ctx, addr, chainID)
				rec.Balance = bal
				return err
			})
			return nil
		})
	}

	_ = g.Wait()

	causes := map[models.Source]error{}
	if nameErr != nil {
		causes[models.SourceName] = nameErr
		rec.Name = nil
		rec.AvatarURL = nil
	}
	if attErr != nil {
		causes[models.SourceAttestations] = attErr
	}
	attempted := 2
	if s.balances != nil {
		attempted++
		if balErr != nil {
			causes[models.SourceBalance] = balErr
			rec.Balance = nil
		}
	}

	chainLabel := strconv.FormatUint(uint64(chainID), 10)
	switch {
	case len(causes) == attempted:
		s.metrics.IncrementOutcome(metrics.OutcomeFailed, chainLabel)
		return nil, &models.AggregationError{Address: addr, ChainID: chainID, Causes: causes}
	case len(causes) > 0:
		s.metrics.IncrementOutcome(metrics.OutcomePartial, chainLabel)
	default:
		s.metrics.IncrementOutcome(metrics.OutcomeResolved, chainLabel)
	}
	return rec, nil
}

// call runs one source under the source timeout, with its own span, latency
// metric and failure log.
func (s *Service) call(ctx context.Context, source models.Source, addr id.Address, chainID id.ChainID, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "identity.source."+string(source))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	s.metrics.ObserveSource(string(source), elapsed, err)

	if err != nil {
		category := models.CategoryOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(category))
		s.logger.WarnContext(ctx, "identity source failed",
			"source", string(source),
			"address", addr.Hex(),
			"chain_id", uint64(chainID),
			"category", string(category),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
	}
	return err
}
