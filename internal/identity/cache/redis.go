package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/platform/sentinel"
)

// redisPrefix namespaces every key this cache writes.
const redisPrefix = "nameplate/"

// storedRecord is the wire form kept in Redis. Balance is a decimal string
// because big.Int has no stable binary encoding across languages.
type storedRecord struct {
	Address      id.Address           `json:"address"`
	ChainID      id.ChainID           `json:"chain_id"`
	Name         *string              `json:"name,omitempty"`
	AvatarURL    *string              `json:"avatar_url,omitempty"`
	Balance      string               `json:"balance,omitempty"`
	Attestations []models.Attestation `json:"attestations"`
	ResolvedAt   time.Time            `json:"resolved_at"`
	ExpiresAt    time.Time            `json:"expires_at"`
}

func toStored(r *models.IdentityRecord, expiresAt time.Time) storedRecord {
	s := storedRecord{
		Address:      r.Address,
		ChainID:      r.ChainID,
		Name:         r.Name,
		AvatarURL:    r.AvatarURL,
		Attestations: r.Attestations,
		ResolvedAt:   r.ResolvedAt,
		ExpiresAt:    expiresAt,
	}
	if r.Balance != nil {
		s.Balance = r.Balance.String()
	}
	return s
}

func (s storedRecord) toRecord() (*models.IdentityRecord, error) {
	r := &models.IdentityRecord{
		Address:      s.Address,
		ChainID:      s.ChainID,
		Name:         s.Name,
		AvatarURL:    s.AvatarURL,
		Attestations: s.Attestations,
		ResolvedAt:   s.ResolvedAt,
	}
	if r.Attestations == nil {
		r.Attestations = []models.Attestation{}
	}
	if s.Balance != "" {
		bal, ok := new(big.Int).SetString(s.Balance, 10)
		if !ok {
			return nil, fmt.Errorf("cached balance %q is not a decimal integer", s.Balance)
		}
		r.Balance = bal
	}
	return r, nil
}

// Redis is a shared cache tier backed by go-redis/cache. Redis enforces the
// TTL itself; ExpiresAt travels with the value so other tiers can backfill
// with the remaining lifetime.
type Redis struct {
	client *redis.Client
	cache  *cache.Cache
	now    func() time.Time
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		cache:  cache.New(&cache.Options{Redis: client}),
		now:    time.Now,
	}
}

// Get returns the cached record or sentinel.ErrNotFound. Redis failures wrap
// sentinel.ErrUnavailable.
func (r *Redis) Get(ctx context.Context, addr id.Address, chainID id.ChainID, schemas ...id.SchemaUID) (*models.IdentityRecord, error) {
	rec, _, err := r.get(ctx, Key(addr, chainID, schemas...))
	return rec, err
}

func (r *Redis) get(ctx context.Context, key string) (*models.IdentityRecord, time.Time, error) {
	var raw []byte
	if err := r.cache.Get(ctx, redisPrefix+key, &raw); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, time.Time{}, sentinel.ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("redis cache get: %w: %w", sentinel.ErrUnavailable, err)
	}
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Unreadable entries are dropped rather than served.
		_ = r.cache.Delete(ctx, redisPrefix+key)
		return nil, time.Time{}, sentinel.ErrNotFound
	}
	if !r.now().Before(stored.ExpiresAt) {
		return nil, time.Time{}, fmt.Errorf("%w: %w", sentinel.ErrNotFound, sentinel.ErrExpired)
	}
	rec, err := stored.toRecord()
	if err != nil {
		_ = r.cache.Delete(ctx, redisPrefix+key)
		return nil, time.Time{}, sentinel.ErrNotFound
	}
	return rec, stored.ExpiresAt, nil
}

// Put writes record with ttl.
func (r *Redis) Put(ctx context.Context, addr id.Address, chainID id.ChainID, record *models.IdentityRecord, ttl time.Duration, schemas ...id.SchemaUID) error {
	if record == nil || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(toStored(record, r.now().Add(ttl)))
	if err != nil {
		return fmt.Errorf("encode cached identity: %w", err)
	}
	if err := r.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   redisPrefix + Key(addr, chainID, schemas...),
		Value: raw,
		TTL:   ttl,
	}); err != nil {
		return fmt.Errorf("redis cache set: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Invalidate deletes the entry of every schema selection. Deleting a missing
// key is not an error.
func (r *Redis) Invalidate(ctx context.Context, addr id.Address, chainID id.ChainID) error {
	base := redisPrefix + Key(addr, chainID)
	err := r.cache.Delete(ctx, base)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return fmt.Errorf("redis cache delete: %w: %w", sentinel.ErrUnavailable, err)
	}

	iter := r.client.Scan(ctx, 0, base+"/*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.cache.Delete(ctx, iter.Val()); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			return fmt.Errorf("redis cache delete: %w: %w", sentinel.ErrUnavailable, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis cache scan: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
