package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/platform/sentinel"
)

// Tiered keeps a Memory cache in front of a shared Redis tier. Remote hits
// are copied into memory for their remaining lifetime. A Redis outage
// degrades to memory-only caching.
type Tiered struct {
	local  *Memory
	remote *Redis
	logger *slog.Logger
}

// NewTiered combines both tiers.
func NewTiered(local *Memory, remote *Redis, logger *slog.Logger) *Tiered {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tiered{local: local, remote: remote, logger: logger}
}

func (t *Tiered) Get(ctx context.Context, addr id.Address, chainID id.ChainID, schemas ...id.SchemaUID) (*models.IdentityRecord, error) {
	key := Key(addr, chainID, schemas...)
	if rec, _, err := t.local.get(key); err == nil {
		return rec, nil
	}

	rec, expiresAt, err := t.remote.get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			t.logger.WarnContext(ctx, "remote identity cache unavailable", "error", err)
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	if remaining := expiresAt.Sub(t.local.now()); remaining > 0 {
		t.local.put(key, rec, remaining)
	}
	return rec, nil
}

func (t *Tiered) Put(ctx context.Context, addr id.Address, chainID id.ChainID, record *models.IdentityRecord, ttl time.Duration, schemas ...id.SchemaUID) error {
	t.local.put(Key(addr, chainID, schemas...), record, ttl)
	return t.remote.Put(ctx, addr, chainID, record, ttl, schemas...)
}

func (t *Tiered) Invalidate(ctx context.Context, addr id.Address, chainID id.ChainID) error {
	t.local.remove(addr, chainID)
	return t.remote.Invalidate(ctx, addr, chainID)
}
