package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/platform/sentinel"
)

type memoryEntry struct {
	record     *models.IdentityRecord
	insertedAt time.Time
	ttl        time.Duration
}

// Memory is a bounded in-process cache. Entries carry their own TTL and are
// checked on read; the LRU's own expiry at maxTTL is a backstop that reclaims
// entries nobody reads again.
type Memory struct {
	lru    *expirable.LRU[string, memoryEntry]
	maxTTL time.Duration
	now    func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates a cache holding at most capacity entries, none longer
// than maxTTL. Capacity of zero means unlimited size.
func NewMemory(capacity int, maxTTL time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		lru:    expirable.NewLRU[string, memoryEntry](capacity, nil, maxTTL),
		maxTTL: maxTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the cached record. Expired entries are evicted and
// reported as misses.
func (m *Memory) Get(_ context.Context, addr id.Address, chainID id.ChainID, schemas ...id.SchemaUID) (*models.IdentityRecord, error) {
	rec, _, err := m.get(Key(addr, chainID, schemas...))
	return rec, err
}

func (m *Memory) get(key string) (*models.IdentityRecord, time.Time, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, time.Time{}, sentinel.ErrNotFound
	}
	expiresAt := e.insertedAt.Add(e.ttl)
	if !m.now().Before(expiresAt) {
		m.lru.Remove(key)
		return nil, time.Time{}, fmt.Errorf("%w: %w", sentinel.ErrNotFound, sentinel.ErrExpired)
	}
	return e.record.Clone(), expiresAt, nil
}

// Put stores a copy of record. Last write wins.
func (m *Memory) Put(_ context.Context, addr id.Address, chainID id.ChainID, record *models.IdentityRecord, ttl time.Duration, schemas ...id.SchemaUID) error {
	m.put(Key(addr, chainID, schemas...), record, ttl)
	return nil
}

func (m *Memory) put(key string, record *models.IdentityRecord, ttl time.Duration) {
	if record == nil || ttl <= 0 {
		return
	}
	if m.maxTTL > 0 && ttl > m.maxTTL {
		ttl = m.maxTTL
	}
	m.lru.Add(key, memoryEntry{record: record.Clone(), insertedAt: m.now(), ttl: ttl})
}

// Invalidate drops every entry of addr on chainID, whatever schema selection
// it was resolved with.
func (m *Memory) Invalidate(_ context.Context, addr id.Address, chainID id.ChainID) error {
	m.remove(addr, chainID)
	return nil
}

func (m *Memory) remove(addr id.Address, chainID id.ChainID) {
	for _, key := range m.lru.Keys() {
		if sameIdentity(key, addr, chainID) {
			m.lru.Remove(key)
		}
	}
}

// Len reports the number of resident entries, expired ones included until read.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Purge empties the cache.
func (m *Memory) Purge() {
	m.lru.Purge()
}
