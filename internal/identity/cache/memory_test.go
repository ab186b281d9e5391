package cache

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/platform/sentinel"
)

var (
	vitalik = id.MustAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	other   = id.MustAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	verifiedAccount = id.MustSchemaUID("0xf8b05c79f090979bf4a80270aba232dff11a10d9ca55c4f88de95317970f0de9")
	verifiedCountry = id.MustSchemaUID("0x1801901fabd0e6189356b4fb52bb0ab855276d84f7ec140839fbd1f6801ca065")
)

func record(name string) *models.IdentityRecord {
	return &models.IdentityRecord{
		Address: vitalik,
		ChainID: 1,
		Name:    &name,
		Balance: big.NewInt(7),
		Attestations: []models.Attestation{
			{ID: "0x03", Time: 300},
			{ID: "0x01", Time: 100},
		},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemory_GetPut(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(10, time.Hour, WithClock(c.now))

	_, err := m.Get(ctx, vitalik, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, m.Put(ctx, vitalik, 1, record("vitalik.eth"), time.Minute))

	got, err := m.Get(ctx, vitalik, 1)
	require.NoError(t, err)
	assert.Equal(t, "vitalik.eth", *got.Name)
	assert.Equal(t, []string{"0x03", "0x01"}, []string{got.Attestations[0].ID, got.Attestations[1].ID}, "order survives caching")

	t.Run("scoped per chain", func(t *testing.T) {
		_, err := m.Get(ctx, vitalik, 8453)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("scoped per address", func(t *testing.T) {
		_, err := m.Get(ctx, other, 1)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, m.Put(ctx, vitalik, 1, record("second.eth"), time.Minute))
		got, err := m.Get(ctx, vitalik, 1)
		require.NoError(t, err)
		assert.Equal(t, "second.eth", *got.Name)
	})
}

func TestMemory_DefensiveCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, time.Hour)

	in := record("vitalik.eth")
	require.NoError(t, m.Put(ctx, vitalik, 1, in, time.Minute))
	*in.Name = "mutated-after-put"

	got, err := m.Get(ctx, vitalik, 1)
	require.NoError(t, err)
	got.Attestations[0].ID = "mutated-after-get"
	got.Balance.SetInt64(0)

	again, err := m.Get(ctx, vitalik, 1)
	require.NoError(t, err)
	assert.Equal(t, "vitalik.eth", *again.Name)
	assert.Equal(t, "0x03", again.Attestations[0].ID)
	assert.Equal(t, int64(7), again.Balance.Int64())
}

func TestMemory_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(10, time.Hour, WithClock(c.now))

	require.NoError(t, m.Put(ctx, vitalik, 1, record("vitalik.eth"), time.Minute))

	c.t = c.t.Add(59 * time.Second)
	_, err := m.Get(ctx, vitalik, 1)
	require.NoError(t, err)

	c.t = c.t.Add(time.Second)
	_, err = m.Get(ctx, vitalik, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.ErrorIs(t, err, sentinel.ErrExpired)
	assert.Zero(t, m.Len(), "expired read evicts")
}

func TestMemory_TTLClampedToMax(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	m := NewMemory(10, time.Minute, WithClock(c.now))

	require.NoError(t, m.Put(ctx, vitalik, 1, record("vitalik.eth"), 24*time.Hour))
	c.t = c.t.Add(2 * time.Minute)
	_, err := m.Get(ctx, vitalik, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemory_CapacityAndInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(1, time.Hour)

	require.NoError(t, m.Put(ctx, vitalik, 1, record("a.eth"), time.Minute))
	require.NoError(t, m.Put(ctx, other, 1, record("b.eth"), time.Minute))
	assert.Equal(t, 1, m.Len())
	_, err := m.Get(ctx, vitalik, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "least recently used entry evicted")

	require.NoError(t, m.Invalidate(ctx, other, 1))
	_, err = m.Get(ctx, other, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NoError(t, m.Invalidate(ctx, other, 1), "invalidating a missing key is fine")
}

func TestMemory_IgnoresNilAndNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, time.Hour)
	require.NoError(t, m.Put(ctx, vitalik, 1, nil, time.Minute))
	require.NoError(t, m.Put(ctx, vitalik, 1, record("x.eth"), 0))
	assert.Zero(t, m.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "identity/8453/0xd8da6bf26964af9d7eed9e03e53415d37aa96045", Key(vitalik, 8453))
	assert.Equal(t, "identity/8453/0xd8da6bf26964af9d7eed9e03e53415d37aa96045/"+string(verifiedAccount), Key(vitalik, 8453, verifiedAccount))
	assert.Equal(t, Key(vitalik, 8453, verifiedAccount, verifiedCountry), Key(vitalik, 8453, verifiedCountry, verifiedAccount))
}

func TestMemory_SchemaSelections(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10, time.Hour)

	require.NoError(t, m.Put(ctx, vitalik, 1, record("all"), time.Minute))
	require.NoError(t, m.Put(ctx, vitalik, 1, record("account only"), time.Minute, verifiedAccount))

	got, err := m.Get(ctx, vitalik, 1)
	require.NoError(t, err)
	assert.Equal(t, "all", *got.Name)

	got, err = m.Get(ctx, vitalik, 1, verifiedAccount)
	require.NoError(t, err)
	assert.Equal(t, "account only", *got.Name)

	_, err = m.Get(ctx, vitalik, 1, verifiedCountry)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "another selection is a separate entry")

	require.NoError(t, m.Put(ctx, other, 1, record("other"), time.Minute, verifiedAccount))
	require.NoError(t, m.Invalidate(ctx, vitalik, 1))
	_, err = m.Get(ctx, vitalik, 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = m.Get(ctx, vitalik, 1, verifiedAccount)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "invalidation drops every selection")
	assert.Equal(t, 1, m.Len(), "other addresses are untouched")
}
