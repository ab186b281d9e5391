package models

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "nameplate/pkg/domain"
	dErrors "nameplate/pkg/domain-errors"
)

var vitalik = id.MustAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")

func strPtr(s string) *string { return &s }

func TestIdentityRecord_DisplayName(t *testing.T) {
	rec := &IdentityRecord{Address: vitalik}
	assert.Equal(t, "0xd8d...6045", rec.DisplayName())

	rec.Name = strPtr("vitalik.eth")
	assert.Equal(t, "vitalik.eth", rec.DisplayName())
}

func TestIdentityRecord_CloneIsDeep(t *testing.T) {
	orig := &IdentityRecord{
		Address:      vitalik,
		ChainID:      1,
		Name:         strPtr("vitalik.eth"),
		AvatarURL:    strPtr("https://example.com/a.png"),
		Balance:      big.NewInt(42),
		Attestations: []Attestation{{ID: "0x01"}, {ID: "0x02"}},
	}

	cp := orig.Clone()
	*cp.Name = "mutated"
	cp.Balance.SetInt64(0)
	cp.Attestations[0].ID = "0xff"

	assert.Equal(t, "vitalik.eth", *orig.Name)
	assert.Equal(t, int64(42), orig.Balance.Int64())
	assert.Equal(t, "0x01", orig.Attestations[0].ID)
	assert.NotNil(t, (&IdentityRecord{}).Clone().Attestations)
}

func TestAttestation_RevocationAndExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.False(t, Attestation{}.IsRevokedAt(now))
	assert.True(t, Attestation{Revoked: true}.IsRevokedAt(now))
	assert.True(t, Attestation{RevocationTime: now.Unix()}.IsRevokedAt(now))
	assert.False(t, Attestation{RevocationTime: now.Unix() + 60}.IsRevokedAt(now), "future revocation is not yet effective")

	assert.False(t, Attestation{ExpirationTime: 0}.ExpiresBefore(now), "zero means never expires")
	assert.True(t, Attestation{ExpirationTime: now.Unix() - 1}.ExpiresBefore(now))
	assert.False(t, Attestation{ExpirationTime: now.Unix()}.ExpiresBefore(now))
}

func TestGetAttestationsOptions_EffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultAttestationLimit, GetAttestationsOptions{}.EffectiveLimit())
	assert.Equal(t, 5, GetAttestationsOptions{Limit: 5}.EffectiveLimit())
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, ErrorTimeout, CategoryOf(fmt.Errorf("call: %w", context.DeadlineExceeded)))
	assert.Equal(t, ErrorProviderOutage, CategoryOf(errors.New("connection refused")))
	assert.Equal(t, ErrorBadData, CategoryOf(&ResolutionError{Category: ErrorBadData, Underlying: errors.New("x")}))
	assert.Equal(t, ErrorInternal, CategoryOf(nil))
	assert.Equal(t, ErrorBadData, CategoryOf(fmt.Errorf("decode name: %w", ErrMalformedResponse)))
	assert.Equal(t, ErrorRateLimited, CategoryOf(fmt.Errorf("%w: 429", ErrRateLimited)))
	assert.Equal(t, ErrorCircuitOpen, CategoryOf(ErrCircuitOpen))
}

func TestAggregationError(t *testing.T) {
	nameErr := NewResolutionError(SourceName, 1, context.DeadlineExceeded)
	attErr := &AttestationFetchError{Category: ErrorProviderOutage, ChainID: 1, Underlying: errors.New("502")}
	err := error(&AggregationError{
		Address: vitalik,
		ChainID: 1,
		Causes:  map[Source]error{SourceName: nameErr, SourceAttestations: attErr},
	})

	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var fe *AttestationFetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrorProviderOutage, fe.Category)

	assert.Contains(t, err.Error(), "attestations:")
	assert.Contains(t, err.Error(), "name:")
	assert.True(t, IsRetryable(err))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(&ConfigError{ChainID: 7, Err: ErrChainNotRegistered}))
	assert.False(t, IsRetryable(&ResolutionError{Category: ErrorBadData, Underlying: errors.New("x")}))
	assert.True(t, IsRetryable(&ResolutionError{Category: ErrorCircuitOpen, Underlying: errors.New("x")}))
}

func TestToDomainError(t *testing.T) {
	cfgErr := &ConfigError{ChainID: 7, Err: ErrChainNotRegistered}
	assert.True(t, dErrors.HasCode(ToDomainError(cfgErr), dErrors.CodeChainNotRegistered))
	assert.ErrorIs(t, ToDomainError(cfgErr), ErrChainNotRegistered)

	noService := ToDomainError(&ConfigError{ChainID: 7, Err: ErrNoNameService})
	assert.True(t, dErrors.HasCode(noService, dErrors.CodeInternal), "a missing name service is not an unknown chain")
	assert.ErrorIs(t, noService, ErrNoNameService)

	aggErr := &AggregationError{Address: vitalik, ChainID: 1, Causes: map[Source]error{SourceName: errors.New("boom")}}
	assert.True(t, dErrors.HasCode(ToDomainError(aggErr), dErrors.CodeUpstreamUnavailable))

	timeout := &AttestationFetchError{Category: ErrorTimeout, Underlying: context.DeadlineExceeded}
	assert.True(t, dErrors.HasCode(ToDomainError(timeout), dErrors.CodeTimeout))

	coded := dErrors.New(dErrors.CodeInvalidInput, "bad address")
	assert.Same(t, coded, ToDomainError(coded))

	assert.True(t, dErrors.HasCode(ToDomainError(errors.New("raw")), dErrors.CodeInternal))
	assert.NoError(t, ToDomainError(nil))
}
