// Package models holds the identity record, attestation and error types shared
// by the resolvers, the aggregator, the cache and the HTTP layer.
package models

import (
	"math/big"
	"slices"
	"time"

	id "nameplate/pkg/domain"
)

// Source names one independent input to an identity record.
type Source string

const (
	SourceName         Source = "name"
	SourceAvatar       Source = "avatar"
	SourceAttestations Source = "attestations"
	SourceBalance      Source = "balance"
)

// DefaultAttestationLimit applies when GetAttestationsOptions.Limit is zero.
const DefaultAttestationLimit = 50

// IdentityRecord is the merged view of one address on one chain. Each artifact
// is independently nil when it is absent or its source failed; Attestations is
// never nil.
type IdentityRecord struct {
	Address      id.Address
	ChainID      id.ChainID
	Name         *string
	AvatarURL    *string
	Balance      *big.Int
	Attestations []Attestation
	ResolvedAt   time.Time
}

// DisplayName is the resolved name, or the sliced address when there is none.
func (r *IdentityRecord) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}
	return r.Address.Sliced()
}

// Clone returns a deep copy so cached records cannot be mutated through a
// returned pointer.
func (r *IdentityRecord) Clone() *IdentityRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Name != nil {
		name := *r.Name
		out.Name = &name
	}
	if r.AvatarURL != nil {
		avatar := *r.AvatarURL
		out.AvatarURL = &avatar
	}
	if r.Balance != nil {
		out.Balance = new(big.Int).Set(r.Balance)
	}
	out.Attestations = slices.Clone(r.Attestations)
	if out.Attestations == nil {
		out.Attestations = []Attestation{}
	}
	return &out
}

// Attestation is one EAS attestation normalized from the index. Times are unix
// seconds; ExpirationTime zero means it never expires.
type Attestation struct {
	ID              string       `json:"id"`
	Attester        id.Address   `json:"attester"`
	Recipient       id.Address   `json:"recipient"`
	SchemaID        id.SchemaUID `json:"schemaId"`
	DecodedDataJSON string       `json:"decodedDataJson"`
	Time            int64        `json:"time"`
	ExpirationTime  int64        `json:"expirationTime"`
	RevocationTime  int64        `json:"revocationTime"`
	Revoked         bool         `json:"revoked"`
}

// IsRevokedAt reports whether the attestation counts as revoked at now: either
// the index says so or its revocation time has passed.
func (a Attestation) IsRevokedAt(now time.Time) bool {
	if a.Revoked {
		return true
	}
	return a.RevocationTime != 0 && a.RevocationTime <= now.Unix()
}

// ExpiresBefore reports whether the attestation has a finite expiration
// strictly earlier than bound.
func (a Attestation) ExpiresBefore(bound time.Time) bool {
	return a.ExpirationTime != 0 && a.ExpirationTime < bound.Unix()
}

// GetAttestationsOptions filters a single attestation page.
type GetAttestationsOptions struct {
	// Schemas narrows the chain's configured schemas. Empty means all of them.
	Schemas []id.SchemaUID
	// Revoked includes revoked attestations when true.
	Revoked bool
	// ExpirationTime excludes attestations expiring before it. Zero disables the bound.
	ExpirationTime time.Time
	Limit          int
	Skip           int
}

// EffectiveLimit resolves the zero value to the default page size.
func (o GetAttestationsOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultAttestationLimit
	}
	return o.Limit
}
