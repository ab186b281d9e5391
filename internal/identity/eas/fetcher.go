// Package eas fetches attestations for an address from the Ethereum
// Attestation Service GraphQL indexer of a chain.
package eas

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"nameplate/internal/chains"
	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	"nameplate/pkg/requestcontext"
)

const attestationsQuery = `query AttestationsForRecipient(
  $where: AttestationWhereInput
  $orderBy: [AttestationOrderByWithRelationInput!]
  $take: Int
  $skip: Int
) {
  attestations(where: $where, orderBy: $orderBy, take: $take, skip: $skip) {
    id
    attester
    recipient
    schemaId
    decodedDataJson
    time
    expirationTime
    revocationTime
    revoked
  }
}`

// ChainLookup is the subset of the chain registry the fetcher reads.
type ChainLookup interface {
	Lookup(chainID id.ChainID) (chains.Entry, error)
}

// Querier posts one GraphQL query.
type Querier interface {
	Query(ctx context.Context, endpoint, query string, variables map[string]any, out any) error
}

type rawAttestation struct {
	ID              string `json:"id"`
	Attester        string `json:"attester"`
	Recipient       string `json:"recipient"`
	SchemaID        string `json:"schemaId"`
	DecodedDataJSON string `json:"decodedDataJson"`
	Time            int64  `json:"time"`
	ExpirationTime  int64  `json:"expirationTime"`
	RevocationTime  int64  `json:"revocationTime"`
	Revoked         bool   `json:"revoked"`
}

type attestationsData struct {
	Attestations []rawAttestation `json:"attestations"`
}

// Fetcher implements the attestation source.
type Fetcher struct {
	chains  ChainLookup
	querier Querier
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTimeout bounds each query.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// New wires a Fetcher.
func New(chainLookup ChainLookup, querier Querier, opts ...Option) (*Fetcher, error) {
	if chainLookup == nil {
		return nil, errors.New("chain lookup is required")
	}
	if querier == nil {
		return nil, errors.New("graphql querier is required")
	}
	f := &Fetcher{
		chains:  chainLookup,
		querier: querier,
		timeout: 5 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch returns one page of attestations received by addr on chainID, most
// recent first. Only schemas trusted for the chain are ever returned; absence
// is an empty slice, never nil.
func (f *Fetcher) Fetch(ctx context.Context, addr id.Address, chainID id.ChainID, opts models.GetAttestationsOptions) ([]models.Attestation, error) {
	entry, err := f.chains.Lookup(chainID)
	if err != nil {
		return nil, err
	}

	schemas := entry.SchemaUIDs.Intersect(opts.Schemas)
	if len(schemas) == 0 || entry.EASGraphQLAPI == "" {
		return []models.Attestation{}, nil
	}

	limit := opts.EffectiveLimit()
	now := requestcontext.Now(ctx)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var data attestationsData
	vars := queryVariables(addr, schemas, opts, limit)
	if err := f.querier.Query(ctx, entry.EASGraphQLAPI, attestationsQuery, vars, &data); err != nil {
		return nil, &models.AttestationFetchError{
			Category:   models.CategoryOf(err),
			ChainID:    chainID,
			Endpoint:   entry.EASGraphQLAPI,
			Underlying: err,
		}
	}

	out := make([]models.Attestation, 0, len(data.Attestations))
	for _, raw := range data.Attestations {
		a, ok := f.normalize(ctx, raw, now)
		if !ok || !entry.SchemaUIDs.Contains(a.SchemaID) {
			continue
		}
		if a.Revoked && !opts.Revoked {
			continue
		}
		if !opts.ExpirationTime.IsZero() && a.ExpiresBefore(opts.ExpirationTime) {
			continue
		}
		out = append(out, a)
	}

	slices.SortStableFunc(out, func(a, b models.Attestation) int {
		switch {
		case a.Time > b.Time:
			return -1
		case a.Time < b.Time:
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *Fetcher) normalize(ctx context.Context, raw rawAttestation, now time.Time) (models.Attestation, bool) {
	attester, err := id.ParseAddress(raw.Attester)
	if err != nil {
		f.logger.DebugContext(ctx, "dropping attestation with bad attester", "attestation_id", raw.ID, "error", err)
		return models.Attestation{}, false
	}
	recipient, err := id.ParseAddress(raw.Recipient)
	if err != nil {
		f.logger.DebugContext(ctx, "dropping attestation with bad recipient", "attestation_id", raw.ID, "error", err)
		return models.Attestation{}, false
	}
	schema, err := id.ParseSchemaUID(raw.SchemaID)
	if err != nil {
		f.logger.DebugContext(ctx, "dropping attestation with bad schema", "attestation_id", raw.ID, "error", err)
		return models.Attestation{}, false
	}
	a := models.Attestation{
		ID:              raw.ID,
		Attester:        attester,
		Recipient:       recipient,
		SchemaID:        schema,
		DecodedDataJSON: raw.DecodedDataJSON,
		Time:            raw.Time,
		ExpirationTime:  raw.ExpirationTime,
		RevocationTime:  raw.RevocationTime,
		Revoked:         raw.Revoked,
	}
	a.Revoked = a.IsRevokedAt(now)
	return a, true
}

func queryVariables(addr id.Address, schemas []id.SchemaUID, opts models.GetAttestationsOptions, limit int) map[string]any {
	schemaIDs := make([]string, len(schemas))
	for i, s := range schemas {
		schemaIDs[i] = s.String()
	}
	where := map[string]any{
		"recipient": map[string]any{"equals": addr.Hex()},
		"schemaId":  map[string]any{"in": schemaIDs},
	}
	if !opts.Revoked {
		where["revoked"] = map[string]any{"equals": false}
	}
	if !opts.ExpirationTime.IsZero() {
		where = map[string]any{
			"AND": []any{
				where,
				map[string]any{"OR": []any{
					map[string]any{"expirationTime": map[string]any{"equals": 0}},
					map[string]any{"expirationTime": map[string]any{"gte": opts.ExpirationTime.Unix()}},
				}},
			},
		}
	}
	return map[string]any{
		"where":   where,
		"orderBy": []any{map[string]any{"time": "desc"}},
		"take":    limit,
		"skip":    max(opts.Skip, 0),
	}
}
