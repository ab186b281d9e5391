package handler

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
	dErrors "nameplate/pkg/domain-errors"
	pstrings "nameplate/pkg/platform/strings"
)

// MaxAttestationLimit caps the page size a client may request.
const MaxAttestationLimit = 100

// IdentityRequest is the parsed form of /v1/identities/{address}.
type IdentityRequest struct {
	Address id.Address
	// ChainID zero selects the default chain.
	ChainID id.ChainID
	Fresh   bool
	// Schemas narrows the embedded attestations; empty keeps the chain's set.
	Schemas []id.SchemaUID
}

// ParseIdentityRequest validates the path address and the chain_id, fresh and
// schema query parameters.
func ParseIdentityRequest(rawAddress string, q url.Values) (IdentityRequest, error) {
	addr, chainID, err := parseTarget(rawAddress, q)
	if err != nil {
		return IdentityRequest{}, err
	}
	fresh, err := parseBool(q, "fresh")
	if err != nil {
		return IdentityRequest{}, err
	}
	schemas, err := parseSchemas(q)
	if err != nil {
		return IdentityRequest{}, err
	}
	return IdentityRequest{Address: addr, ChainID: chainID, Fresh: fresh, Schemas: schemas}, nil
}

// AttestationsRequest is the parsed form of /v1/attestations/{address}.
type AttestationsRequest struct {
	Address id.Address
	ChainID id.ChainID
	Options models.GetAttestationsOptions
}

// ParseAttestationsRequest validates the attestation filters. expiration_time
// is unix seconds.
func ParseAttestationsRequest(rawAddress string, q url.Values) (AttestationsRequest, error) {
	addr, chainID, err := parseTarget(rawAddress, q)
	if err != nil {
		return AttestationsRequest{}, err
	}
	req := AttestationsRequest{Address: addr, ChainID: chainID}

	if req.Options.Schemas, err = parseSchemas(q); err != nil {
		return AttestationsRequest{}, err
	}

	if req.Options.Revoked, err = parseBool(q, "revoked"); err != nil {
		return AttestationsRequest{}, err
	}

	if raw := q.Get("expiration_time"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || secs < 0 {
			return AttestationsRequest{}, dErrors.New(dErrors.CodeInvalidInput, "expiration_time must be unix seconds")
		}
		req.Options.ExpirationTime = time.Unix(secs, 0)
	}

	if req.Options.Limit, err = parseInt(q, "limit", 1, MaxAttestationLimit); err != nil {
		return AttestationsRequest{}, err
	}
	if req.Options.Skip, err = parseInt(q, "skip", 0, -1); err != nil {
		return AttestationsRequest{}, err
	}
	return req, nil
}

func parseTarget(rawAddress string, q url.Values) (id.Address, id.ChainID, error) {
	addr, err := id.ParseAddress(strings.TrimSpace(rawAddress))
	if err != nil {
		return id.Address{}, 0, err
	}
	var chainID id.ChainID
	if raw := q.Get("chain_id"); raw != "" {
		if chainID, err = id.ParseChainID(raw); err != nil {
			return id.Address{}, 0, err
		}
	}
	return addr, chainID, nil
}

func parseBool(q url.Values, key string) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeInvalidInput, key+" must be true or false")
	}
	return v, nil
}

// parseInt reads an optional integer in [lo, hi]; hi < 0 means unbounded.
func parseInt(q url.Values, key string, lo, hi int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi >= 0 && v > hi) {
		msg := key + " must be an integer of at least " + strconv.Itoa(lo)
		if hi >= 0 {
			msg = key + " must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)
		}
		return 0, dErrors.New(dErrors.CodeInvalidInput, msg)
	}
	return v, nil
}

// parseSchemas reads schema, which may be repeated or comma separated.
func parseSchemas(q url.Values) ([]id.SchemaUID, error) {
	var out []id.SchemaUID
	for _, raw := range pstrings.SplitList(q["schema"], ",") {
		uid, err := id.ParseSchemaUID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, nil
}
