package handler

import (
	"time"

	"nameplate/internal/chains"
	"nameplate/internal/identity/models"
	"nameplate/internal/identity/resolver"
	id "nameplate/pkg/domain"
)

// IdentityResponse is the HTTP response for GET /v1/identities/{address}.
type IdentityResponse struct {
	Address      string                `json:"address"`
	ChainID      uint64                `json:"chain_id"`
	Name         *string               `json:"name"`
	DisplayName  string                `json:"display_name"`
	AvatarURL    *string               `json:"avatar_url"`
	BalanceWei   *string               `json:"balance_wei,omitempty"`
	BalanceEther *string               `json:"balance_ether,omitempty"`
	Attestations []AttestationResponse `json:"attestations"`
	ResolvedAt   time.Time             `json:"resolved_at"`
}

// AttestationResponse is one attestation as exposed over HTTP.
type AttestationResponse struct {
	ID              string `json:"id"`
	Attester        string `json:"attester"`
	Recipient       string `json:"recipient"`
	SchemaID        string `json:"schema_id"`
	DecodedDataJSON string `json:"decoded_data_json"`
	Time            int64  `json:"time"`
	ExpirationTime  int64  `json:"expiration_time"`
	RevocationTime  int64  `json:"revocation_time"`
	Revoked         bool   `json:"revoked"`
}

// AttestationsResponse is the HTTP response for GET /v1/attestations/{address}.
type AttestationsResponse struct {
	Attestations []AttestationResponse `json:"attestations"`
}

// ChainResponse describes one registered chain.
type ChainResponse struct {
	ChainID          uint64   `json:"chain_id"`
	Name             string   `json:"name"`
	EASGraphQLAPI    string   `json:"eas_graphql_api,omitempty"`
	SchemaUIDs       []string `json:"schema_uids"`
	ReverseNamespace string   `json:"reverse_namespace,omitempty"`
	NameSuffix       string   `json:"name_suffix,omitempty"`
}

// ChainsResponse is the HTTP response for GET /v1/chains.
type ChainsResponse struct {
	Chains []ChainResponse `json:"chains"`
}

// FromRecord converts an identity record to its HTTP form.
func FromRecord(rec *models.IdentityRecord) *IdentityResponse {
	resp := &IdentityResponse{
		Address:      rec.Address.Hex(),
		ChainID:      uint64(rec.ChainID),
		Name:         rec.Name,
		DisplayName:  rec.DisplayName(),
		AvatarURL:    rec.AvatarURL,
		Attestations: fromAttestations(rec.Attestations),
		ResolvedAt:   rec.ResolvedAt,
	}
	if rec.Balance != nil {
		wei := rec.Balance.String()
		ether := resolver.FormatEther(rec.Balance)
		resp.BalanceWei = &wei
		resp.BalanceEther = &ether
	}
	return resp
}

// FromAttestations converts one attestation page.
func FromAttestations(atts []models.Attestation) *AttestationsResponse {
	return &AttestationsResponse{Attestations: fromAttestations(atts)}
}

func fromAttestations(atts []models.Attestation) []AttestationResponse {
	out := make([]AttestationResponse, 0, len(atts))
	for _, a := range atts {
		out = append(out, AttestationResponse{
			ID:              a.ID,
			Attester:        a.Attester.Hex(),
			Recipient:       a.Recipient.Hex(),
			SchemaID:        a.SchemaID.String(),
			DecodedDataJSON: a.DecodedDataJSON,
			Time:            a.Time,
			ExpirationTime:  a.ExpirationTime,
			RevocationTime:  a.RevocationTime,
			Revoked:         a.Revoked,
		})
	}
	return out
}

// FromChains converts registry entries. RPC URLs are left out since they
// often carry API keys.
func FromChains(entries []chains.Entry) *ChainsResponse {
	out := make([]ChainResponse, 0, len(entries))
	for _, e := range entries {
		c := ChainResponse{
			ChainID:       uint64(e.ChainID),
			Name:          e.Name,
			EASGraphQLAPI: e.EASGraphQLAPI,
			SchemaUIDs:    schemaStrings(e.SchemaUIDs.Sorted()),
		}
		if e.NameService != nil {
			c.ReverseNamespace = e.NameService.ReverseNamespace
			c.NameSuffix = e.NameService.NameSuffix
		}
		out = append(out, c)
	}
	return &ChainsResponse{Chains: out}
}

func schemaStrings(uids []id.SchemaUID) []string {
	out := make([]string, 0, len(uids))
	for _, u := range uids {
		out = append(out, u.String())
	}
	return out
}
