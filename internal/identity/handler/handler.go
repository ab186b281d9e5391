package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nameplate/internal/chains"
	"nameplate/internal/identity/models"
	"nameplate/internal/identity/service"
	id "nameplate/pkg/domain"
	dErrors "nameplate/pkg/domain-errors"
	"nameplate/pkg/platform/httputil"
	"nameplate/pkg/requestcontext"
)

// Service defines the identity operations exposed over HTTP.
type Service interface {
	ResolveIdentity(ctx context.Context, addr id.Address, chainID id.ChainID, opts ...service.ResolveOption) (*models.IdentityRecord, error)
	Invalidate(ctx context.Context, addr id.Address, chainID id.ChainID) error
	Attestations(ctx context.Context, addr id.Address, chainID id.ChainID, opts models.GetAttestationsOptions) ([]models.Attestation, error)
	Chains() []chains.Entry
}

// Handler wires identity endpoints to the identity service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identity handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts identity endpoints under /v1.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/chains", h.HandleListChains)
		r.Get("/identities/{address}", h.HandleGetIdentity)
		r.Delete("/identities/{address}", h.HandleInvalidateIdentity)
		r.Get("/attestations/{address}", h.HandleListAttestations)
	})
}

// HandleListChains handles GET /v1/chains.
func (h *Handler) HandleListChains(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromChains(h.service.Chains()))
}

// HandleGetIdentity handles GET /v1/identities/{address}.
func (h *Handler) HandleGetIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := ParseIdentityRequest(chi.URLParam(r, "address"), r.URL.Query())
	if err != nil {
		h.rejected(ctx, requestID, err)
		httputil.WriteError(w, err)
		return
	}

	var opts []service.ResolveOption
	if req.Fresh {
		opts = append(opts, service.WithFreshLookup())
	}
	if len(req.Schemas) > 0 {
		opts = append(opts, service.WithSchemas(req.Schemas...))
	}
	rec, err := h.service.ResolveIdentity(ctx, req.Address, req.ChainID, opts...)
	if err != nil {
		h.failed(ctx, requestID, "identity resolution failed", req.Address, err)
		httputil.WriteError(w, models.ToDomainError(err))
		return
	}

	h.logger.InfoContext(ctx, "identity resolved",
		"request_id", requestID,
		"address", rec.Address.Hex(),
		"chain_id", uint64(rec.ChainID),
		"has_name", rec.Name != nil,
		"attestations", len(rec.Attestations),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleInvalidateIdentity handles DELETE /v1/identities/{address}.
func (h *Handler) HandleInvalidateIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := ParseIdentityRequest(chi.URLParam(r, "address"), r.URL.Query())
	if err != nil {
		h.rejected(ctx, requestID, err)
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Invalidate(ctx, req.Address, req.ChainID); err != nil {
		h.failed(ctx, requestID, "identity invalidation failed", req.Address, err)
		httputil.WriteError(w, models.ToDomainError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListAttestations handles GET /v1/attestations/{address}.
func (h *Handler) HandleListAttestations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := ParseAttestationsRequest(chi.URLParam(r, "address"), r.URL.Query())
	if err != nil {
		h.rejected(ctx, requestID, err)
		httputil.WriteError(w, err)
		return
	}

	atts, err := h.service.Attestations(ctx, req.Address, req.ChainID, req.Options)
	if err != nil {
		h.failed(ctx, requestID, "attestation fetch failed", req.Address, err)
		httputil.WriteError(w, models.ToDomainError(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAttestations(atts))
}

func (h *Handler) rejected(ctx context.Context, requestID string, err error) {
	h.logger.WarnContext(ctx, "invalid identity request",
		"request_id", requestID,
		"error", err,
	)
}

func (h *Handler) failed(ctx context.Context, requestID, msg string, addr id.Address, err error) {
	level := slog.LevelError
	if dErrors.HasCode(models.ToDomainError(err), dErrors.CodeChainNotRegistered) {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"address", addr.Hex(),
		"category", string(models.CategoryOf(err)),
		"error", err,
	)
}
