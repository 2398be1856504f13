// Package handler exposes pre-registration screening and the duplicate review
// queue over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"accreditation/internal/duplicate"
	participant "accreditation/internal/participant/models"
	"accreditation/internal/screening/models"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/platform/httputil"
	"accreditation/pkg/requestcontext"
)

// Service is satisfied by the screening service.
type Service interface {
	PreRegistrationChecks(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (*models.Result, error)
	ListDuplicateCandidates(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/tenants/{tenantID}/events/{eventID}/screenings", h.HandleScreen)
	r.Get("/tenants/{tenantID}/events/{eventID}/duplicate-candidates", h.HandleListCandidates)
}

// HandleScreen runs pre-registration checks. Allowed and blocked outcomes are
// both 200; storage failures surface as 503 or 504 so callers can retry.
func (h *Handler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, eventID, ok := h.scope(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ScreeningRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}
	snap, err := req.ToSnapshot()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.PreRegistrationChecks(ctx, tenantID, eventID, snap)
	if err != nil {
		h.logger.ErrorContext(ctx, "screening failed",
			"error", err,
			"request_id", requestID,
			"tenant_id", tenantID.String(),
			"event_id", eventID.String(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toScreeningResponse(result))
}

// HandleListCandidates returns the event's review queue, one row per pair.
func (h *Handler) HandleListCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, eventID, ok := h.scope(w, r)
	if !ok {
		return
	}
	rows, err := h.service.ListDuplicateCandidates(ctx, tenantID, eventID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list duplicate candidates failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
			"tenant_id", tenantID.String(),
			"event_id", eventID.String(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toReviewQueueResponse(rows))
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (id.TenantID, id.EventID, bool) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return id.TenantID{}, id.EventID{}, false
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid event id"))
		return id.TenantID{}, id.EventID{}, false
	}
	return tenantID, eventID, true
}
