package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/api/middleware"
	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

type ApplicationHandler struct {
	BaseHandler
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        BaseHandler{Logger: logger},
		applicationService: applicationService,
	}
}

type SubmitRequest struct {
	SpotID string `json:"spotId"`
}

type SubmitResponse struct {
	ApplicationID string `json:"applicationId"`
}

// Submit handles POST /applications.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SubmitRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	spotID, err := uuid.Parse(req.SpotID)
	if err != nil {
		h.RespondServiceError(w, r, domain.Validationf("spotId must be a valid id"))
		return
	}

	application, err := h.applicationService.Submit(r.Context(), identity, spotID)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, SubmitResponse{ApplicationID: application.ID.String()})
}

// Mine handles GET /applications/mine.
func (h *ApplicationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.applicationService.ListForAccount(r.Context(), identity)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
