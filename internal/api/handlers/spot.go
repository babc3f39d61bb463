package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

type SpotHandler struct {
	BaseHandler
	spotService *service.SpotService
}

func NewSpotHandler(spotService *service.SpotService, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{BaseHandler: BaseHandler{Logger: logger}, spotService: spotService}
}

type SpotListResponse struct {
	Spots []*domain.Spot `json:"spots"`
	Count int            `json:"count"`
}

// List handles GET /spots with optional search and category filters.
func (h *SpotHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	spots, err := h.spotService.List(r.Context(), query.Get("search"), query.Get("category"))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, SpotListResponse{Spots: spots, Count: len(spots)})
}

// Get handles GET /spots/{id}.
func (h *SpotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, domain.ErrSpotNotFound)
		return
	}

	spot, err := h.spotService.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, spot)
}
