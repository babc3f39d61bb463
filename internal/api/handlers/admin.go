package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/api/middleware"
	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

// AdminHandler serves the administrative surface: catalog writes and the
// application review queue. Routes mounting it must require at least the
// admin role.
type AdminHandler struct {
	BaseHandler
	spotService        *service.SpotService
	applicationService *service.ApplicationService
}

func NewAdminHandler(spotService *service.SpotService, applicationService *service.ApplicationService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        BaseHandler{Logger: logger},
		spotService:        spotService,
		applicationService: applicationService,
	}
}

type CreateSpotRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Tags        []string `json:"tags"`
	Duration    string   `json:"duration"`
	MaxCapacity int      `json:"maxCapacity"`
	Featured    bool     `json:"featured"`
}

// CreateSpot handles POST /admin/spots.
func (h *AdminHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateSpotRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	spot, err := h.spotService.Create(r.Context(), identity, service.CreateSpotInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Price:       req.Price,
		Images:      req.Images,
		Amenities:   req.Amenities,
		Tags:        req.Tags,
		Duration:    req.Duration,
		MaxCapacity: req.MaxCapacity,
		Featured:    req.Featured,
	})
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, spot)
}

type ApplicationListResponse struct {
	Applications []*domain.Application `json:"applications"`
	Count        int                   `json:"count"`
}

// ListApplications handles GET /admin/applications with an optional status
// filter.
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	var status *domain.ApplicationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.ApplicationStatus(raw)
		status = &s
	}

	applications, err := h.applicationService.ListAll(r.Context(), status)
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, ApplicationListResponse{
		Applications: applications,
		Count:        len(applications),
	})
}

type UpdateApplicationRequest struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus handles PATCH /admin/applications/{id}, moving a
// pending application to accepted or rejected.
func (h *AdminHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, domain.ErrApplicationNotFound)
		return
	}

	var req UpdateApplicationRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	application, err := h.applicationService.Transition(r.Context(), id, domain.ApplicationStatus(req.Status))
	if err != nil {
		h.RespondServiceError(w, r, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, application)
}
