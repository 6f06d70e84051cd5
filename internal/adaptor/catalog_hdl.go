package adaptor

import (
	"encoding/json"
	"net/http"

	"rising-bms/internal/dto/request"
	"rising-bms/internal/usecase"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler exposes the offered-services catalog.
type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/services (admin only)
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", response)
}

// List handles GET /api/services
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 20)
	activeOnly := r.URL.Query().Get("active") != "false"

	response, err := h.service.List(r.Context(), activeOnly, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services loaded", response)
}

// GetByID handles GET /api/services/{id}
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "load service")
		return
	}

	utils.ResponseSuccess(w, "Service loaded", response)
}

// Update handles PUT /api/services/{id} (admin only)
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.ServiceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", response)
}

// Delete handles DELETE /api/services/{id} (admin only)
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deleted", nil)
}
