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

type ProjectHandler struct {
	service usecase.ProjectService
	locale  *localeResolver
	log     *zap.Logger
}

func NewProjectHandler(service usecase.ProjectService, locale *localeResolver, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		locale:  locale,
		log:     log,
	}
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Create(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "create project")
		return
	}

	utils.ResponseCreated(w, "Project created", response)
}

// List handles GET /api/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	req := request.ProjectListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
		},
		CustomerID: r.URL.Query().Get("customer_id"),
		Status:     r.URL.Query().Get("status"),
	}

	response, err := h.service.List(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list projects")
		return
	}

	utils.ResponseSuccess(w, "Projects loaded", response)
}

// GetByID handles GET /api/projects/{id}
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load project")
		return
	}

	utils.ResponseSuccess(w, "Project loaded", response)
}

// Update handles PUT /api/projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.ProjectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "update project")
		return
	}

	utils.ResponseSuccess(w, "Project updated", response)
}

// Delete handles DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete project")
		return
	}

	utils.ResponseSuccess(w, "Project deleted", nil)
}
