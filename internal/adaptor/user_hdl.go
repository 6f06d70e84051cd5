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

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/users (admin only)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 20)
	activeOnly := r.URL.Query().Get("active") == "true"

	response, err := h.service.List(r.Context(), activeOnly, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users loaded", response)
}

// GetByID handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "load user")
		return
	}

	utils.ResponseSuccess(w, "User loaded", response)
}

// Update handles PUT /api/users/{id} (admin only)
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated", response)
}

// Deactivate handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "deactivate user")
		return
	}

	utils.ResponseSuccess(w, "User deactivated", nil)
}

// GetSettings handles GET /api/users/me/settings
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	response, err := h.service.GetSettings(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "load settings")
		return
	}

	utils.ResponseSuccess(w, "Settings loaded", response)
}

// UpdateSettings handles PUT /api/users/me/settings
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.UserSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateSettings(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update settings")
		return
	}

	utils.ResponseSuccess(w, "Settings updated", response)
}
