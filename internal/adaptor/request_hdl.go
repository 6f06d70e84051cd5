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

type RequestHandler struct {
	service usecase.RequestService
	locale  *localeResolver
	log     *zap.Logger
}

func NewRequestHandler(service usecase.RequestService, locale *localeResolver, log *zap.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		locale:  locale,
		log:     log,
	}
}

// Create handles POST /api/requests. This is the public contact form
// endpoint, no auth required.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequestCreate
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
		handleServiceError(w, h.log, err, "submit request")
		return
	}

	utils.ResponseCreated(w, "Request submitted", response)
}

// List handles GET /api/requests
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	req := request.ContactRequestList{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
		},
		Status:     r.URL.Query().Get("status"),
		Priority:   r.URL.Query().Get("priority"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Unassigned: r.URL.Query().Get("unassigned") == "true",
	}

	response, err := h.service.List(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list requests")
		return
	}

	utils.ResponseSuccess(w, "Requests loaded", response)
}

// GetByID handles GET /api/requests/{id}
func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load request")
		return
	}

	utils.ResponseSuccess(w, "Request loaded", response)
}

// Update handles PUT /api/requests/{id}
func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.ContactRequestUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "update request")
		return
	}

	utils.ResponseSuccess(w, "Request updated", response)
}

// Assign handles POST /api/requests/{id}/assign
func (h *RequestHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.ContactRequestAssign
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Assign(r.Context(), id, userID, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "assign request")
		return
	}

	utils.ResponseSuccess(w, "Request assigned", response)
}

// ChangeStatus handles POST /api/requests/{id}/status
func (h *RequestHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.ContactRequestStatusChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.ChangeStatus(r.Context(), id, userID, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "change request status")
		return
	}

	utils.ResponseSuccess(w, "Request status changed", response)
}

// AddNote handles POST /api/requests/{id}/notes
func (h *RequestHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.ContactRequestNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.AddNote(r.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add request note")
		return
	}

	utils.ResponseCreated(w, "Note added", response)
}

// ListNotes handles GET /api/requests/{id}/notes
func (h *RequestHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.ListNotes(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "list request notes")
		return
	}

	utils.ResponseSuccess(w, "Notes loaded", response)
}

// Convert handles POST /api/requests/{id}/convert
func (h *RequestHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.ContactRequestConvert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Convert(r.Context(), id, userID, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "convert request")
		return
	}

	utils.ResponseCreated(w, "Request converted to appointment", response)
}

// Stats handles GET /api/requests/stats
func (h *RequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load request stats")
		return
	}

	utils.ResponseSuccess(w, "Request stats loaded", response)
}
