package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rising-bms/internal/dto/request"
	"rising-bms/internal/usecase"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.CustomerService
	locale  *localeResolver
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, locale *localeResolver, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		locale:  locale,
		log:     log,
	}
}

// Create handles POST /api/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
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
		handleServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created", response)
}

// List handles GET /api/customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)

	response, err := h.service.List(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "Customers loaded", response)
}

// GetByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load customer")
		return
	}

	utils.ResponseSuccess(w, "Customer loaded", response)
}

// Update handles PUT /api/customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.CustomerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Customer updated", response)
}

// Delete handles DELETE /api/customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "Customer deleted", nil)
}

// Stats handles GET /api/customers/stats
func (h *CustomerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load customer stats")
		return
	}

	utils.ResponseSuccess(w, "Customer stats loaded", response)
}

// AddNote handles POST /api/customers/{id}/notes
func (h *CustomerHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.CustomerNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.AddNote(r.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add customer note")
		return
	}

	utils.ResponseCreated(w, "Note added", response)
}

// ListNotes handles GET /api/customers/{id}/notes
func (h *CustomerHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.ListNotes(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "list customer notes")
		return
	}

	utils.ResponseSuccess(w, "Notes loaded", response)
}

// Export handles GET /api/customers/export
func (h *CustomerHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)

	data, err := h.service.ExportCSV(r.Context(), req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "export customers")
		return
	}

	filename := fmt.Sprintf("kunden_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func listRequestFromQuery(r *http.Request) request.CustomerListRequest {
	return request.CustomerListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
		},
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
}
