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

type AppointmentHandler struct {
	service usecase.AppointmentService
	locale  *localeResolver
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.AppointmentService, locale *localeResolver, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		locale:  locale,
		log:     log,
	}
}

// Create handles POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AppointmentRequest
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
		handleServiceError(w, h.log, err, "create appointment")
		return
	}

	utils.ResponseCreated(w, "Appointment created", response)
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	req := appointmentListFromQuery(r)

	response, err := h.service.List(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list appointments")
		return
	}

	utils.ResponseSuccess(w, "Appointments loaded", response)
}

// GetByID handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.GetByID(r.Context(), id, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment loaded", response)
}

// Update handles PUT /api/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.AppointmentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), id, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "update appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment updated", response)
}

// Cancel handles POST /api/appointments/{id}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.AppointmentCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Cancel(r.Context(), id, &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment cancelled", response)
}

// Complete handles POST /api/appointments/{id}/complete
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	response, err := h.service.Complete(r.Context(), id, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "complete appointment")
		return
	}

	utils.ResponseSuccess(w, "Appointment completed", response)
}

// Today handles GET /api/appointments/today
func (h *AppointmentHandler) Today(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Today(r.Context(), h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load today's appointments")
		return
	}

	utils.ResponseSuccess(w, "Today's appointments loaded", response)
}

// Upcoming handles GET /api/appointments/upcoming
func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := utils.ParseInt(r.URL.Query().Get("days"), 7)

	response, err := h.service.Upcoming(r.Context(), days, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "load upcoming appointments")
		return
	}

	utils.ResponseSuccess(w, "Upcoming appointments loaded", response)
}

// Stats handles GET /api/appointments/stats
func (h *AppointmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load appointment stats")
		return
	}

	utils.ResponseSuccess(w, "Appointment stats loaded", response)
}

// Export handles GET /api/appointments/export
func (h *AppointmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := appointmentListFromQuery(r)

	data, err := h.service.ExportXLSX(r.Context(), &req, h.locale.language(r))
	if err != nil {
		handleServiceError(w, h.log, err, "export appointments")
		return
	}

	filename := fmt.Sprintf("termine_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func appointmentListFromQuery(r *http.Request) request.AppointmentListRequest {
	return request.AppointmentListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 20),
		},
		CustomerID: r.URL.Query().Get("customer_id"),
		ProjectID:  r.URL.Query().Get("project_id"),
		Status:     r.URL.Query().Get("status"),
		Upcoming:   r.URL.Query().Get("upcoming") == "true",
	}
}
