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

type AutomationHandler struct {
	service usecase.AutomationService
	log     *zap.Logger
}

func NewAutomationHandler(service usecase.AutomationService, log *zap.Logger) *AutomationHandler {
	return &AutomationHandler{
		service: service,
		log:     log,
	}
}

// CreateWebhook handles POST /api/webhooks
func (h *AutomationHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req request.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	webhook, err := h.service.CreateWebhook(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create webhook")
		return
	}

	utils.ResponseCreated(w, "Webhook created", webhook)
}

// ListWebhooks handles GET /api/webhooks
func (h *AutomationHandler) ListWebhooks(w http.ResponseWriter, r *http.Request) {
	webhooks, err := h.service.ListWebhooks(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list webhooks")
		return
	}

	utils.ResponseSuccess(w, "Webhooks loaded", webhooks)
}

// GetWebhook handles GET /api/webhooks/{id}
func (h *AutomationHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
	webhook, err := h.service.GetWebhook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "load webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook loaded", webhook)
}

// UpdateWebhook handles PUT /api/webhooks/{id}
func (h *AutomationHandler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	var req request.WebhookUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	webhook, err := h.service.UpdateWebhook(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook updated", webhook)
}

// DeleteWebhook handles DELETE /api/webhooks/{id}
func (h *AutomationHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWebhook(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook deleted", nil)
}

// TriggerWebhook handles POST /api/webhooks/{id}/trigger
func (h *AutomationHandler) TriggerWebhook(w http.ResponseWriter, r *http.Request) {
	var req request.WebhookTriggerRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	execution, err := h.service.TriggerWebhook(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "trigger webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook triggered", execution)
}

// ListExecutions handles GET /api/webhooks/{id}/executions
func (h *AutomationHandler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)

	executions, err := h.service.ListExecutions(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "list webhook executions")
		return
	}

	utils.ResponseSuccess(w, "Executions loaded", executions)
}

// CreateTask handles POST /api/tasks
func (h *AutomationHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduledTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	task, err := h.service.CreateTask(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create scheduled task")
		return
	}

	utils.ResponseCreated(w, "Task created", task)
}

// ListTasks handles GET /api/tasks
func (h *AutomationHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list scheduled tasks")
		return
	}

	utils.ResponseSuccess(w, "Tasks loaded", tasks)
}

// UpdateTask handles PUT /api/tasks/{id}
func (h *AutomationHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduledTaskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update scheduled task")
		return
	}

	utils.ResponseSuccess(w, "Task updated", task)
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *AutomationHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete scheduled task")
		return
	}

	utils.ResponseSuccess(w, "Task deleted", nil)
}
