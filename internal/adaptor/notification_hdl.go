package adaptor

import (
	"net/http"

	"rising-bms/internal/usecase"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 20)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	response, err := h.service.ListForUser(r.Context(), userID, unreadOnly, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications loaded", response)
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	response, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "load unread count")
		return
	}

	utils.ResponseSuccess(w, "Unread count loaded", response)
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked read", nil)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "mark all notifications read")
		return
	}

	utils.ResponseSuccess(w, "Notifications marked read", map[string]int64{"marked": count})
}

// Delete handles DELETE /api/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.log, err, "delete notification")
		return
	}

	utils.ResponseSuccess(w, "Notification deleted", nil)
}
