package adaptor

import (
	"net/http"

	"rising-bms/internal/usecase"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	locale  *localeResolver
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, locale *localeResolver, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		locale:  locale,
		log:     log,
	}
}

// Overview handles GET /api/dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	lang := h.locale.language(r)

	overview, err := h.service.Overview(r.Context(), lang)
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard overview")
		return
	}

	utils.ResponseSuccess(w, "Dashboard loaded", overview)
}

// Alerts handles GET /api/dashboard/alerts
func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	lang := h.locale.language(r)

	alerts, err := h.service.Alerts(r.Context(), lang)
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard alerts")
		return
	}

	utils.ResponseSuccess(w, "Alerts loaded", alerts)
}

// InvalidateCache handles POST /api/dashboard/cache/invalidate
func (h *DashboardHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	h.log.Info("dashboard cache invalidated")
	utils.ResponseSuccess(w, "Cache invalidated", nil)
}
