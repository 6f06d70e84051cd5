package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(
	r chi.Router,
	dashboardHandler *adaptor.DashboardHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		// ==================== PROTECTED ROUTES ====================
		r.Get("/", dashboardHandler.Overview)
		r.Get("/alerts", dashboardHandler.Alerts)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin(log))

			r.Post("/cache/invalidate", dashboardHandler.InvalidateCache)
		})
	})
}
