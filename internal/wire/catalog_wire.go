package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The services catalog is shown on the public website.
	r.Get("/api/services", catalogHandler.List)
	r.Get("/api/services/{id}", catalogHandler.GetByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/services", catalogHandler.Create)
		r.Put("/api/services/{id}", catalogHandler.Update)
		r.Delete("/api/services/{id}", catalogHandler.Delete)
	})
}
