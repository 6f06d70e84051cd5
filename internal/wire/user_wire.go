package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Every authenticated user manages their own settings.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Get("/api/me/settings", userHandler.GetSettings)
		r.Put("/api/me/settings", userHandler.UpdateSettings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Deactivate)
	})
}
