package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProject(
	r chi.Router,
	projectHandler *adaptor.ProjectHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/projects", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Post("/", projectHandler.Create)
		r.Get("/", projectHandler.List)
		r.Get("/{id}", projectHandler.GetByID)
		r.Put("/{id}", projectHandler.Update)
		r.Delete("/{id}", projectHandler.Delete)
	})
}
