package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Post("/", customerHandler.Create)
		r.Get("/", customerHandler.List)
		r.Get("/stats", customerHandler.Stats)
		r.Get("/export", customerHandler.Export)
		r.Get("/{id}", customerHandler.GetByID)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
		r.Post("/{id}/notes", customerHandler.AddNote)
		r.Get("/{id}/notes", customerHandler.ListNotes)
	})
}
