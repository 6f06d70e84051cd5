package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRequest(
	r chi.Router,
	requestHandler *adaptor.RequestHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/requests", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Contact form submissions come from the public website.
		r.Post("/", requestHandler.Create)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(repo, config, log))

			r.Get("/", requestHandler.List)
			r.Get("/stats", requestHandler.Stats)
			r.Get("/{id}", requestHandler.GetByID)
			r.Put("/{id}", requestHandler.Update)
			r.Post("/{id}/assign", requestHandler.Assign)
			r.Post("/{id}/status", requestHandler.ChangeStatus)
			r.Post("/{id}/notes", requestHandler.AddNote)
			r.Get("/{id}/notes", requestHandler.ListNotes)
			r.Post("/{id}/convert", requestHandler.Convert)
		})
	})
}
