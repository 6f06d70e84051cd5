package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAppointment(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/appointments", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Post("/", appointmentHandler.Create)
		r.Get("/", appointmentHandler.List)
		r.Get("/today", appointmentHandler.Today)
		r.Get("/upcoming", appointmentHandler.Upcoming)
		r.Get("/stats", appointmentHandler.Stats)
		r.Get("/export", appointmentHandler.Export)
		r.Get("/{id}", appointmentHandler.GetByID)
		r.Put("/{id}", appointmentHandler.Update)
		r.Post("/{id}/cancel", appointmentHandler.Cancel)
		r.Post("/{id}/complete", appointmentHandler.Complete)
	})
}
