package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Get("/", notificationHandler.List)
		r.Get("/unread-count", notificationHandler.UnreadCount)
		r.Post("/read-all", notificationHandler.MarkAllRead)
		r.Post("/{id}/read", notificationHandler.MarkRead)
		r.Delete("/{id}", notificationHandler.Delete)
	})
}
