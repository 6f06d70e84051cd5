package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.Me)
		r.Post("/api/auth/change-password", authHandler.ChangePassword)
	})

	// ==================== REGISTRATION ====================
	// The first account bootstraps without credentials; afterwards the
	// service requires the caller to be an admin.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo, config, log))

		r.Post("/api/auth/register", authHandler.Register)
	})
}
