package wire

import (
	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAutomation(
	r chi.Router,
	automationHandler *adaptor.AutomationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/webhooks", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Post("/", automationHandler.CreateWebhook)
		r.Get("/", automationHandler.ListWebhooks)
		r.Get("/{id}", automationHandler.GetWebhook)
		r.Put("/{id}", automationHandler.UpdateWebhook)
		r.Delete("/{id}", automationHandler.DeleteWebhook)
		r.Post("/{id}/trigger", automationHandler.TriggerWebhook)
		r.Get("/{id}/executions", automationHandler.ListExecutions)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(middleware.Auth(repo, config, log))
		r.Use(middleware.Admin(log))

		r.Post("/", automationHandler.CreateTask)
		r.Get("/", automationHandler.ListTasks)
		r.Put("/{id}", automationHandler.UpdateTask)
		r.Delete("/{id}", automationHandler.DeleteTask)
	})
}
