package wire

import (
	"context"
	"net/http"
	"time"

	"rising-bms/internal/adaptor"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/usecase"
	"rising-bms/pkg/cache"
	"rising-bms/pkg/database"
	"rising-bms/pkg/metrics"
	"rising-bms/pkg/middleware"
	"rising-bms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services and handlers and builds the router.
func Wiring(repo *repository.Repository, db database.PgxIface, store *cache.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, store, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, db, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db database.PgxIface,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, logger)

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(metrics.Middleware)
	r.Use(limiter.Handler)

	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireCustomer(r, handler.Customer, repo, config, logger)
	wireProject(r, handler.Project, repo, config, logger)
	wireAppointment(r, handler.Appointment, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireRequest(r, handler.Request, repo, config, logger)
	wireNotification(r, handler.Notification, repo, config, logger)
	wireDashboard(r, handler.Dashboard, repo, config, logger)
	wireAutomation(r, handler.Automation, repo, config, logger)

	// Health check with a database ping
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unreachable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	// Prometheus scrape endpoint
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
