// main.go
package main

import (
	"context"
	"log"
	"time"

	"rising-bms/cmd"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/scheduler"
	"rising-bms/internal/wire"
	"rising-bms/pkg/cache"
	"rising-bms/pkg/database"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply pending schema migrations before taking traffic
	if err := database.RunMigrations(config.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// In-process cache for the dashboard
	store := cache.New(
		time.Duration(config.Cache.TTLSeconds)*time.Second,
		time.Duration(config.Cache.CleanupInterval)*time.Second,
	)
	defer store.Stop()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, db, store, config, logger)

	// Background jobs: auth cleanup and user-defined scheduled tasks
	sched := scheduler.New(repos, app.Service.Automation, logger)
	app.Service.Automation.BindScheduler(sched)
	if err := sched.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger)
}
