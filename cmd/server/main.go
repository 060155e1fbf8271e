package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "rentalpro-backend/internal/api/http"
	"rentalpro-backend/internal/config"
	"rentalpro-backend/internal/jobs"
	"rentalpro-backend/internal/logger"
	"rentalpro-backend/internal/repository/postgres"
	"rentalpro-backend/internal/scheduler"
	"rentalpro-backend/internal/security"
	"rentalpro-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalPro Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("Failed to ensure schema", "error", err)
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	itemSvc := service.NewItemService(store.ItemRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.CustomerRepository)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)

	// Initialize HTTP handlers
	handlers := api.Handlers{
		Customers: api.NewCustomerHandler(customerSvc),
		Items:     api.NewItemHandler(itemSvc),
		Rentals:   api.NewRentalHandler(rentalSvc),
		Settings:  api.NewSettingsHandler(settingsSvc),
		Auth:      api.NewAuthHandler(authSvc),
	}
	router := api.NewRouter(handlers, tokenManager, cfg.CORS.AllowedOrigins)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:    emailSvc,
		Settings: settingsSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
