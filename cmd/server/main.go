package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "agroshare-backend/internal/api/http"
	"agroshare-backend/internal/config"
	"agroshare-backend/internal/jobs"
	"agroshare-backend/internal/logger"
	"agroshare-backend/internal/realtime"
	"agroshare-backend/internal/repository/postgres"
	"agroshare-backend/internal/scheduler"
	"agroshare-backend/internal/security"
	"agroshare-backend/internal/service"
	"agroshare-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present; real env vars still win
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgroShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
	localStorage, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Email Service
	emailSvc := service.NewSendgridEmailService(
		cfg.Sendgrid.APIKey,
		cfg.Sendgrid.FromEmail,
		cfg.Sendgrid.FromName,
	)

	// Initialize realtime hub for chat streaming
	hub := realtime.NewHub()

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	machineSvc := service.NewMachineService(store.MachineRepository)
	availabilitySvc := service.NewAvailabilityService(store.BookingRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.MachineRepository,
		store.UserRepository,
		availabilitySvc,
	)
	requestSvc := service.NewRequestService(
		store,
		store.RequestRepository,
		store.BookingRepository,
		store.MachineRepository,
		store.UserRepository,
		availabilitySvc,
		emailSvc,
	)
	scheduleSvc := service.NewScheduleService(
		store.MachineRepository,
		store.BookingRepository,
		store.RequestRepository,
	)
	chatSvc := service.NewChatService(
		store.ChatRepository,
		store.RequestRepository,
		store.MachineRepository,
		hub,
	)

	// Start the in-process scheduler so a single binary deployment
	// still runs the nightly jobs
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:    emailSvc,
		Requests: requestSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Users:        userSvc,
		Machines:     machineSvc,
		Availability: availabilitySvc,
		Bookings:     bookingSvc,
		Requests:     requestSvc,
		Schedules:    scheduleSvc,
		Chat:         chatSvc,
		Tokens:       tokenManager,
		Storage:      localStorage,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
