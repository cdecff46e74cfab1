package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentall-backend/internal/api/http"
	"rentall-backend/internal/config"
	"rentall-backend/internal/jobs"
	"rentall-backend/internal/logger"
	"rentall-backend/internal/payments"
	"rentall-backend/internal/repository/postgres"
	"rentall-backend/internal/scheduler"
	"rentall-backend/internal/security"
	"rentall-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentAll Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiryHours)*time.Hour)

	// Initialize Payment Gateway
	var gateway payments.Gateway
	var payoutProvider payments.PayoutProvider
	if cfg.Payments.Type == "" || cfg.Payments.Type == "mock" {
		logger.Info("Using mock payment gateway")
		gateway = payments.NewMockGateway(cfg.Server.BaseURL)
		payoutProvider = payments.NewMockPayoutProvider()
	} else {
		logger.Error("Unsupported payment gateway type", "type", cfg.Payments.Type)
		log.Fatalf("Payment gateway type '%s' not yet implemented", cfg.Payments.Type)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	listingSvc := service.NewListingService(store.ListingRepository, store.UserRepository)
	bookingSvc := service.NewBookingService(
		service.BookingConfig{
			PlatformFeePercent: cfg.Platform.FeePercent,
			AutoReleaseDays:    cfg.Platform.AutoReleaseDays,
			Currency:           cfg.Payments.Currency,
		},
		store.BookingRepository,
		store.ListingRepository,
		store.UserRepository,
		store.PaymentRepository,
		store.NotificationRepository,
		emailSvc,
		payoutProvider,
	)
	paymentSvc := service.NewPaymentService(
		cfg.Payments.Currency,
		gateway,
		store.PaymentRepository,
		store.BookingRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository, store.ListingRepository, store.UserRepository)
	messageSvc := service.NewMessageService(store.MessageRepository, store.UserRepository, store.ListingRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Listings:      listingSvc,
		Bookings:      bookingSvc,
		Payments:      paymentSvc,
		Reviews:       reviewSvc,
		Messages:      messageSvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
	})

	// In-process scheduler keeps the single-binary deployment simple; the
	// cronjob binary runs the same jobs for split deployments.
	runner := jobs.NewJobRunner(store, &jobs.Services{Bookings: bookingSvc, Payments: paymentSvc}, cfg)
	sched := scheduler.NewScheduler(runner)
	sched.Start()
	defer sched.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
