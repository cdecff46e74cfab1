package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentall-backend/internal/config"
	"rentall-backend/internal/jobs"
	"rentall-backend/internal/logger"
	"rentall-backend/internal/payments"
	"rentall-backend/internal/repository/postgres"
	"rentall-backend/internal/scheduler"
	"rentall-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'release-escrows', 'poll-payments', 'expire-pending', 'all-daily')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentAll Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Payment Gateway
	var gateway payments.Gateway
	var payoutProvider payments.PayoutProvider
	if cfg.Payments.Type == "" || cfg.Payments.Type == "mock" {
		gateway = payments.NewMockGateway(cfg.Server.BaseURL)
		payoutProvider = payments.NewMockPayoutProvider()
	} else {
		log.Fatalf("Payment gateway type '%s' not yet implemented", cfg.Payments.Type)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
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

	runner := jobs.NewJobRunner(store, &jobs.Services{Bookings: bookingSvc, Payments: paymentSvc}, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "release-escrows":
			runner.ReleaseExpiredEscrows()
		case "poll-payments":
			runner.PollPendingPayments()
		case "expire-pending":
			runner.ExpireStalePendingBookings()
		case "all-daily":
			runner.RunAllDailyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}
