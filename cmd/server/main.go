package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "campus-backend/internal/api/http"
	"campus-backend/internal/config"
	"campus-backend/internal/logger"
	"campus-backend/internal/mailer"
	"campus-backend/internal/notify"
	"campus-backend/internal/repository/postgres"
	"campus-backend/internal/security"
	"campus-backend/internal/service"
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
	logger.Info("Starting Campus Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Mail configuration", "provider", cfg.Mail.Provider, "from", cfg.Mail.FromEmail)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Mail transport
	var mail mailer.Mailer
	if cfg.Mail.Provider == "sendgrid" {
		mail = mailer.NewSendgridMailer(cfg.Mail.SendgridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	} else {
		logger.Info("Using console mailer (no real delivery)")
		mail = mailer.NewConsoleMailer()
	}

	// Initialize Dispatcher and Services
	dispatcher := notify.NewDispatcher(store.NotificationRepository, mail)
	authSvc := service.NewAuthService(store.AccountRepository, dispatcher, tokenManager)
	approvalSvc := service.NewApprovalService(store.AccountRepository, dispatcher)
	resetSvc := service.NewPasswordResetService(
		store.AccountRepository,
		store.ResetTokenRepository,
		dispatcher,
		cfg.Reset.TokenExpiry,
		cfg.Reset.LinkBaseURL,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP server
	server := api.NewServer(authSvc, approvalSvc, resetSvc, noteSvc, tokenManager)
	httpServer := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: server,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
