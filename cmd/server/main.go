package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fithub_backoffice/internal/app"
	"fithub_backoffice/internal/infra/auth"
	"fithub_backoffice/internal/infra/config"
	idb "fithub_backoffice/internal/infra/database"
	"fithub_backoffice/internal/infra/httpapi"
	"fithub_backoffice/internal/infra/logger"
	"fithub_backoffice/internal/infra/mail"
	"fithub_backoffice/internal/infra/scheduler"
	"fithub_backoffice/internal/infra/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.Environment)
	appLogger.WithField("environment", cfg.Environment).Info("FitHub back office starting")

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL, idb.PoolSettings{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		appLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()

	if err := idb.RunMigrations(db, cfg.MigrationsPath); err != nil {
		appLogger.Fatalf("FATAL: Could not run migrations: %v", err)
	}
	appLogger.Info("Database ready")

	// Repositories
	memberRepo := idb.NewPostgresMemberRepository(db)
	paymentRepo := idb.NewPostgresPaymentRepository(db)
	userRepo := idb.NewPostgresUserRepository(db)
	reminderLog := idb.NewPostgresReminderLog(db)

	// Transports, constructed once and injected everywhere
	emailSender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	whatsappSender := whatsapp.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)

	// Services
	dispatcher := app.NewDispatcher(emailSender, whatsappSender, cfg.SendTimeout, appLogger)
	scanService := app.NewScanService(memberRepo, paymentRepo, dispatcher, reminderLog, cfg.ReminderCatchUp, appLogger)
	reminderService := app.NewReminderService(memberRepo, paymentRepo, dispatcher, appLogger)
	memberService := app.NewMemberService(memberRepo)
	paymentService := app.NewPaymentService(paymentRepo, memberRepo)
	authService := app.NewAuthService(userRepo)

	// Scheduler
	reminderScheduler := scheduler.NewReminderScheduler(scanService, appLogger, cfg.ReminderCron)
	if err := reminderScheduler.Start(); err != nil {
		appLogger.Fatalf("FATAL: Could not start reminder scheduler: %v", err)
	}

	// HTTP API
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	router := httpapi.NewRouter(
		httpapi.NewAuthHandler(authService, tokens, appLogger),
		httpapi.NewMemberHandler(memberService, appLogger),
		httpapi.NewPaymentHandler(paymentService, appLogger),
		httpapi.NewReminderHandler(reminderService, appLogger),
		tokens,
		appLogger,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("HTTP server shutdown failed")
	}

	reminderScheduler.Stop()
	appLogger.Info("Application shut down gracefully")
}
