package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/simoncdt/vericoupon/internal/auth"
	"github.com/simoncdt/vericoupon/internal/config"
	"github.com/simoncdt/vericoupon/internal/handler"
	"github.com/simoncdt/vericoupon/internal/notify"
	"github.com/simoncdt/vericoupon/internal/repository"
	"github.com/simoncdt/vericoupon/internal/service"
	"github.com/simoncdt/vericoupon/internal/validator"
	"github.com/simoncdt/vericoupon/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "VeriCoupon Registration Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // submissions are small JSON payloads
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Notification dispatcher: SMTP when configured, log-only otherwise.
	// Delivery runs out of band so a mail outage never fails a submission.
	var sender notify.Sender
	if cfg.Mail.Enabled() {
		sender, err = notify.NewMailSender(cfg.Mail)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build mail sender")
		}
	} else {
		log.Warn().Msg("mail delivery not configured, notifications go to the log")
		sender = notify.LogSender{}
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Mail.QueueSize, cfg.Mail.MaxRetries)
	dispatcher.Start(ctx)

	// Operator session gate
	if cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH not set, operator login disabled")
	}
	gate := auth.NewGate(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.SessionTTL)

	// Initialize registration components (layered architecture)
	regRepo := repository.NewRegistrationRepository(pool)
	regService := service.NewRegistrationService(regRepo, dispatcher)
	regHandler := handler.NewRegistrationHandler(regService, validate)
	authHandler := handler.NewAuthHandler(gate, validate)
	verifyHandler := handler.NewVerificationHandler(validate)

	// Health handler
	healthHandler := handler.NewHealthHandler(pool)
	app.Get("/health", healthHandler.Check)

	// Public routes
	app.Post("/enregistrement", regHandler.Create)
	app.Post("/verification", verifyHandler.Check)

	// Operator routes
	app.Post("/admin/login", authHandler.Login)
	app.Post("/admin/logout", authHandler.Logout)
	app.Get("/enregistrements", handler.SessionRequired(gate), regHandler.List)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Drain pending notifications before closing the pool
	log.Info().Msg("draining notification queue...")
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("notification queue did not drain in time")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
