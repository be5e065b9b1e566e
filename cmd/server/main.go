// Package main initializes and starts the accounts HTTP server, setting
// up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/tallerify/auth-server/internal/config"
	"github.com/tallerify/auth-server/internal/db"
	"github.com/tallerify/auth-server/internal/logger"
	"github.com/tallerify/auth-server/internal/push"
	"github.com/tallerify/auth-server/internal/repository"
	"github.com/tallerify/auth-server/internal/server/handler/http"
	"github.com/tallerify/auth-server/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the PostgreSQL connection. The ping loop covers the
	// store becoming reachable during deployment.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN, options.DBConnectAttempts, options.DBConnectInterval, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	// Seed the default administrator. A failure here is reported but
	// does not abort startup.
	if err := db.EnsureDefaultAdmin(context.Background(), postgresDB, options.AdminEmail, options.AdminPassword, options.AdminName); err != nil {
		zapLogger.Warn("default admin bootstrap failed", zap.Error(err))
	}

	// Initialize repositories for the three account kinds.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	googleRepo := repository.NewPostgresGoogleRepository(postgresDB)
	adminRepo := repository.NewPostgresAdminRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, googleRepo, adminRepo, []byte(options.JWTSecret), options.TokenTTL, zapLogger)
	registrationService := service.NewRegistrationService(userRepo, googleRepo, adminRepo, zapLogger)
	moderationService := service.NewModerationService(userRepo, googleRepo, zapLogger)
	notificationService := service.NewNotificationService(userRepo, googleRepo, push.NewClient(options.PushGatewayURL), zapLogger)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	registrationHandler := &http.RegistrationHandler{RegistrationService: registrationService}
	moderationHandler := &http.ModerationHandler{ModerationService: moderationService}
	notifyHandler := &http.NotifyHandler{NotificationService: notificationService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, registrationHandler, moderationHandler, notifyHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
