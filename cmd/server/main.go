// Package main initializes and starts the wallet backend server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/config"
	"github.com/PhantomXD-nepal/np-wallet/internal/db"
	"github.com/PhantomXD-nepal/np-wallet/internal/logger"
	"github.com/PhantomXD-nepal/np-wallet/internal/repository"
	"github.com/PhantomXD-nepal/np-wallet/internal/server/handler/http"
	"github.com/PhantomXD-nepal/np-wallet/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.ParseServer()

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

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Prune old soft-deleted transactions in the background.
	db.StartSoftDeleteCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	txRepo := repository.NewPostgresTransactionRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo,
		[]byte(options.JWTSecret),
		time.Duration(options.TokenTTLHours)*time.Hour,
	)
	txService := service.NewTransactionService(txRepo)

	// Create HTTP handlers for auth and transaction endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	txHandler := &http.TransactionHandler{TransactionService: txService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, txHandler, authService, zapLogger)

	zapLogger.Info("starting server", zap.String("addr", options.Addr))
	if err := nethttp.ListenAndServe(options.Addr, router); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
