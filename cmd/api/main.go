// Package main is the entry point for the Credential Verifier API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/credential-verifier/backend/config"
	"github.com/credential-verifier/backend/internal/application/adapter"
	"github.com/credential-verifier/backend/internal/application/usecase/verification"
	"github.com/credential-verifier/backend/internal/infra/db"
	"github.com/credential-verifier/backend/internal/infra/redisconn"
	"github.com/credential-verifier/backend/internal/infra/server/router"
	"github.com/credential-verifier/backend/internal/integration/adapters"
	"github.com/credential-verifier/backend/internal/integration/entrypoint/controller"
	"github.com/credential-verifier/backend/internal/integration/persistence"
	"github.com/credential-verifier/backend/internal/integration/persistence/model"
	"github.com/credential-verifier/backend/internal/integration/redisstore"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Credential Verifier API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"store", cfg.Store.Backend,
	)

	// Initialize the configured credential store backend
	var credentialStore adapter.CredentialStore
	var storeHealthChecker func() bool

	switch cfg.Store.Backend {
	case config.StoreRedis:
		conn, err := redisconn.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()

		credentialStore = redisstore.NewCredentialRepositoryWithTimeout(conn.Client(), cfg.Store.QueryTimeout)
		storeHealthChecker = conn.HealthCheck

	case config.StorePostgres:
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := database.AutoMigrate(&model.CredentialModel{}); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		credentialStore = persistence.NewCredentialRepositoryWithTimeout(database.DB(), cfg.Store.QueryTimeout)
		storeHealthChecker = database.HealthCheck

	default:
		slog.Error("Unknown credential store backend", "store", cfg.Store.Backend)
		os.Exit(1)
	}

	// Create the verifier with its collaborators injected
	secretHasher := adapters.NewSecretHasherWithCost(cfg.Hasher.BcryptCost)
	verifyUseCase := verification.NewVerifyCredentialsUseCase(credentialStore, secretHasher)

	// Create controllers
	healthController := controller.NewHealthController(storeHealthChecker)
	verificationController := controller.NewVerificationController(verifyUseCase)

	// Setup router
	r := router.NewRouter(healthController, verificationController)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
