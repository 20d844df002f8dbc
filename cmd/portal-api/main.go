package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/portal-api/internal/config"
	"github.com/dimitrije/portal-api/internal/database"
	"github.com/dimitrije/portal-api/internal/handlers"
	"github.com/dimitrije/portal-api/internal/logger"
	"github.com/dimitrije/portal-api/internal/middleware"
	"github.com/dimitrije/portal-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.Env, cfg.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg)
	if err != nil {
		appLog.Error("failed to create aws clients", "error", err)
		os.Exit(1)
	}

	if cfg.AWS.DynamoDBEndpoint != "" {
		created, err := db.EnsureTables(ctx)
		if err != nil {
			appLog.Error("failed to create tables", "error", err)
			os.Exit(1)
		}
		if len(created) > 0 {
			appLog.Info("created tables", "tables", created)
		}
	}

	jwtService := services.NewJWTService(cfg.Auth0.Domain, cfg.Auth0.Audience,
		services.WithJWKSURL(cfg.Auth0.JWKSURL()),
		services.WithHTTPClient(&http.Client{Timeout: cfg.Auth0.JWKSTimeout}),
	)

	set := services.NewSet(db.Client, db.S3, cfg.Tables, cfg.EvidenceBucket)

	router, err := handlers.NewRouter(cfg, jwtService, handlers.ServicesFrom(set))
	if err != nil {
		appLog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middleware.RequestLogger(appLog, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("server starting",
			"addr", srv.Addr,
			"env", cfg.Env,
			"region", cfg.AWS.Region,
			"evidence_uploads", cfg.EvidenceBucket != "",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("graceful shutdown failed", "error", err)
	}
}
