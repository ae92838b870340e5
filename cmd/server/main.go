// Package main is the entry point for the stockpile API server.
// Multi-tenant architecture: Database-per-Tenant.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockpile/internal/core/tenant"
	"stockpile/internal/domain/auth"
	"stockpile/internal/infrastructure/email"
	v1 "stockpile/internal/infrastructure/http/v1"
	"stockpile/internal/infrastructure/storage/postgres"
	"stockpile/internal/infrastructure/storage/postgres/auth_repo"
	"stockpile/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockpile server (multi-tenant mode)")

	// --- Control-plane database connection ---
	controlDSN := mustEnv("CONTROL_DATABASE_URL")
	control, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(controlDSN))
	if err != nil {
		log.Fatalw("failed to connect to control database", "error", err)
	}
	defer control.Close()
	controlPool := control.Unwrap()

	if err := tenant.EnsureControlSchema(ctx, controlPool); err != nil {
		log.Fatalw("failed to migrate control database", "error", err)
	}
	log.Info("control database connection established")

	// --- Tenant Registry and Manager ---
	registry := tenant.NewPostgresRegistry(controlPool)

	managerCfg := tenant.DefaultManagerConfig()
	managerCfg.DBHost = getEnv("TENANT_DB_HOST", "localhost")
	managerCfg.DBPort = getEnvInt("TENANT_DB_PORT", 5432)
	managerCfg.DBUser = mustEnv("TENANT_DB_USER")
	managerCfg.DBPassword = mustEnv("TENANT_DB_PASSWORD")
	managerCfg.DBSSLMode = getEnv("TENANT_DB_SSLMODE", "disable")

	// Optional configuration overrides
	if maxPools := getEnvInt("TENANT_MAX_POOLS", 100); maxPools > 0 {
		managerCfg.MaxTotalPools = maxPools
	}
	if maxConns := getEnvInt("TENANT_MAX_CONNS_PER_POOL", 10); maxConns > 0 {
		managerCfg.MaxConnsPerTenant = int32(maxConns)
	}
	if idleTimeout := getEnvDuration("TENANT_POOL_IDLE_TIMEOUT", 30*time.Minute); idleTimeout > 0 {
		managerCfg.PoolIdleTimeout = idleTimeout
	}

	tenantManager := tenant.NewManager(managerCfg, registry, log)
	defer tenantManager.Close()

	log.Infow("tenant manager initialized",
		"max_pools", managerCfg.MaxTotalPools,
		"max_conns_per_tenant", managerCfg.MaxConnsPerTenant,
		"idle_timeout", managerCfg.PoolIdleTimeout,
	)

	// --- Tenant Provisioner ---
	// Registration creates one inventory database per user.
	provisioner := tenant.NewProvisioner(controlPool, tenant.ProvisionerConfig{
		DBHost:     managerCfg.DBHost,
		DBPort:     managerCfg.DBPort,
		DBUser:     managerCfg.DBUser,
		DBPassword: managerCfg.DBPassword,
		DBSSLMode:  managerCfg.DBSSLMode,
	})

	// --- JWT Service ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Auth Service ---
	userRepo := auth_repo.NewUserRepo(controlPool)
	authService := auth.NewService(
		userRepo,
		jwtService,
		provisioner,
		email.NewLogSender(),
		auth.DefaultServiceConfig(),
	)

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		TenantManager: tenantManager,
		ControlPool:   controlPool,
		Logger:        log,
		JWTValidator:  jwtService,
		AuthService:   authService,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port, "mode", "multi-tenant")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
