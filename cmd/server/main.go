package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pilotconnect/internal/api"
	"pilotconnect/internal/auth"
	"pilotconnect/internal/common"
	"pilotconnect/internal/config"
	"pilotconnect/internal/db"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/metrics"
	"pilotconnect/internal/routes"
	"pilotconnect/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("PilotConnect starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"cache_backend", cfg.CacheBackend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	orm, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database (GORM)", "error", err)
	}
	if err := db.AutoMigrate(orm); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err)
	}
	logging.Info("Schema migrated")

	sqlxDB, err := db.InitSQLX(cfg, orm)
	if err != nil {
		logging.Fatal("Failed to connect to database (sqlx)", "error", err)
	}
	logging.Info("Connected to database (sqlx)")

	var cache common.CacheInterface
	switch cfg.CacheBackend {
	case config.CacheRedis:
		cache = common.NewRedisCacheService(common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB))
	default:
		cache = common.NewCacheService(5*time.Minute, 10*time.Minute)
	}
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL, common.NewCacheRevocationList(cache))

	deps, err := api.InitDependencies(orm, sqlxDB, cache, tokens, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers.InitWorkers(ctx, deps.Services.Directory)

	router := routes.RegisterRoutes(deps, routes.Options{
		UpSince:        time.Now(),
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MetricsHandler: promhttp.Handler(),
	})
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
	logging.Info("Server stopped")
}
